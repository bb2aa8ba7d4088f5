package searchhost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL   string `validate:"required,url"`
	AppID     string `validate:"required"`
	APIKey    string `validate:"required"`
	IndexName string `validate:"required"`
}

// Client talks to the hosted search service. It is constructed once at
// process start and injected wherever the mirror is needed.
type Client struct {
	cfg         Config
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient(cfg Config) (*Client, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid search client config: %w", err)
	}
	return &Client{cfg: cfg, httpClient: &http.Client{}}, nil
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) SaveObject(ctx context.Context, record Record) error {

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error encoding record: %v", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/objects/%s", c.cfg.BaseURL, c.cfg.IndexName, record.ObjectID)
	_, err = c.sendRequest(ctx, "PUT", url, bytes.NewReader(payload))
	return err
}

func (c *Client) SaveObjects(ctx context.Context, records []Record) error {

	if len(records) == 0 {
		return nil
	}

	payload, err := json.Marshal(map[string][]Record{"objects": records})
	if err != nil {
		return fmt.Errorf("error encoding records: %v", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/batch", c.cfg.BaseURL, c.cfg.IndexName)
	_, err = c.sendRequest(ctx, "POST", url, bytes.NewReader(payload))
	return err
}

func (c *Client) DeleteObject(ctx context.Context, objectID string) error {

	url := fmt.Sprintf("%s/indexes/%s/objects/%s", c.cfg.BaseURL, c.cfg.IndexName, objectID)
	_, err := c.sendRequest(ctx, "DELETE", url, nil)
	return err
}

func (c *Client) Query(ctx context.Context, request QueryRequest) (*QueryResponse, error) {

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("error encoding query: %v", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/query", c.cfg.BaseURL, c.cfg.IndexName)
	body, err := c.sendRequest(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var response QueryResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&response); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return &response, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, url string, body io.Reader) ([]byte, error) {

	if c.rateLimiter != nil {
		err := c.rateLimiter.Wait(ctx)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Application-Id", c.cfg.AppID)
	req.Header.Set("X-API-Key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(responseBody))
	}

	return responseBody, nil
}
