package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/entities"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/logger"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

type jobSearcher interface {
	Search(ctx context.Context, filters entities.SearchFilters) (*entities.SearchResultPage, error)
}

type SearchHandler struct {
	search   jobSearcher
	validate *validator.Validate
}

func NewSearchHandler(search jobSearcher) *SearchHandler {
	return &SearchHandler{search: search, validate: validator.New()}
}

func (h *SearchHandler) Handle(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filters, err := parseSearchFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validate.Struct(filters); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter values")
		return
	}

	page, err := h.search.Search(r.Context(), *filters)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("search failed: %v", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func parseSearchFilters(r *http.Request) (*entities.SearchFilters, error) {

	params := r.URL.Query()

	filters := entities.SearchFilters{
		Query:           params.Get("query"),
		Location:        params.Get("location"),
		EmploymentType:  params.Get("employmentType"),
		ExperienceLevel: params.Get("experienceLevel"),
	}

	var err error
	if filters.Page, err = intParam(params.Get("page"), 1); err != nil {
		return nil, err
	}
	if filters.Limit, err = intParam(params.Get("limit"), 0); err != nil {
		return nil, err
	}

	if raw := params.Get("remote"); raw != "" {
		remote := raw == "true"
		filters.Remote = &remote
	}

	if filters.SalaryMin, err = optionalIntParam(params.Get("salaryMin")); err != nil {
		return nil, err
	}
	if filters.SalaryMax, err = optionalIntParam(params.Get("salaryMax")); err != nil {
		return nil, err
	}

	return &filters, nil
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidNumber(raw)
	}
	return value, nil
}

func optionalIntParam(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errInvalidNumber(raw)
	}
	return &value, nil
}

func errInvalidNumber(raw string) error {
	return fmt.Errorf("invalid numeric value: %q", raw)
}
