package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/entities"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/metrics"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/tfidf"
	"github.com/pkg/errors"
)

const corpusLimit = 200

type resumeRepository interface {
	GetByUser(ctx context.Context, userID string) ([]entities.Resume, error)
}

type jobCorpusRepository interface {
	GetEligibleForUser(ctx context.Context, userID string, limit int) ([]entities.JobPosting, error)
}

// Recommender ranks open jobs against a candidate's pooled résumé text using
// TF-IDF weighted cosine similarity. Read-only; safe for concurrent use.
type Recommender struct {
	resumes resumeRepository
	jobs    jobCorpusRepository
}

func NewRecommender(resumes resumeRepository, jobs jobCorpusRepository) *Recommender {
	return &Recommender{resumes: resumes, jobs: jobs}
}

// Recommend returns up to limit jobs, most similar first. A candidate with no
// résumés or an empty eligible corpus gets an empty list, not an error.
func (r *Recommender) Recommend(ctx context.Context, userID string, limit int) ([]entities.Recommendation, error) {

	start := time.Now()
	defer func() {
		metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	}()

	resumes, err := r.resumes.GetByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load resumes")
	}

	candidateTokens := tfidf.Tokenize(buildCandidateDocument(resumes))
	if len(candidateTokens) == 0 {
		return []entities.Recommendation{}, nil
	}

	jobs, err := r.jobs.GetEligibleForUser(ctx, userID, corpusLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load job corpus")
	}

	type jobDocument struct {
		job    entities.JobPosting
		tokens []string
	}

	var docs []jobDocument
	for _, job := range jobs {
		tokens := tfidf.Tokenize(job.CorpusText())
		if len(tokens) == 0 {
			continue
		}
		docs = append(docs, jobDocument{job: job, tokens: tokens})
	}

	if len(docs) == 0 {
		return []entities.Recommendation{}, nil
	}

	// the candidate document is query-like and does not contribute to IDF
	corpusTokens := make([][]string, len(docs))
	for i, doc := range docs {
		corpusTokens[i] = doc.tokens
	}
	df := tfidf.DocumentFrequencies(corpusTokens)

	candidateVector := tfidf.BuildVector(tfidf.TermFrequency(candidateTokens), df, len(docs))

	var results []entities.Recommendation
	for _, doc := range docs {
		jobVector := tfidf.BuildVector(tfidf.TermFrequency(doc.tokens), df, len(docs))

		score := tfidf.Cosine(candidateVector, jobVector)
		if math.IsNaN(score) || math.IsInf(score, 0) || score <= 0 {
			continue
		}

		results = append(results, entities.Recommendation{
			Job:   recommendedJobFrom(doc.job),
			Score: score,
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	if results == nil {
		return []entities.Recommendation{}, nil
	}

	// rounded for display stability
	for i := range results {
		results[i].Score = math.Round(results[i].Score*10000) / 10000
	}
	return results, nil
}

// buildCandidateDocument pools parsed name, title, skills, raw payload and
// file name across all of the candidate's résumés into one string.
func buildCandidateDocument(resumes []entities.Resume) string {

	var parts []string
	for _, resume := range resumes {
		if resume.ParsedName != nil {
			parts = append(parts, *resume.ParsedName)
		}
		if resume.ParsedTitle != nil {
			parts = append(parts, *resume.ParsedTitle)
		}
		if skills := resume.SkillsAsArray(); len(skills) > 0 {
			parts = append(parts, strings.Join(skills, " "))
		}
		if resume.ParsedRaw != nil {
			parts = append(parts, *resume.ParsedRaw)
		}
		parts = append(parts, resume.FileName)
	}
	return strings.TrimSpace(strings.Join(parts, " \n "))
}

func recommendedJobFrom(job entities.JobPosting) entities.RecommendedJob {
	return entities.RecommendedJob{
		ID:              job.ID,
		Title:           job.Title,
		Location:        job.Location,
		Remote:          job.Remote,
		EmploymentType:  job.EmploymentType,
		ExperienceLevel: job.ExperienceLevel,
		Company:         job.Company,
	}
}
