package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/entities"
	"gorm.io/gorm"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (j Jobs) GetByID(ctx context.Context, jobID string) (*entities.JobPosting, error) {
	var job entities.JobPosting
	err := j.db.WithContext(ctx).
		Preload("Company").
		Where("id = ?", jobID).
		First(&job).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (j Jobs) GetByIDs(ctx context.Context, jobIDs []string) ([]entities.JobPosting, error) {
	if len(jobIDs) == 0 {
		return []entities.JobPosting{}, nil
	}

	var jobs []entities.JobPosting
	err := j.db.WithContext(ctx).
		Preload("Company").
		Where("id IN ?", jobIDs).
		Find(&jobs).Error
	return jobs, err
}

func (j Jobs) GetPublished(ctx context.Context) ([]entities.JobPosting, error) {
	var jobs []entities.JobPosting
	err := j.db.WithContext(ctx).
		Preload("Company").
		Where("status = ?", entities.StatusPublished).
		Find(&jobs).Error
	return jobs, err
}

// GetEligibleForUser returns the recommendation corpus for a candidate:
// published jobs the user has not applied to and does not own through their
// company, newest first, capped at limit.
func (j Jobs) GetEligibleForUser(ctx context.Context, userID string, limit int) ([]entities.JobPosting, error) {
	var jobs []entities.JobPosting
	err := j.db.WithContext(ctx).
		Preload("Company").
		Where("status = ?", entities.StatusPublished).
		Where("id NOT IN (?)", j.db.Model(&entities.Application{}).Select("job_id").Where("user_id = ?", userID)).
		Where("company_id NOT IN (?)", j.db.Model(&entities.Company{}).Select("id").Where("owner_id = ?", userID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

// Filter applies the structured search predicate: equality filters plus the
// permissive salary-overlap rule (either bound overlapping is enough).
func (j Jobs) Filter(ctx context.Context, filters entities.SearchFilters, offset, limit int) ([]entities.JobPosting, int64, error) {

	query := j.db.WithContext(ctx).
		Model(&entities.JobPosting{}).
		Where("status = ?", entities.StatusPublished)

	if filters.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filters.Location)+"%")
	}
	if filters.Remote != nil {
		query = query.Where("remote = ?", *filters.Remote)
	}
	if filters.EmploymentType != "" {
		query = query.Where("employment_type = ?", filters.EmploymentType)
	}
	if filters.ExperienceLevel != "" {
		query = query.Where("experience_level = ?", filters.ExperienceLevel)
	}

	if filters.SalaryMin != nil && filters.SalaryMax != nil {
		query = query.Where("salary_max >= ? OR salary_min <= ?", *filters.SalaryMin, *filters.SalaryMax)
	} else if filters.SalaryMin != nil {
		query = query.Where("salary_max >= ?", *filters.SalaryMin)
	} else if filters.SalaryMax != nil {
		query = query.Where("salary_min <= ?", *filters.SalaryMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []entities.JobPosting
	err := query.
		Preload("Company").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&jobs).Error
	return jobs, total, err
}

// TextSearch runs the relational full-text fallback: query tokens joined with
// AND-prefix semantics against the jobs text vector, ordered by native rank.
// Postgres only.
func (j Jobs) TextSearch(ctx context.Context, query string, offset, limit int) ([]entities.JobPosting, int64, error) {

	tsQuery := buildTsQuery(query)
	if tsQuery == "" {
		return []entities.JobPosting{}, 0, nil
	}

	const textVector = `to_tsvector('english', coalesce(title,'') || ' ' || coalesce(description,'') || ' ' || coalesce(requirements,''))`

	var jobIDs []string
	err := j.db.WithContext(ctx).
		Raw(`SELECT id FROM job_postings
			WHERE status = ? AND deleted_at IS NULL
			AND `+textVector+` @@ to_tsquery('english', ?)
			ORDER BY ts_rank(`+textVector+`, to_tsquery('english', ?)) DESC
			LIMIT ? OFFSET ?`,
			entities.StatusPublished, tsQuery, tsQuery, limit, offset).
		Scan(&jobIDs).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = j.db.WithContext(ctx).
		Raw(`SELECT count(*) FROM job_postings
			WHERE status = ? AND deleted_at IS NULL
			AND `+textVector+` @@ to_tsquery('english', ?)`,
			entities.StatusPublished, tsQuery).
		Scan(&total).Error
	if err != nil {
		return nil, 0, err
	}

	jobs, err := j.GetByIDs(ctx, jobIDs)
	if err != nil {
		return nil, 0, err
	}

	return orderByIDs(jobs, jobIDs), total, nil
}

// buildTsQuery keeps only alphanumeric characters per token so user input
// cannot inject tsquery syntax.
func buildTsQuery(query string) string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(query)) {
		var b strings.Builder
		for _, r := range field {
			if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String()+":*")
		}
	}
	return strings.Join(tokens, " & ")
}

func orderByIDs(jobs []entities.JobPosting, ids []string) []entities.JobPosting {
	byID := make(map[string]entities.JobPosting, len(jobs))
	for _, job := range jobs {
		byID[job.ID] = job
	}

	ordered := make([]entities.JobPosting, 0, len(ids))
	for _, id := range ids {
		if job, ok := byID[id]; ok {
			ordered = append(ordered, job)
		}
	}
	return ordered
}
