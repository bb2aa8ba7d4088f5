package entities

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type JobStatus string

const (
	StatusDraft     JobStatus = "DRAFT"
	StatusPublished JobStatus = "PUBLISHED"
	StatusClosed    JobStatus = "CLOSED"
	StatusArchived  JobStatus = "ARCHIVED"
)

type EmploymentType string

const (
	FullTime   EmploymentType = "FULL_TIME"
	PartTime   EmploymentType = "PART_TIME"
	Contract   EmploymentType = "CONTRACT"
	Internship EmploymentType = "INTERNSHIP"
	Temporary  EmploymentType = "TEMPORARY"
)

type ExperienceLevel string

const (
	Entry     ExperienceLevel = "ENTRY"
	MidLevel  ExperienceLevel = "MID_LEVEL"
	Senior    ExperienceLevel = "SENIOR"
	Executive ExperienceLevel = "EXECUTIVE"
)

type Company struct {
	ID      string `gorm:"primaryKey"`
	Name    string
	Slug    string
	Logo    *string
	OwnerID string
}

// JobPosting is owned by the job-management subsystem; the discovery engine
// only ever reads it. Rows with Status != PUBLISHED or a soft-delete marker
// are invisible to search and recommendations.
type JobPosting struct {
	ID              string `gorm:"primaryKey"`
	Title           string
	Description     string
	Requirements    *string
	Location        *string
	Remote          bool
	SalaryMin       *int
	SalaryMax       *int
	SalaryCurrency  string
	EmploymentType  EmploymentType
	ExperienceLevel ExperienceLevel
	Status          JobStatus
	CompanyID       string
	Company         Company
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt
}

// CorpusText is the text a job contributes to the recommendation corpus.
func (j *JobPosting) CorpusText() string {
	parts := []string{j.Title, j.Description}
	if j.Requirements != nil {
		parts = append(parts, *j.Requirements)
	}
	return strings.Join(parts, " ")
}

type Application struct {
	ID     string `gorm:"primaryKey"`
	JobID  string
	UserID string
}
