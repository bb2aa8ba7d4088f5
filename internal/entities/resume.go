package entities

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// Resume carries the already-parsed fields of an uploaded résumé. Parsing
// itself happens in an external service; this subsystem never sees the file.
type Resume struct {
	ID               string `gorm:"primaryKey"`
	UserID           string `gorm:"index"`
	FileName         string
	ParsedName       *string
	ParsedTitle      *string
	ParsedSkills     string // comma-joined, see SkillsAsArray
	ParsedExperience *int
	ParsedRaw        *string
	CreatedAt        time.Time
}

func NewResume(userID, fileName string, skills []string) *Resume {
	return &Resume{
		UserID:       userID,
		FileName:     fileName,
		ParsedSkills: strings.Join(skills, ","),
	}
}

func (r *Resume) SkillsAsArray() []string {
	if r.ParsedSkills == "" {
		return []string{}
	}
	return lo.Map(strings.Split(r.ParsedSkills, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
}
