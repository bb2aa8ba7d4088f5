package services

import (
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/entities"
	"github.com/samber/lo"
)

// AggregateFacets counts the filterable dimensions over one page of results.
// Counts reflect only the returned page, not the full matching set.
func AggregateFacets(jobs []entities.JobPosting) entities.FacetCounts {

	location := map[string]int{}
	for _, job := range jobs {
		if job.Location != nil && *job.Location != "" {
			location[*job.Location]++
		}
	}

	return entities.FacetCounts{
		"location": location,
		"employmentType": lo.CountValuesBy(jobs, func(job entities.JobPosting) string {
			return string(job.EmploymentType)
		}),
		"experienceLevel": lo.CountValuesBy(jobs, func(job entities.JobPosting) string {
			return string(job.ExperienceLevel)
		}),
		"remote": lo.CountValuesBy(jobs, func(job entities.JobPosting) string {
			if job.Remote {
				return "Remote"
			}
			return "Onsite"
		}),
	}
}
