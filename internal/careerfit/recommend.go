// internal/careerfit/recommend.go
package careerfit

import (
	"fmt"
	"strings"
)

type RecommendationType string

const (
	RecommendationSkillDevelopment    RecommendationType = "skill_development"
	RecommendationExperience          RecommendationType = "experience"
	RecommendationIndustryPreparation RecommendationType = "industry_preparation"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// experienceThreshold is the activity count below which more practice is suggested.
const experienceThreshold = 10

// maxSkillsToLearn caps how many missing skills one recommendation names.
const maxSkillsToLearn = 3

type Recommendation struct {
	Type        RecommendationType `json:"type"`
	Priority    Priority           `json:"priority"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	ActionItems []string           `json:"actionItems"`
}

// Recommendations builds the action plan for one career. Rules are applied
// independently, in a fixed order.
func Recommendations(career Career, gap SkillGap, activityCount int) []Recommendation {
	recs := make([]Recommendation, 0, 3)

	if len(gap.Missing) > 0 {
		focus := gap.Missing[:min(len(gap.Missing), maxSkillsToLearn)]
		items := make([]string, len(focus))
		for i, skill := range focus {
			items[i] = "Take a course in " + skill
		}
		recs = append(recs, Recommendation{
			Type:        RecommendationSkillDevelopment,
			Priority:    PriorityHigh,
			Title:       "Develop Missing Skills",
			Description: "Focus on learning: " + strings.Join(focus, ", "),
			ActionItems: items,
		})
	}

	if activityCount < experienceThreshold {
		recs = append(recs, Recommendation{
			Type:        RecommendationExperience,
			Priority:    PriorityMedium,
			Title:       "Gain More Experience",
			Description: "Participate in more practice sessions and tests",
			ActionItems: []string{
				"Complete interview practice sessions",
				"Take technical assessments",
				"Join communication practice sessions",
			},
		})
	}

	if len(career.Industries) > 0 {
		industry := career.Industries[0]
		recs = append(recs, Recommendation{
			Type:        RecommendationIndustryPreparation,
			Priority:    PriorityMedium,
			Title:       fmt.Sprintf("Prepare for %s Industry", industry),
			Description: fmt.Sprintf("Build knowledge specific to the %s sector", industry),
			ActionItems: []string{
				"Research top companies in " + industry,
				"Follow industry news and trends",
				"Connect with professionals in the field",
			},
		})
	}

	return recs
}
