// internal/careerfit/activity.go
package careerfit

import "careerfit-workers/internal/models"

// ActivityScore rates how much of a user's activity history exercises the
// given skills. Every (activity, skill) hit adds the activity's score to the
// relevance total; coverage counts distinct skills hit at least once.
func ActivityScore(activities []models.ActivityRecord, requiredSkills []string) float64 {
	return activityScore(activityEvidence(activities), requiredSkills)
}

func activityScore(activities []scoredText, requiredSkills []string) float64 {
	if len(activities) == 0 {
		return 0
	}

	matched := make(map[string]struct{}, len(requiredSkills))
	relevance := 0.0
	for _, a := range activities {
		for _, skill := range requiredSkills {
			if mentions(a.text, skill) {
				matched[skill] = struct{}{}
				relevance += a.score
			}
		}
	}

	coverage := percentOf(len(matched), len(requiredSkills))
	avgRelevance := relevance / float64(max(len(activities), 1))
	return (coverage*0.6 + avgRelevance*0.4) / 2
}

func percentOf(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
