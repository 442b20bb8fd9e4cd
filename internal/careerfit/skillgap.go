// internal/careerfit/skillgap.go
package careerfit

import "careerfit-workers/internal/models"

// SkillGap splits a career's required skills into what the user has already
// shown and what is still missing.
type SkillGap struct {
	Demonstrated []string `json:"demonstrated"`
	Missing      []string `json:"missing"`
	Coverage     float64  `json:"coverage"`
}

// SkillGaps scans activities and test results for the career's skills.
// Both lists keep the career's skill order.
func SkillGaps(data models.UserData, career Career) SkillGap {
	ev := newEvidence(data)
	return skillGaps(ev, career)
}

func skillGaps(ev evidence, career Career) SkillGap {
	gap := SkillGap{Demonstrated: []string{}, Missing: []string{}}
	for _, skill := range career.RequiredSkills {
		if demonstrated(ev, skill) {
			gap.Demonstrated = append(gap.Demonstrated, skill)
		} else {
			gap.Missing = append(gap.Missing, skill)
		}
	}
	gap.Coverage = percentOf(len(gap.Demonstrated), len(career.RequiredSkills))
	return gap
}

func demonstrated(ev evidence, skill string) bool {
	for _, a := range ev.activities {
		if mentions(a.text, skill) {
			return true
		}
	}
	for _, t := range ev.tests {
		if mentions(t.text, skill) {
			return true
		}
	}
	return false
}
