// internal/careerfit/major.go
package careerfit

import (
	"slices"
	"strings"
)

const (
	majorUnknown   = 50.0
	majorAligned   = 30.0
	majorUnaligned = 10.0
	majorUnmapped  = 15.0
)

type majorAlignment struct {
	field   string
	careers []string
}

// Checked in order; the first field contained in the major decides the score.
var majorAlignments = []majorAlignment{
	{"computer science", []string{"Software Engineer", "Data Scientist"}},
	{"business", []string{"Product Manager", "Business Analyst", "Consultant"}},
	{"marketing", []string{"Marketing Manager", "Product Manager"}},
	{"finance", []string{"Financial Analyst", "Business Analyst"}},
	{"design", []string{"UX Designer"}},
	{"mathematics", []string{"Data Scientist", "Financial Analyst"}},
	{"economics", []string{"Financial Analyst", "Business Analyst", "Consultant"}},
}

// MajorScore rates how well a declared major lines up with a career.
// A missing major is neutral (50), an unrecognized one scores 15.
func MajorScore(major *string, careerName string) float64 {
	if major == nil || *major == "" {
		return majorUnknown
	}

	lower := strings.ToLower(*major)
	for _, m := range majorAlignments {
		if !strings.Contains(lower, m.field) {
			continue
		}
		if slices.Contains(m.careers, careerName) {
			return majorAligned
		}
		return majorUnaligned
	}
	return majorUnmapped
}
