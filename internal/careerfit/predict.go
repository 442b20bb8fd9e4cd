// internal/careerfit/predict.go
package careerfit

import (
	"sort"

	"careerfit-workers/internal/models"
)

// DefaultTopN is how many careers a prediction returns.
const DefaultTopN = 6

// CareerPrediction is one ranked career with everything needed to explain it.
type CareerPrediction struct {
	Career          string           `json:"career"`
	MatchScore      int              `json:"matchScore"`
	RequiredSkills  []string         `json:"requiredSkills"`
	Industries      []string         `json:"industries"`
	AvgSalary       int              `json:"avgSalary"`
	Growth          Growth           `json:"growth"`
	Description     string           `json:"description"`
	SkillGaps       SkillGap         `json:"skillGaps"`
	Recommendations []Recommendation `json:"recommendations"`
	Confidence      Confidence       `json:"confidence"`
	Breakdown       ScoreBreakdown   `json:"scoreBreakdown"`
}

// Engine scores users against a career catalog. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	catalog Catalog
	topN    int
}

type Option func(*Engine)

// WithCatalog replaces the built-in catalog.
func WithCatalog(c Catalog) Option {
	return func(e *Engine) {
		e.catalog = c.Clone()
	}
}

// WithTopN changes how many careers are returned. Values below 1 are ignored.
func WithTopN(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topN = n
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		catalog: DefaultCatalog(),
		topN:    DefaultTopN,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns a copy of the engine's careers.
func (e *Engine) Catalog() Catalog {
	return e.catalog.Clone()
}

// Predict scores every career and returns the best matches, highest first.
// Careers with equal scores keep catalog order.
func (e *Engine) Predict(data models.UserData) []CareerPrediction {
	ev := newEvidence(data)
	confidence := ConfidenceFor(data)

	predictions := make([]CareerPrediction, 0, len(e.catalog))
	for _, career := range e.catalog {
		breakdown := ScoreBreakdown{
			Activity:      activityScore(ev.activities, career.RequiredSkills),
			Test:          testScore(ev.tests, career),
			Communication: communicationScore(ev.feedback, career.Name),
			Major:         MajorScore(ev.major, career.Name),
		}
		gap := skillGaps(ev, career)

		predictions = append(predictions, CareerPrediction{
			Career:          career.Name,
			MatchScore:      MatchScore(breakdown),
			RequiredSkills:  append([]string(nil), career.RequiredSkills...),
			Industries:      append([]string(nil), career.Industries...),
			AvgSalary:       career.AvgSalary,
			Growth:          career.Growth,
			Description:     career.Description,
			SkillGaps:       gap,
			Recommendations: Recommendations(career, gap, len(data.Activities)),
			Confidence:      confidence,
			Breakdown:       breakdown,
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].MatchScore > predictions[j].MatchScore
	})

	if len(predictions) > e.topN {
		predictions = predictions[:e.topN]
	}
	return predictions
}

var defaultEngine = NewEngine()

// PredictCareerPaths ranks the built-in catalog for the given user data.
func PredictCareerPaths(data models.UserData) []CareerPrediction {
	return defaultEngine.Predict(data)
}
