// internal/workers/career/generate-learning-resources/models.go
package generatelearningresources

import "careerfit-workers/internal/careerfit"

type Input struct {
	Career        string   `json:"career"`
	MissingSkills []string `json:"missingSkills"`
	UserLevel     string   `json:"userLevel"`
}

type Output struct {
	Career      string                 `json:"career"`
	Resources   careerfit.LearningPlan `json:"resources"`
	GeneratedAt string                 `json:"generatedAt"`
}
