// internal/careerfit/resources.go
package careerfit

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed resources.yaml
var resourcesYAML []byte

// Level is the learner's self-reported level. Unknown levels fall back to beginner.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
)

const careerPlaceholder = "{career}"

type LearningResource struct {
	Title    string `yaml:"title" json:"title"`
	Type     string `yaml:"type" json:"type"`
	Duration string `yaml:"duration" json:"duration"`
	Provider string `yaml:"provider" json:"provider"`
}

type Certification struct {
	Title    string `yaml:"title" json:"title"`
	Provider string `yaml:"provider" json:"provider"`
	Duration string `yaml:"duration" json:"duration"`
}

type SkillResources struct {
	Skill     string             `json:"skill"`
	Resources []LearningResource `json:"resources"`
}

type CareerResources struct {
	Certifications []Certification `yaml:"certifications" json:"certifications"`
	Projects       []string        `yaml:"projects" json:"projects"`
}

// LearningPlan is the study material suggested for one career.
type LearningPlan struct {
	SkillBasedResources   []SkillResources `json:"skillBasedResources"`
	CareerResources       CareerResources  `json:"careerResources"`
	PracticeOpportunities []string         `json:"practiceOpportunities"`
	NetworkingTips        []string         `json:"networkingTips"`
}

type careerEntry struct {
	CareerResources `yaml:",inline"`
	Practice        []string `yaml:"practice"`
}

type libraryFile struct {
	Skills          map[string]map[Level][]LearningResource `yaml:"skills"`
	Careers         map[string]careerEntry                  `yaml:"careers"`
	DefaultPractice []string                                `yaml:"default_practice"`
	Networking      []string                                `yaml:"networking"`
}

// ResourceLibrary maps skills and careers to curated learning material.
type ResourceLibrary struct {
	data libraryFile
}

// LoadResourceLibrary parses a YAML resource document.
func LoadResourceLibrary(raw []byte) (*ResourceLibrary, error) {
	var f libraryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse resource library: %w", err)
	}
	if len(f.DefaultPractice) == 0 || len(f.Networking) == 0 {
		return nil, fmt.Errorf("resource library: default_practice and networking are required")
	}
	return &ResourceLibrary{data: f}, nil
}

var defaultLibrary = mustLoadLibrary(resourcesYAML)

func mustLoadLibrary(raw []byte) *ResourceLibrary {
	lib, err := LoadResourceLibrary(raw)
	if err != nil {
		panic(err)
	}
	return lib
}

// DefaultResourceLibrary returns the built-in library.
func DefaultResourceLibrary() *ResourceLibrary {
	return defaultLibrary
}

// Generate builds a learning plan. Skills without curated material are
// skipped; careers without curated material get generic practice ideas.
func (l *ResourceLibrary) Generate(career string, missingSkills []string, level Level) LearningPlan {
	plan := LearningPlan{
		SkillBasedResources: []SkillResources{},
		CareerResources:     CareerResources{Certifications: []Certification{}, Projects: []string{}},
	}

	for _, skill := range missingSkills {
		levels, ok := l.data.Skills[strings.ToLower(skill)]
		if !ok {
			continue
		}
		resources, ok := levels[level]
		if !ok {
			resources = levels[LevelBeginner]
		}
		plan.SkillBasedResources = append(plan.SkillBasedResources, SkillResources{
			Skill:     skill,
			Resources: append([]LearningResource(nil), resources...),
		})
	}

	if entry, ok := l.data.Careers[career]; ok {
		plan.CareerResources = CareerResources{
			Certifications: append([]Certification{}, entry.Certifications...),
			Projects:       append([]string{}, entry.Projects...),
		}
		plan.PracticeOpportunities = append([]string{}, entry.Practice...)
	} else {
		plan.PracticeOpportunities = append([]string{}, l.data.DefaultPractice...)
	}

	plan.NetworkingTips = make([]string, len(l.data.Networking))
	for i, tip := range l.data.Networking {
		plan.NetworkingTips[i] = strings.ReplaceAll(tip, careerPlaceholder, strings.ToLower(career))
	}
	return plan
}

// GenerateLearningResources builds a plan from the built-in library.
func GenerateLearningResources(career string, missingSkills []string, level Level) LearningPlan {
	return defaultLibrary.Generate(career, missingSkills, level)
}
