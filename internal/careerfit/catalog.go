// internal/careerfit/catalog.go
package careerfit

// Growth is the qualitative job-growth outlook of a career.
type Growth string

const (
	GrowthMedium   Growth = "Medium"
	GrowthHigh     Growth = "High"
	GrowthVeryHigh Growth = "Very High"
)

// Career is a static archetype users are scored against.
type Career struct {
	Name           string   `json:"name"`
	RequiredSkills []string `json:"requiredSkills"`
	Industries     []string `json:"industries"`
	AvgSalary      int      `json:"avgSalary"`
	Growth         Growth   `json:"growth"`
	Description    string   `json:"description"`
}

// Catalog is an ordered list of careers. Order matters for tie-breaking.
type Catalog []Career

var defaultCatalog = Catalog{
	{
		Name:           "Data Scientist",
		RequiredSkills: []string{"python", "sql", "statistics", "machine learning", "data analysis"},
		Industries:     []string{"tech", "finance", "healthcare", "consulting"},
		AvgSalary:      95000,
		Growth:         GrowthHigh,
		Description:    "Analyze complex data to help organizations make informed decisions",
	},
	{
		Name:           "Software Engineer",
		RequiredSkills: []string{"programming", "algorithms", "system design", "debugging"},
		Industries:     []string{"tech", "finance", "gaming", "startup"},
		AvgSalary:      105000,
		Growth:         GrowthVeryHigh,
		Description:    "Design and develop software applications and systems",
	},
	{
		Name:           "Product Manager",
		RequiredSkills: []string{"communication", "strategy", "analytics", "leadership"},
		Industries:     []string{"tech", "consulting", "retail", "finance"},
		AvgSalary:      115000,
		Growth:         GrowthHigh,
		Description:    "Guide product development from conception to launch",
	},
	{
		Name:           "Marketing Manager",
		RequiredSkills: []string{"communication", "creativity", "analytics", "social media"},
		Industries:     []string{"marketing", "retail", "tech", "media"},
		AvgSalary:      75000,
		Growth:         GrowthMedium,
		Description:    "Develop and execute marketing strategies to promote products",
	},
	{
		Name:           "Financial Analyst",
		RequiredSkills: []string{"finance", "excel", "analytics", "economics"},
		Industries:     []string{"finance", "consulting", "investment", "banking"},
		AvgSalary:      85000,
		Growth:         GrowthMedium,
		Description:    "Analyze financial data to guide investment decisions",
	},
	{
		Name:           "UX Designer",
		RequiredSkills: []string{"design", "user research", "prototyping", "communication"},
		Industries:     []string{"tech", "design", "consulting", "media"},
		AvgSalary:      90000,
		Growth:         GrowthHigh,
		Description:    "Create intuitive and engaging user experiences for digital products",
	},
	{
		Name:           "Consultant",
		RequiredSkills: []string{"communication", "problem solving", "analytics", "presentation"},
		Industries:     []string{"consulting", "finance", "strategy", "operations"},
		AvgSalary:      100000,
		Growth:         GrowthMedium,
		Description:    "Provide expert advice to help organizations solve complex problems",
	},
	{
		Name:           "Business Analyst",
		RequiredSkills: []string{"analytics", "communication", "process improvement", "sql"},
		Industries:     []string{"consulting", "finance", "tech", "operations"},
		AvgSalary:      80000,
		Growth:         GrowthMedium,
		Description:    "Analyze business processes and recommend improvements",
	},
}

// DefaultCatalog returns a copy of the built-in career catalog.
func DefaultCatalog() Catalog {
	return defaultCatalog.Clone()
}

// Clone deep-copies the catalog so callers cannot mutate shared slices.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for i, career := range c {
		career.RequiredSkills = append([]string(nil), career.RequiredSkills...)
		career.Industries = append([]string(nil), career.Industries...)
		out[i] = career
	}
	return out
}

// Lookup finds a career by exact name.
func (c Catalog) Lookup(name string) (Career, bool) {
	for _, career := range c {
		if career.Name == name {
			return career, true
		}
	}
	return Career{}, false
}

// Names lists career names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, career := range c {
		names[i] = career.Name
	}
	return names
}
