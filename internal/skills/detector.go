package skills

import (
	"sort"
	"strings"

	"gh-talent-scout/internal/models"
)

// keywordSkills maps normalized tokens found in bios, repo names and
// descriptions to canonical skill names. Language names double as skills.
var keywordSkills = map[string]string{
	"python":     "Python",
	"go":         "Go",
	"golang":     "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"java":       "Java",
	"rust":       "Rust",
	"c++":        "C++",
	"cpp":        "C++",
	"c#":         "C#",
	"csharp":     "C#",
	"ruby":       "Ruby",
	"php":        "PHP",
	"kotlin":     "Kotlin",
	"swift":      "Swift",
	"scala":      "Scala",
	"fastapi":    "FastAPI",
	"django":     "Django",
	"flask":      "Flask",
	"react":      "React",
	"reactjs":    "React",
	"vue":        "Vue",
	"vuejs":      "Vue",
	"angular":    "Angular",
	"rails":      "Rails",
	"spring":     "Spring",
	"express":    "Express",
	"nextjs":     "Next.js",
	"nodejs":     "Node.js",
	"node":       "Node.js",
	"docker":     "Docker",
	"kubernetes": "Kubernetes",
	"k8s":        "Kubernetes",
	"terraform":  "Terraform",
	"aws":        "AWS",
	"gcp":        "GCP",
	"azure":      "Azure",
	"postgresql": "PostgreSQL",
	"postgres":   "PostgreSQL",
	"mysql":      "MySQL",
	"mongodb":    "MongoDB",
	"redis":      "Redis",
	"kafka":      "Kafka",
	"graphql":    "GraphQL",
	"grpc":       "gRPC",
	"tensorflow": "TensorFlow",
	"pytorch":    "PyTorch",
	"ml":         "Machine Learning",
}

// Detector infers a candidate's skill set from profile and repo signals.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect combines bio keywords, owned-repo languages and descriptions, and
// starred-repo languages into a sorted, deduplicated skill list. Every
// signal is optional; missing ones just shrink the result.
func (d *Detector) Detect(bio string, repos []models.Repo, starred []models.Repo) []string {
	found := make(map[string]bool)

	collectFromText(bio, found)

	for _, repo := range repos {
		for _, lang := range repo.Languages {
			if skill, ok := keywordSkills[strings.ToLower(lang)]; ok {
				found[skill] = true
			}
		}
		collectFromText(repo.Name, found)
		collectFromText(repo.Description, found)
	}

	// starred repos only contribute languages: a starred description is
	// someone else's text, not the candidate's
	for _, repo := range starred {
		for _, lang := range repo.Languages {
			if skill, ok := keywordSkills[strings.ToLower(lang)]; ok {
				found[skill] = true
			}
		}
	}

	out := make([]string, 0, len(found))
	for skill := range found {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

func collectFromText(text string, found map[string]bool) {
	if text == "" {
		return
	}

	for _, token := range tokenize(text) {
		if skill, ok := keywordSkills[token]; ok {
			found[skill] = true
		}
	}
}

// tokenize splits on anything that is not part of a skill token. '+' and
// '#' stay so "c++" and "c#" survive.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return false
		case r == '+' || r == '#':
			return false
		}
		return true
	})
}
