package builder

import "strings"

// SuggestedSkills are offered as one-click chips next to the skill input.
var SuggestedSkills = []string{
	"JavaScript",
	"Python",
	"Java",
	"SQL",
	"Communication",
	"Leadership",
	"Teamwork",
	"Problem Solving",
	"Project Management",
	"Microsoft Excel",
}

// normalizeSkill trims user input. Matching after that is exact and case-sensitive.
func normalizeSkill(text string) string {
	return strings.TrimSpace(text)
}

// addSkill appends skill unless it is empty or already present.
func addSkill(skills []string, text string) ([]string, bool) {
	skill := normalizeSkill(text)
	if skill == "" {
		return skills, false
	}
	for _, s := range skills {
		if s == skill {
			return skills, false
		}
	}
	return append(skills, skill), true
}

// removeSkill drops the first exact match of text.
func removeSkill(skills []string, text string) ([]string, bool) {
	for i, s := range skills {
		if s == text {
			out := make([]string, 0, len(skills)-1)
			out = append(out, skills[:i]...)
			return append(out, skills[i+1:]...), true
		}
	}
	return skills, false
}
