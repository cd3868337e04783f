// Package ats estimates how well a resume will fare with applicant tracking systems.
package ats

import "github.com/jonathan/resume-builder/internal/types"

// Scoring constants
const (
	baseScore = 50
	maxScore  = 100

	fullNameBonus      = 5
	summaryBonus       = 10
	educationBonus     = 10
	skillsBonus        = 10
	experienceBonus    = 15
	projectsBonus      = 5
	certificationBonus = 5
)

// Tier thresholds
const (
	tierMidThreshold  = 60
	tierHighThreshold = 80
)

// Tier is the guidance bucket derived from a score.
type Tier string

// Tiers in ascending order
const (
	TierNeedsMoreSections    Tier = "needs-more-sections"
	TierAddExperienceSummary Tier = "add-experience-summary"
	TierWellOptimized        Tier = "well-optimized"
)

var guidance = map[Tier]string{
	TierNeedsMoreSections:    "Tip: Add more sections (skills, projects, certifications) to improve your score.",
	TierAddExperienceSummary: "Tip: Add detailed work experience and a professional summary.",
	TierWellOptimized:        "Great! Your resume is well-optimized.",
}

// Result is a score together with its tier and guidance text.
type Result struct {
	Score    int    `json:"score"`
	Tier     Tier   `json:"tier"`
	Guidance string `json:"guidance"`
}

// Score computes the heuristic score for a document. Each bonus applies at most once,
// however much data the category holds, and the total never exceeds 100.
func Score(doc types.ResumeDocument) int {
	score := baseScore
	if doc.Personal.FullName != "" {
		score += fullNameBonus
	}
	if doc.Summary != "" {
		score += summaryBonus
	}
	if len(doc.Education) > 0 {
		score += educationBonus
	}
	if len(doc.Skills) > 0 {
		score += skillsBonus
	}
	if len(doc.Experience) > 0 {
		score += experienceBonus
	}
	if len(doc.Projects) > 0 {
		score += projectsBonus
	}
	if len(doc.Certifications) > 0 {
		score += certificationBonus
	}
	return min(maxScore, score)
}

// Classify maps a score to its tier.
func Classify(score int) Tier {
	switch {
	case score < tierMidThreshold:
		return TierNeedsMoreSections
	case score < tierHighThreshold:
		return TierAddExperienceSummary
	default:
		return TierWellOptimized
	}
}

// Guidance returns the improvement tip shown for a tier.
func Guidance(tier Tier) string {
	return guidance[tier]
}

// Evaluate scores a document and classifies the result.
func Evaluate(doc types.ResumeDocument) Result {
	score := Score(doc)
	tier := Classify(score)
	return Result{
		Score:    score,
		Tier:     tier,
		Guidance: Guidance(tier),
	}
}
