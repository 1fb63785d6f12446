package scorer

import (
	"strings"

	"github.com/lukeringworm/dynameter-deploy/internal/model"
)

type keywordSet struct {
	positive []string
	negative []string
}

var categoryKeywords = map[model.Category]keywordSet{
	model.Defense: {
		positive: []string{"contract", "investment", "innovation", "breakthrough", "success", "award", "modernization", "capability"},
		negative: []string{"delay", "budget cut", "failure", "setback", "scandal", "violation", "loss"},
	},
	model.Manufacturing: {
		positive: []string{"reshoring", "factory", "production", "jobs", "investment", "expansion", "growth", "domestic"},
		negative: []string{"layoffs", "closure", "offshoring", "decline", "shortage", "disruption"},
	},
	model.Energy: {
		positive: []string{"renewable", "clean", "efficiency", "breakthrough", "investment", "capacity", "grid"},
		negative: []string{"outage", "shortage", "price spike", "emissions", "accident", "delay"},
	},
	model.Workforce: {
		positive: []string{"training", "skills", "employment", "wages", "certification", "education", "hiring"},
		negative: []string{"unemployment", "layoffs", "shortage", "decline", "automation", "displacement"},
	},
	model.TechPolicy: {
		positive: []string{"innovation", "funding", "breakthrough", "leadership", "competitiveness", "research"},
		negative: []string{"regulation", "restriction", "ban", "lag", "dependence", "vulnerability"},
	},
	model.SupplyChain: {
		positive: []string{"resilience", "domestic", "diversification", "investment", "capacity", "security"},
		negative: []string{"disruption", "shortage", "delay", "bottleneck", "dependency", "vulnerability"},
	},
}

// KeywordScore scores an article by keyword matching over the lowercased
// title and description: +1 per positive hit, -1 per negative hit, clamped
// to [-5, 5]. Deterministic, no failure mode.
func KeywordScore(category model.Category, title, description string) int {
	content := strings.ToLower(title) + " " + strings.ToLower(description)
	set := categoryKeywords[category]

	score := 0
	for _, kw := range set.positive {
		if strings.Contains(content, kw) {
			score++
		}
	}
	for _, kw := range set.negative {
		if strings.Contains(content, kw) {
			score--
		}
	}
	return clamp(score)
}

func clamp(score int) int {
	if score > 5 {
		return 5
	}
	if score < -5 {
		return -5
	}
	return score
}
