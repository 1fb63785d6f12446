package llm

import (
	"fmt"
	"sort"
	"strings"
)

const promptVersion = "v1"

func scoringPrompt(in ScoreInput) string {
	description := in.Description
	if description == "" {
		description = "No summary available"
	}

	return fmt.Sprintf(`You are an analyst scoring news for American Dynamism.
Analyze the article below and provide:
1. A numerical impact score from -5 (very negative) to +5 (very positive) reflecting its impact on %s. Be nuanced:
   - Small operational updates or minor industry news: +1 to -1
   - Moderate developments with limited scope: +2 to -2
   - Significant policy changes or major contracts: +3 to -3
   - Transformative developments with national impact: +4 to -4
   - Game-changing events with generational implications: +5 to -5
   - Use 0 for truly neutral news with no clear impact
2. A concise one-sentence summary of the article.

Title: %s
Summary: %s

Respond only with valid JSON in this format:
{
  "impact_score": 1,
  "summary": "Minor operational update on F-35 maintenance hosting interests."
}`, in.CategoryName, in.Title, description)
}

func milestonePrompt(in MilestoneInput) string {
	names := make([]string, 0, len(in.CategoryScores))
	for name := range in.CategoryScores {
		names = append(names, name)
	}
	sort.Strings(names)

	var scores strings.Builder
	for i, name := range names {
		if i > 0 {
			scores.WriteString(", ")
		}
		fmt.Fprintf(&scores, "%s (%.0f)", name, in.CategoryScores[name])
	}

	return fmt.Sprintf(`You are a strategic analyst for American Dynamism. All current milestones have been achieved!

Generate ambitious but achievable new milestones for the next phase. Consider:
1. Current scores: %s
2. Recent global developments and emerging challenges
3. Next-level targets that push American competitiveness further
4. Measurable, time-bound objectives

For each category, provide 2-3 new milestones that are:
- More ambitious than current achievements
- Specific and measurable
- Relevant to current geopolitical and economic context
- Achievable within 2-5 years

Respond with valid JSON in this exact format:
{
  "defense": [
    {
      "title": "Next-Gen Defense Innovation",
      "target": "1M tech jobs by 2027",
      "current": "750K jobs",
      "description": "Expand defense technology workforce to maintain technological superiority",
      "completed": false
    }
  ],
  "manufacturing": [...],
  "energy": [...],
  "workforce": [...],
  "techPolicy": [...],
  "supplyChain": [...]
}`, scores.String())
}
