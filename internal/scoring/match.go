package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// neutralScore is returned when either side of the comparison lists nothing,
// so seekers without skills and jobs without requirements are not penalized.
const neutralScore = 50.0

// MatchScore computes the 0-100 skill-overlap score between a seeker's
// skills and a job's requirements: the fraction of requirements covered.
func MatchScore(seekerSkills, jobRequirements []string) float64 {
	seekerSet := normalizeSet(seekerSkills)
	jobSet := normalizeSet(jobRequirements)

	if len(seekerSet) == 0 || len(jobSet) == 0 {
		return neutralScore
	}

	matched := 0
	for req := range jobSet {
		if seekerSet[req] {
			matched++
		}
	}

	score := float64(matched) / float64(len(jobSet)) * 100
	return min(maxScore, score)
}

// MatchReason produces a deterministic, human-readable explanation for a
// match score. Overlapping skills are enumerated in lexicographic order so
// the output is stable across runs.
func MatchReason(seekerSkills, jobRequirements []string) string {
	overlap := Overlap(seekerSkills, jobRequirements)

	switch {
	case len(overlap) >= 3:
		return fmt.Sprintf("Strong match: Your skills in %s align perfectly with job requirements.",
			strings.Join(overlap[:3], ", "))
	case len(overlap) > 0:
		return fmt.Sprintf("Good fit: Your experience with %s matches job needs.",
			strings.Join(overlap, ", "))
	default:
		return "This role could help you expand your skill set and grow your career."
	}
}

// Overlap returns the sorted intersection of the two skill sets, normalized
// to lower case.
func Overlap(seekerSkills, jobRequirements []string) []string {
	seekerSet := normalizeSet(seekerSkills)
	jobSet := normalizeSet(jobRequirements)

	var overlap []string
	for skill := range seekerSet {
		if jobSet[skill] {
			overlap = append(overlap, skill)
		}
	}
	sort.Strings(overlap)
	return overlap
}

// normalizeSet lowercases and trims entries, dropping empties.
func normalizeSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized != "" {
			set[normalized] = true
		}
	}
	return set
}
