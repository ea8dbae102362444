// Package scoring provides the heuristic scoring engine: ATS completeness
// scores for parsed resumes and skill-overlap match scores for feeds.
// Everything here is pure and deterministic; no AI calls.
package scoring

import "github.com/nikhilshetty5/superhireX/internal/extraction"

// ATS completeness weights. Contact info 20, work history 30, skills 25,
// education 15, certifications 10; total clamped to 100.
const (
	nameWeight          = 7.0
	emailWeight         = 7.0
	phoneWeight         = 6.0
	workEntryWeight     = 10.0
	workCap             = 30.0
	skillWeight         = 2.5
	skillCap            = 25.0
	educationWeight     = 7.5
	educationCap        = 15.0
	certificationWeight = 5.0
	certificationCap    = 10.0
	maxScore            = 100.0
)

// ATSScore computes the 0-100 completeness score for a parsed resume.
// Used only when the extraction capability did not supply a score itself.
func ATSScore(p *extraction.ParsedResume) float64 {
	if p == nil {
		return 0
	}

	score := 0.0

	if p.Name != "" {
		score += nameWeight
	}
	if p.Email != "" {
		score += emailWeight
	}
	if p.Phone != "" {
		score += phoneWeight
	}

	score += capped(len(p.WorkHistory), workEntryWeight, workCap)
	score += capped(len(p.Skills), skillWeight, skillCap)
	score += capped(len(p.Education), educationWeight, educationCap)
	score += capped(len(p.Certifications), certificationWeight, certificationCap)

	return min(maxScore, score)
}

func capped(count int, weight, cap float64) float64 {
	if count <= 0 {
		return 0
	}
	return min(cap, float64(count)*weight)
}
