// Package extraction provides AI-backed structured extraction of resume text.
package extraction

// WorkEntry is a single position in a candidate's work history.
type WorkEntry struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is a single degree or program.
type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// ParsedResume is the structured output of resume extraction.
// Every field is optional; an absent field is an empty value, not an error.
type ParsedResume struct {
	Name           string           `json:"name,omitempty"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Title          string           `json:"title,omitempty"`
	Location       string           `json:"location,omitempty"`
	Summary        string           `json:"summary,omitempty"`
	Skills         []string         `json:"skills,omitempty"`
	Experience     string           `json:"experience,omitempty"` // e.g. "5 years"
	WorkHistory    []WorkEntry      `json:"work_history,omitempty"`
	Education      []EducationEntry `json:"education,omitempty"`
	Certifications []string         `json:"certifications,omitempty"`
	ATSScore       *float64         `json:"ats_score,omitempty"`
}

// Placeholder returns the minimal result handed back to callers when
// extraction failed, so the UI is never left without a response.
func Placeholder() *ParsedResume {
	zero := 0.0
	return &ParsedResume{
		Name:     "Parsing Failed",
		Title:    "Unknown",
		Summary:  "Resume parsing encountered an error. Please try again or edit manually.",
		ATSScore: &zero,
	}
}
