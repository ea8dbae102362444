package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchScore_PartialOverlap(t *testing.T) {
	skills := []string{"python", "react", "sql"}
	requirements := []string{"python", "aws", "docker"}

	score := MatchScore(skills, requirements)

	// One of three requirements covered.
	assert.InDelta(t, 33.33, score, 0.1)
}

func TestMatchScore_FullOverlap(t *testing.T) {
	skills := []string{"Go", "Kubernetes", "PostgreSQL"}
	requirements := []string{"go", "kubernetes", "postgresql"}

	score := MatchScore(skills, requirements)

	assert.Equal(t, 100.0, score)
}

func TestMatchScore_NoOverlap(t *testing.T) {
	score := MatchScore([]string{"php", "ruby"}, []string{"go", "rust"})

	assert.Equal(t, 0.0, score)
}

func TestMatchScore_EmptySkillsIsNeutral(t *testing.T) {
	assert.Equal(t, 50.0, MatchScore(nil, []string{"go"}))
	assert.Equal(t, 50.0, MatchScore([]string{"go"}, nil))
	assert.Equal(t, 50.0, MatchScore(nil, nil))
}

func TestMatchScore_WhitespaceAndCase(t *testing.T) {
	skills := []string{"  Python ", "REACT"}
	requirements := []string{"python", "react"}

	assert.Equal(t, 100.0, MatchScore(skills, requirements))
}

func TestMatchScore_Bounds(t *testing.T) {
	cases := [][2][]string{
		{{"a"}, {"a", "b", "c"}},
		{{"a", "b", "c", "d"}, {"a"}},
		{{}, {}},
		{{"x"}, {"y"}},
	}

	for _, c := range cases {
		score := MatchScore(c[0], c[1])
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestMatchReason_StrongMatch(t *testing.T) {
	skills := []string{"go", "docker", "kubernetes", "aws"}
	requirements := []string{"go", "docker", "kubernetes", "terraform"}

	reason := MatchReason(skills, requirements)

	assert.Contains(t, reason, "Strong match")
	// Lexicographic order keeps the enumeration stable.
	assert.Contains(t, reason, "docker, go, kubernetes")
}

func TestMatchReason_GoodFit(t *testing.T) {
	skills := []string{"python", "react", "sql"}
	requirements := []string{"python", "aws", "docker"}

	reason := MatchReason(skills, requirements)

	assert.Contains(t, reason, "Good fit")
	assert.Contains(t, reason, "python")
}

func TestMatchReason_NoOverlap(t *testing.T) {
	reason := MatchReason([]string{"php"}, []string{"go"})

	assert.Contains(t, reason, "expand your skill set")
}

func TestMatchReason_Deterministic(t *testing.T) {
	skills := []string{"kubernetes", "go", "docker", "aws", "terraform"}
	requirements := []string{"terraform", "aws", "docker", "go", "kubernetes"}

	first := MatchReason(skills, requirements)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, MatchReason(skills, requirements))
	}
}

func TestOverlap_Sorted(t *testing.T) {
	overlap := Overlap([]string{"Zig", "Ada", "Go"}, []string{"go", "zig", "ada"})

	assert.Equal(t, []string{"ada", "go", "zig"}, overlap)
}
