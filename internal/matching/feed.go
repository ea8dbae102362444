package matching

import (
	"sort"

	"github.com/google/uuid"

	"github.com/nikhilshetty5/superhireX/internal/db"
	"github.com/nikhilshetty5/superhireX/internal/scoring"
)

// DefaultFeedLimit caps feed responses when the caller gives no limit.
const DefaultFeedLimit = 20

// Candidate cards carry a flat teaser score; per-job fit is only computed
// once a job context exists.
const (
	candidateScore  = 80.0
	candidateReason = "Strong profile with relevant experience."
)

// JobCard is a job feed entry annotated with fit against the seeker.
type JobCard struct {
	db.Job
	MatchScore  float64 `json:"match_score"`
	MatchReason string  `json:"match_reason"`
}

// CandidateCard is a candidate feed entry for recruiters.
type CandidateCard struct {
	db.SeekerCard
	MatchScore  float64 `json:"match_score"`
	MatchReason string  `json:"match_reason"`
}

// RankJobs scores active jobs against the seeker's skills, drops already
// swiped jobs, and returns the best fits first. The sort is stable so equal
// scores keep their input order.
func RankJobs(seekerSkills []string, jobs []db.Job, exclude []uuid.UUID, limit int) []JobCard {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	excluded := make(map[uuid.UUID]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	cards := make([]JobCard, 0, len(jobs))
	for _, job := range jobs {
		if excluded[job.ID] {
			continue
		}
		cards = append(cards, JobCard{
			Job:         job,
			MatchScore:  scoring.MatchScore(seekerSkills, job.Requirements),
			MatchReason: scoring.MatchReason(seekerSkills, job.Requirements),
		})
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].MatchScore > cards[j].MatchScore
	})

	if len(cards) > limit {
		cards = cards[:limit]
	}
	return cards
}

// RankCandidates filters already swiped seekers out of the recruiter feed
// and truncates to the limit. Input order, newest confirmed first, is kept.
func RankCandidates(seekers []db.SeekerCard, exclude []uuid.UUID, limit int) []CandidateCard {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	excluded := make(map[uuid.UUID]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	cards := make([]CandidateCard, 0, len(seekers))
	for _, seeker := range seekers {
		if excluded[seeker.UserID] {
			continue
		}
		cards = append(cards, CandidateCard{
			SeekerCard:  seeker,
			MatchScore:  candidateScore,
			MatchReason: candidateReason,
		})
		if len(cards) == limit {
			break
		}
	}
	return cards
}
