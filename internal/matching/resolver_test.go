package matching

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nikhilshetty5/superhireX/internal/db"
)

// fakeStore implements Database in memory with the same uniqueness
// guarantees as the SQL schema.
type fakeStore struct {
	mu      sync.Mutex
	jobs    map[uuid.UUID]*db.Job
	seekers map[uuid.UUID]*db.SeekerProfile
	swipes  map[string]*db.Swipe
	matches map[string]*db.Match
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs:    make(map[uuid.UUID]*db.Job),
		seekers: make(map[uuid.UUID]*db.SeekerProfile),
		swipes:  make(map[string]*db.Swipe),
		matches: make(map[string]*db.Match),
	}
}

func swipeKey(swiperID, targetID uuid.UUID, targetType string) string {
	return swiperID.String() + "|" + targetID.String() + "|" + targetType
}

func matchKey(seekerID, jobID uuid.UUID) string {
	return seekerID.String() + "|" + jobID.String()
}

func (f *fakeStore) addJob(recruiterID uuid.UUID, createdAt time.Time) *db.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	j := &db.Job{
		ID:          uuid.New(),
		RecruiterID: recruiterID,
		Title:       "Backend Engineer",
		Status:      db.JobStatusActive,
		CreatedAt:   createdAt,
	}
	f.jobs[j.ID] = j
	return j
}

func (f *fakeStore) addSeeker() uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.seekers[id] = &db.SeekerProfile{UserID: id, ResumeStatus: db.ResumeStatusConfirmed}
	return id
}

func (f *fakeStore) GetJob(_ context.Context, id uuid.UUID) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (f *fakeStore) GetSeekerProfile(_ context.Context, userID uuid.UUID) (*db.SeekerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sp, ok := f.seekers[userID]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

func (f *fakeStore) InsertSwipe(_ context.Context, swiperID, targetID uuid.UUID, targetType, direction string) (*db.Swipe, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := swipeKey(swiperID, targetID, targetType)
	if existing, ok := f.swipes[key]; ok {
		cp := *existing
		return &cp, false, nil
	}
	s := &db.Swipe{
		ID:         uuid.New(),
		SwiperID:   swiperID,
		TargetID:   targetID,
		TargetType: targetType,
		Direction:  direction,
		CreatedAt:  time.Now(),
	}
	f.swipes[key] = s
	cp := *s
	return &cp, true, nil
}

func (f *fakeStore) HasRecruiterRightSwipe(_ context.Context, recruiterID, seekerID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.swipes[swipeKey(recruiterID, seekerID, db.TargetCandidate)]
	return ok && s.Direction == db.SwipeRight, nil
}

func (f *fakeStore) FindReciprocalJobSwipe(_ context.Context, seekerID, recruiterID uuid.UUID) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var earliest *db.Job
	for _, s := range f.swipes {
		if s.SwiperID != seekerID || s.TargetType != db.TargetJob || s.Direction != db.SwipeRight {
			continue
		}
		j, ok := f.jobs[s.TargetID]
		if !ok || j.RecruiterID != recruiterID {
			continue
		}
		if earliest == nil || j.CreatedAt.Before(earliest.CreatedAt) {
			earliest = j
		}
	}
	if earliest == nil {
		return nil, nil
	}
	cp := *earliest
	return &cp, nil
}

func (f *fakeStore) InsertMatch(_ context.Context, seekerID, recruiterID, jobID uuid.UUID) (*db.Match, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := matchKey(seekerID, jobID)
	if existing, ok := f.matches[key]; ok {
		cp := *existing
		return &cp, false, nil
	}
	m := &db.Match{
		ID:          uuid.New(),
		SeekerID:    seekerID,
		RecruiterID: recruiterID,
		JobID:       jobID,
		MatchedAt:   time.Now(),
		Status:      db.MatchStatusActive,
	}
	f.matches[key] = m
	cp := *m
	return &cp, true, nil
}

func seekerProfile(id uuid.UUID) *db.Profile {
	return &db.Profile{ID: id, Role: db.RoleSeeker}
}

func recruiterProfile(id uuid.UUID) *db.Profile {
	return &db.Profile{ID: id, Role: db.RoleRecruiter}
}

func TestSwipe_RejectsInvalidDirection(t *testing.T) {
	resolver := NewResolver(newFakeStore(), zap.NewNop())

	_, err := resolver.Swipe(context.Background(), seekerProfile(uuid.New()), uuid.New(), "up")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestSwipe_JobNotFound(t *testing.T) {
	resolver := NewResolver(newFakeStore(), zap.NewNop())

	_, err := resolver.Swipe(context.Background(), seekerProfile(uuid.New()), uuid.New(), db.SwipeRight)
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestSwipe_ClosedJobNotSwipeable(t *testing.T) {
	store := newFakeStore()
	recruiterID := uuid.New()
	job := store.addJob(recruiterID, time.Now())
	store.jobs[job.ID].Status = db.JobStatusClosed
	resolver := NewResolver(store, zap.NewNop())

	_, err := resolver.Swipe(context.Background(), seekerProfile(store.addSeeker()), job.ID, db.SwipeRight)
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestSwipe_LeftNeverMatches(t *testing.T) {
	store := newFakeStore()
	recruiterID := uuid.New()
	seekerID := store.addSeeker()
	job := store.addJob(recruiterID, time.Now())
	resolver := NewResolver(store, zap.NewNop())

	// The recruiter already wants this candidate.
	_, err := resolver.Swipe(context.Background(), recruiterProfile(recruiterID), seekerID, db.SwipeRight)
	require.NoError(t, err)

	result, err := resolver.Swipe(context.Background(), seekerProfile(seekerID), job.ID, db.SwipeLeft)
	require.NoError(t, err)

	assert.False(t, result.Matched)
	assert.Nil(t, result.Match)
	assert.Empty(t, store.matches)
}

func TestSwipe_MutualSeekerCompletes(t *testing.T) {
	store := newFakeStore()
	recruiterID := uuid.New()
	seekerID := store.addSeeker()
	job := store.addJob(recruiterID, time.Now())
	resolver := NewResolver(store, zap.NewNop())

	first, err := resolver.Swipe(context.Background(), recruiterProfile(recruiterID), seekerID, db.SwipeRight)
	require.NoError(t, err)
	assert.False(t, first.Matched)

	second, err := resolver.Swipe(context.Background(), seekerProfile(seekerID), job.ID, db.SwipeRight)
	require.NoError(t, err)

	assert.True(t, second.Matched)
	require.NotNil(t, second.Match)
	assert.Equal(t, job.ID, second.Match.JobID)
	assert.Equal(t, seekerID, second.Match.SeekerID)
	assert.Equal(t, recruiterID, second.Match.RecruiterID)
}

func TestSwipe_MutualRecruiterCompletes(t *testing.T) {
	store := newFakeStore()
	recruiterID := uuid.New()
	seekerID := store.addSeeker()
	job := store.addJob(recruiterID, time.Now())
	resolver := NewResolver(store, zap.NewNop())

	first, err := resolver.Swipe(context.Background(), seekerProfile(seekerID), job.ID, db.SwipeRight)
	require.NoError(t, err)
	assert.False(t, first.Matched)

	second, err := resolver.Swipe(context.Background(), recruiterProfile(recruiterID), seekerID, db.SwipeRight)
	require.NoError(t, err)

	assert.True(t, second.Matched)
	require.NotNil(t, second.Match)
	assert.Equal(t, job.ID, second.Match.JobID)
}

func TestSwipe_MatchAttachesToEarliestJob(t *testing.T) {
	store := newFakeStore()
	recruiterID := uuid.New()
	seekerID := store.addSeeker()
	older := store.addJob(recruiterID, time.Now().Add(-time.Hour))
	newer := store.addJob(recruiterID, time.Now())
	resolver := NewResolver(store, zap.NewNop())

	_, err := resolver.Swipe(context.Background(), seekerProfile(seekerID), newer.ID, db.SwipeRight)
	require.NoError(t, err)
	_, err = resolver.Swipe(context.Background(), seekerProfile(seekerID), older.ID, db.SwipeRight)
	require.NoError(t, err)

	result, err := resolver.Swipe(context.Background(), recruiterProfile(recruiterID), seekerID, db.SwipeRight)
	require.NoError(t, err)

	require.True(t, result.Matched)
	assert.Equal(t, older.ID, result.Match.JobID)
}

func TestSwipe_RepeatRightSwipeIsIdempotent(t *testing.T) {
	store := newFakeStore()
	recruiterID := uuid.New()
	seekerID := store.addSeeker()
	job := store.addJob(recruiterID, time.Now())
	resolver := NewResolver(store, zap.NewNop())

	_, err := resolver.Swipe(context.Background(), recruiterProfile(recruiterID), seekerID, db.SwipeRight)
	require.NoError(t, err)
	first, err := resolver.Swipe(context.Background(), seekerProfile(seekerID), job.ID, db.SwipeRight)
	require.NoError(t, err)
	repeat, err := resolver.Swipe(context.Background(), seekerProfile(seekerID), job.ID, db.SwipeRight)
	require.NoError(t, err)

	assert.True(t, repeat.Matched)
	assert.Equal(t, first.Match.ID, repeat.Match.ID)
	assert.Equal(t, first.Swipe.ID, repeat.Swipe.ID)
	assert.Len(t, store.matches, 1)
}

func TestSwipe_DirectionNeverOverwritten(t *testing.T) {
	store := newFakeStore()
	recruiterID := uuid.New()
	seekerID := store.addSeeker()
	job := store.addJob(recruiterID, time.Now())
	resolver := NewResolver(store, zap.NewNop())

	_, err := resolver.Swipe(context.Background(), seekerProfile(seekerID), job.ID, db.SwipeLeft)
	require.NoError(t, err)

	result, err := resolver.Swipe(context.Background(), seekerProfile(seekerID), job.ID, db.SwipeRight)
	require.NoError(t, err)

	assert.Equal(t, db.SwipeLeft, result.Swipe.Direction)
	assert.False(t, result.Matched)
}

func TestSwipe_ConcurrentReciprocalYieldsOneMatch(t *testing.T) {
	store := newFakeStore()
	recruiterID := uuid.New()
	seekerID := store.addSeeker()
	job := store.addJob(recruiterID, time.Now())
	resolver := NewResolver(store, zap.NewNop())

	// Seed both right swipes so every resolution attempt sees reciprocity.
	_, err := resolver.Swipe(context.Background(), seekerProfile(seekerID), job.ID, db.SwipeRight)
	require.NoError(t, err)
	_, err = resolver.Swipe(context.Background(), recruiterProfile(recruiterID), seekerID, db.SwipeRight)
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	matchIDs := make([]uuid.UUID, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var result *SwipeResult
			var err error
			if i%2 == 0 {
				result, err = resolver.Swipe(context.Background(), seekerProfile(seekerID), job.ID, db.SwipeRight)
			} else {
				result, err = resolver.Swipe(context.Background(), recruiterProfile(recruiterID), seekerID, db.SwipeRight)
			}
			if err == nil && result.Match != nil {
				matchIDs[i] = result.Match.ID
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.matches, 1)
	for _, id := range matchIDs {
		if id != uuid.Nil {
			assert.Equal(t, matchIDs[0], id)
		}
	}
}

func TestSwipe_CandidateNotFound(t *testing.T) {
	resolver := NewResolver(newFakeStore(), zap.NewNop())

	_, err := resolver.Swipe(context.Background(), recruiterProfile(uuid.New()), uuid.New(), db.SwipeRight)
	assert.ErrorIs(t, err, ErrTargetNotFound)
}
