package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nikhilshetty5/superhireX/internal/db"
	"github.com/nikhilshetty5/superhireX/internal/extraction"
	"github.com/nikhilshetty5/superhireX/internal/storage"
)

// fakeDB implements Database in memory with the same compare-and-set
// semantics as the SQL layer.
type fakeDB struct {
	mu        sync.Mutex
	seekers   map[uuid.UUID]*db.SeekerProfile
	resumes   map[uuid.UUID]*db.Resume
	failSaves int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		seekers: make(map[uuid.UUID]*db.SeekerProfile),
		resumes: make(map[uuid.UUID]*db.Resume),
	}
}

func (f *fakeDB) EnsureSeekerProfile(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seekers[userID]; !ok {
		f.seekers[userID] = &db.SeekerProfile{UserID: userID, ResumeStatus: db.ResumeStatusPending}
	}
	return nil
}

func (f *fakeDB) GetSeekerProfile(_ context.Context, userID uuid.UUID) (*db.SeekerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sp, ok := f.seekers[userID]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

func (f *fakeDB) BeginParsing(_ context.Context, userID uuid.UUID) (bool, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sp, ok := f.seekers[userID]
	if !ok {
		return false, db.ResumeStatusNone, nil
	}
	if sp.ResumeStatus == db.ResumeStatusPending || sp.ResumeStatus == db.ResumeStatusFailed {
		sp.ResumeStatus = db.ResumeStatusParsing
		return true, sp.ResumeStatus, nil
	}
	return false, sp.ResumeStatus, nil
}

func (f *fakeDB) SaveParsedResume(_ context.Context, userID uuid.UUID, parsedData json.RawMessage, atsScore float64, skills []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSaves > 0 {
		f.failSaves--
		return errors.New("connection reset")
	}
	sp := f.seekers[userID]
	sp.ResumeStatus = db.ResumeStatusParsed
	sp.ParsedData = parsedData
	sp.ATSScore = &atsScore
	sp.Skills = skills
	return nil
}

func (f *fakeDB) MarkParseFailed(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seekers[userID].ResumeStatus = db.ResumeStatusFailed
	return nil
}

func (f *fakeDB) ConfirmSeekerProfile(_ context.Context, userID uuid.UUID, input db.ConfirmInput) (*db.SeekerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sp, ok := f.seekers[userID]
	if !ok {
		return nil, nil
	}
	sp.Title = input.Title
	sp.Bio = input.Bio
	sp.Location = input.Location
	sp.Experience = input.Experience
	sp.Skills = input.Skills
	sp.ParsedData = input.ParsedData
	sp.ATSScore = input.ATSScore
	sp.ResumeStatus = db.ResumeStatusConfirmed
	cp := *sp
	return &cp, nil
}

func (f *fakeDB) CreateResume(_ context.Context, seekerID uuid.UUID, filePath, fileName string) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := &db.Resume{ID: uuid.New(), SeekerID: seekerID, FilePath: filePath, FileName: fileName}
	f.resumes[r.ID] = r
	return r, nil
}

func (f *fakeDB) GetResumeForSeeker(_ context.Context, resumeID, seekerID uuid.UUID) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resumes[resumeID]
	if !ok || r.SeekerID != seekerID {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeDB) MarkResumeParsed(_ context.Context, resumeID uuid.UUID) error {
	return nil
}

// countingExtractor returns a canned result and counts invocations.
type countingExtractor struct {
	mu       sync.Mutex
	calls    int
	failNext int
}

func (e *countingExtractor) ExtractResume(_ context.Context, _ string) (*extraction.ParsedResume, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if e.failNext > 0 {
		e.failNext--
		return nil, &extraction.APICallError{Message: "model unavailable"}
	}
	return &extraction.ParsedResume{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Skills: []string{"go", "sql"},
	}, nil
}

func (e *countingExtractor) Close() error { return nil }

func (e *countingExtractor) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// passthroughText treats the file content as already-extracted text.
type passthroughText struct{}

func (passthroughText) Extract(_ string, content []byte) (string, error) {
	return string(content), nil
}

func newTestService(t *testing.T) (*Service, *fakeDB, *countingExtractor) {
	t.Helper()
	database := newFakeDB()
	extractor := &countingExtractor{}
	svc := NewService(database, storage.NewMemory(), extractor, passthroughText{}, zap.NewNop(), Options{})
	return svc, database, extractor
}

func uploadResume(t *testing.T, svc *Service, seekerID uuid.UUID) *db.Resume {
	t.Helper()
	resume, err := svc.Upload(context.Background(), seekerID, "resume.txt", []byte("experienced engineer"))
	require.NoError(t, err)
	return resume
}

func TestUpload_RejectsUnsupportedType(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), uuid.New(), "resume.exe", []byte("x"))

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, ".exe")
}

func TestUpload_RejectsEmptyFile(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), uuid.New(), "resume.pdf", nil)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	database := newFakeDB()
	svc := NewService(database, storage.NewMemory(), &countingExtractor{}, passthroughText{}, zap.NewNop(),
		Options{MaxUploadBytes: 10})

	_, err := svc.Upload(context.Background(), uuid.New(), "resume.txt", []byte("more than ten bytes"))

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestUpload_CreatesSeekerRow(t *testing.T) {
	svc, database, _ := newTestService(t)
	seekerID := uuid.New()

	resume := uploadResume(t, svc, seekerID)

	assert.Equal(t, seekerID, resume.SeekerID)
	status, ats, err := svc.Status(context.Background(), seekerID)
	require.NoError(t, err)
	assert.Equal(t, db.ResumeStatusPending, status)
	assert.Nil(t, ats)
	assert.Len(t, database.resumes, 1)
}

func TestParse_Succeeds(t *testing.T) {
	svc, _, extractor := newTestService(t)
	seekerID := uuid.New()
	resume := uploadResume(t, svc, seekerID)

	parsed, err := svc.Parse(context.Background(), seekerID, resume.ID)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", parsed.Name)
	require.NotNil(t, parsed.ATSScore)
	assert.Greater(t, *parsed.ATSScore, 0.0)
	assert.Equal(t, 1, extractor.count())

	status, ats, err := svc.Status(context.Background(), seekerID)
	require.NoError(t, err)
	assert.Equal(t, db.ResumeStatusParsed, status)
	require.NotNil(t, ats)
	assert.Equal(t, *parsed.ATSScore, *ats)
}

func TestParse_AtMostOnceUnderConcurrency(t *testing.T) {
	svc, _, extractor := newTestService(t)
	seekerID := uuid.New()
	resume := uploadResume(t, svc, seekerID)

	const workers = 25
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Parse(context.Background(), seekerID, resume.ID)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, extractor.count())
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrParseInProgress)
		}
	}
}

func TestParse_SecondCallReturnsStoredResult(t *testing.T) {
	svc, _, extractor := newTestService(t)
	seekerID := uuid.New()
	resume := uploadResume(t, svc, seekerID)

	first, err := svc.Parse(context.Background(), seekerID, resume.ID)
	require.NoError(t, err)
	second, err := svc.Parse(context.Background(), seekerID, resume.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, extractor.count())
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Skills, second.Skills)
}

func TestParse_FailureAllowsRetry(t *testing.T) {
	svc, _, extractor := newTestService(t)
	extractor.failNext = 1
	seekerID := uuid.New()
	resume := uploadResume(t, svc, seekerID)

	_, err := svc.Parse(context.Background(), seekerID, resume.ID)
	var apiErr *extraction.APICallError
	require.ErrorAs(t, err, &apiErr)

	status, _, err := svc.Status(context.Background(), seekerID)
	require.NoError(t, err)
	assert.Equal(t, db.ResumeStatusFailed, status)

	parsed, err := svc.Parse(context.Background(), seekerID, resume.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", parsed.Name)
	assert.Equal(t, 2, extractor.count())
}

func TestParse_SaveFailureReleasesSlot(t *testing.T) {
	svc, database, extractor := newTestService(t)
	database.failSaves = 1
	seekerID := uuid.New()
	resume := uploadResume(t, svc, seekerID)

	_, err := svc.Parse(context.Background(), seekerID, resume.ID)
	require.Error(t, err)

	// A persistence failure must not leave the seeker stuck in parsing.
	status, _, err := svc.Status(context.Background(), seekerID)
	require.NoError(t, err)
	assert.Equal(t, db.ResumeStatusFailed, status)

	parsed, err := svc.Parse(context.Background(), seekerID, resume.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", parsed.Name)
	assert.Equal(t, 2, extractor.count())
}

func TestParse_RejectsForeignResume(t *testing.T) {
	svc, _, _ := newTestService(t)
	owner := uuid.New()
	resume := uploadResume(t, svc, owner)

	_, err := svc.Parse(context.Background(), uuid.New(), resume.ID)
	assert.ErrorIs(t, err, ErrResumeNotFound)
}

func TestConfirm_RequiresSkills(t *testing.T) {
	svc, _, _ := newTestService(t)
	seekerID := uuid.New()
	uploadResume(t, svc, seekerID)

	_, err := svc.Confirm(context.Background(), seekerID, &extraction.ParsedResume{}, db.ConfirmInput{})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestConfirm_RequiresParsedData(t *testing.T) {
	svc, _, _ := newTestService(t)
	seekerID := uuid.New()
	uploadResume(t, svc, seekerID)

	_, err := svc.Confirm(context.Background(), seekerID, nil, db.ConfirmInput{Skills: []string{"go"}})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestConfirm_FinalizesAndRepeats(t *testing.T) {
	svc, _, _ := newTestService(t)
	seekerID := uuid.New()
	resume := uploadResume(t, svc, seekerID)
	_, err := svc.Parse(context.Background(), seekerID, resume.ID)
	require.NoError(t, err)

	title := "Backend Engineer"
	sp, err := svc.Confirm(context.Background(), seekerID,
		&extraction.ParsedResume{Name: "Jane Doe", Skills: []string{"go", "postgres"}},
		db.ConfirmInput{
			Title:  &title,
			Skills: []string{"go", "postgres"},
		})
	require.NoError(t, err)
	assert.Equal(t, db.ResumeStatusConfirmed, sp.ResumeStatus)

	// A second confirm overwrites the first.
	sp, err = svc.Confirm(context.Background(), seekerID,
		&extraction.ParsedResume{Name: "Jane Doe", Skills: []string{"go"}},
		db.ConfirmInput{
			Skills: []string{"go"},
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, sp.Skills)
	assert.Equal(t, db.ResumeStatusConfirmed, sp.ResumeStatus)
}

func TestConfirm_ReplacesCachedParseResult(t *testing.T) {
	svc, _, extractor := newTestService(t)
	seekerID := uuid.New()
	resume := uploadResume(t, svc, seekerID)
	_, err := svc.Parse(context.Background(), seekerID, resume.ID)
	require.NoError(t, err)

	edited := 91.5
	_, err = svc.Confirm(context.Background(), seekerID,
		&extraction.ParsedResume{
			Name:     "Jane Doe",
			Title:    "Staff Engineer",
			Skills:   []string{"go", "sql"},
			ATSScore: &edited,
		},
		db.ConfirmInput{Skills: []string{"go", "sql"}})
	require.NoError(t, err)

	// The cached result now carries the user's edits, not the model output.
	cached, err := svc.Parse(context.Background(), seekerID, resume.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, extractor.count())
	assert.Equal(t, "Staff Engineer", cached.Title)

	status, ats, err := svc.Status(context.Background(), seekerID)
	require.NoError(t, err)
	assert.Equal(t, db.ResumeStatusConfirmed, status)
	require.NotNil(t, ats)
	assert.Equal(t, edited, *ats)
}

func TestConfirm_UnknownSeeker(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Confirm(context.Background(), uuid.New(),
		&extraction.ParsedResume{Skills: []string{"go"}},
		db.ConfirmInput{Skills: []string{"go"}})
	assert.ErrorIs(t, err, ErrSeekerNotFound)
}

func TestStatus_NoResumeSentinel(t *testing.T) {
	svc, _, _ := newTestService(t)

	status, ats, err := svc.Status(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, db.ResumeStatusNone, status)
	assert.Nil(t, ats)
}
