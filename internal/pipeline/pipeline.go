// Package pipeline orchestrates the resume lifecycle: upload, AI extraction,
// and profile confirmation. Extraction runs at most once per seeker; the
// status row in the database is the authoritative gate and an in-process
// singleflight group collapses concurrent requests before they reach it.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/nikhilshetty5/superhireX/internal/db"
	"github.com/nikhilshetty5/superhireX/internal/extraction"
	"github.com/nikhilshetty5/superhireX/internal/scoring"
	"github.com/nikhilshetty5/superhireX/internal/storage"
)

// Database is the persistence surface the pipeline needs.
type Database interface {
	EnsureSeekerProfile(ctx context.Context, userID uuid.UUID) error
	GetSeekerProfile(ctx context.Context, userID uuid.UUID) (*db.SeekerProfile, error)
	BeginParsing(ctx context.Context, userID uuid.UUID) (bool, string, error)
	SaveParsedResume(ctx context.Context, userID uuid.UUID, parsedData json.RawMessage, atsScore float64, skills []string) error
	MarkParseFailed(ctx context.Context, userID uuid.UUID) error
	ConfirmSeekerProfile(ctx context.Context, userID uuid.UUID, input db.ConfirmInput) (*db.SeekerProfile, error)
	CreateResume(ctx context.Context, seekerID uuid.UUID, filePath, fileName string) (*db.Resume, error)
	GetResumeForSeeker(ctx context.Context, resumeID, seekerID uuid.UUID) (*db.Resume, error)
	MarkResumeParsed(ctx context.Context, resumeID uuid.UUID) error
}

// Service runs the resume pipeline.
type Service struct {
	db        Database
	store     storage.Store
	extractor extraction.Extractor
	text      extraction.TextExtractor
	logger    *zap.Logger

	maxUploadBytes int64
	allowedExts    map[string]bool

	parseGroup singleflight.Group
}

// Options configures upload limits.
type Options struct {
	MaxUploadBytes int64
	AllowedExts    []string
}

// DefaultAllowedExts lists the accepted resume file extensions.
var DefaultAllowedExts = []string{".pdf", ".doc", ".docx", ".txt"}

// NewService creates a pipeline service.
func NewService(database Database, store storage.Store, extractor extraction.Extractor, text extraction.TextExtractor, logger *zap.Logger, opts Options) *Service {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 5 << 20
	}
	if len(opts.AllowedExts) == 0 {
		opts.AllowedExts = DefaultAllowedExts
	}
	allowed := make(map[string]bool, len(opts.AllowedExts))
	for _, ext := range opts.AllowedExts {
		allowed[strings.ToLower(ext)] = true
	}
	return &Service{
		db:             database,
		store:          store,
		extractor:      extractor,
		text:           text,
		logger:         logger,
		maxUploadBytes: opts.MaxUploadBytes,
		allowedExts:    allowed,
	}
}

// Upload validates and stores a resume file, records it, and ensures the
// seeker has a lifecycle row.
func (s *Service) Upload(ctx context.Context, seekerID uuid.UUID, filename string, content []byte) (*db.Resume, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !s.allowedExts[ext] {
		return nil, &ValidationError{Message: fmt.Sprintf("unsupported file type %q", ext)}
	}
	if len(content) == 0 {
		return nil, &ValidationError{Message: "uploaded file is empty"}
	}
	if int64(len(content)) > s.maxUploadBytes {
		return nil, &ValidationError{Message: fmt.Sprintf("file exceeds %d byte limit", s.maxUploadBytes)}
	}

	if err := s.db.EnsureSeekerProfile(ctx, seekerID); err != nil {
		return nil, err
	}

	locator, err := s.store.Put(ctx, seekerID, filename, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	resume, err := s.db.CreateResume(ctx, seekerID, locator, filename)
	if err != nil {
		return nil, err
	}

	s.logger.Info("resume uploaded",
		zap.String("seeker_id", seekerID.String()),
		zap.String("resume_id", resume.ID.String()),
		zap.Int("bytes", len(content)))

	return resume, nil
}

// Parse runs AI extraction for a seeker's resume at most once. Concurrent
// callers share one execution; a repeat call after success returns the
// stored result without spending another extraction.
func (s *Service) Parse(ctx context.Context, seekerID, resumeID uuid.UUID) (*extraction.ParsedResume, error) {
	v, err, _ := s.parseGroup.Do(seekerID.String(), func() (interface{}, error) {
		return s.parseOnce(ctx, seekerID, resumeID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*extraction.ParsedResume), nil
}

func (s *Service) parseOnce(ctx context.Context, seekerID, resumeID uuid.UUID) (*extraction.ParsedResume, error) {
	resume, err := s.db.GetResumeForSeeker(ctx, resumeID, seekerID)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, ErrResumeNotFound
	}

	acquired, status, err := s.db.BeginParsing(ctx, seekerID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		switch status {
		case db.ResumeStatusParsing:
			return nil, ErrParseInProgress
		case db.ResumeStatusParsed, db.ResumeStatusConfirmed:
			return s.cachedResult(ctx, seekerID)
		case db.ResumeStatusNone:
			return nil, ErrSeekerNotFound
		default:
			return nil, ErrParseInProgress
		}
	}

	// The transition is ours now. Finish the work even if the caller goes
	// away, otherwise the row would be stuck in parsing.
	ctx = context.WithoutCancel(ctx)

	parsed, err := s.extract(ctx, resume)
	if err != nil {
		return nil, s.failParse(ctx, seekerID, resume.ID, err)
	}

	// The model may grade the resume itself; the heuristic only fills in
	// when it did not.
	ats := scoring.ATSScore(parsed)
	if parsed.ATSScore != nil {
		ats = *parsed.ATSScore
	} else {
		parsed.ATSScore = &ats
	}

	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		return nil, s.failParse(ctx, seekerID, resume.ID, fmt.Errorf("failed to marshal parsed resume: %w", err))
	}
	if err := s.db.SaveParsedResume(ctx, seekerID, parsedJSON, ats, parsed.Skills); err != nil {
		return nil, s.failParse(ctx, seekerID, resume.ID, err)
	}
	if err := s.db.MarkResumeParsed(ctx, resume.ID); err != nil {
		return nil, s.failParse(ctx, seekerID, resume.ID, err)
	}

	s.logger.Info("resume parsed",
		zap.String("seeker_id", seekerID.String()),
		zap.String("resume_id", resume.ID.String()),
		zap.Float64("ats_score", ats))

	return parsed, nil
}

// failParse moves the seeker back to failed so a retry can reclaim the
// transition. Extraction and persistence failures both end here; the row
// must never be left in parsing.
func (s *Service) failParse(ctx context.Context, seekerID, resumeID uuid.UUID, cause error) error {
	if markErr := s.db.MarkParseFailed(ctx, seekerID); markErr != nil {
		s.logger.Error("failed to record parse failure",
			zap.String("seeker_id", seekerID.String()),
			zap.Error(markErr))
	}
	s.logger.Warn("resume parse failed",
		zap.String("seeker_id", seekerID.String()),
		zap.String("resume_id", resumeID.String()),
		zap.Error(cause))
	return cause
}

func (s *Service) extract(ctx context.Context, resume *db.Resume) (*extraction.ParsedResume, error) {
	content, err := s.store.Get(ctx, resume.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume file: %w", err)
	}

	text, err := s.text.Extract(resume.FileName, content)
	if err != nil {
		return nil, err
	}

	return s.extractor.ExtractResume(ctx, text)
}

// cachedResult rebuilds the extraction result from the stored profile row.
func (s *Service) cachedResult(ctx context.Context, seekerID uuid.UUID) (*extraction.ParsedResume, error) {
	sp, err := s.db.GetSeekerProfile(ctx, seekerID)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, ErrSeekerNotFound
	}
	if len(sp.ParsedData) == 0 {
		return nil, fmt.Errorf("seeker %s has status %s but no parsed data", seekerID, sp.ResumeStatus)
	}

	var parsed extraction.ParsedResume
	if err := json.Unmarshal(sp.ParsedData, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode stored parse result: %w", err)
	}
	return &parsed, nil
}

// Confirm writes the user-approved resume data and finalizes the lifecycle.
// The confirmed version replaces the cached extraction output entirely, so
// later reads and repeat parses serve the user's edits, not the model's.
// Repeated confirms overwrite the previous data.
func (s *Service) Confirm(ctx context.Context, seekerID uuid.UUID, parsed *extraction.ParsedResume, profile db.ConfirmInput) (*db.SeekerProfile, error) {
	if len(profile.Skills) == 0 {
		return nil, &ValidationError{Message: "at least one skill is required"}
	}
	if parsed == nil {
		return nil, &ValidationError{Message: "parsed resume data is required"}
	}

	if parsed.ATSScore == nil {
		ats := scoring.ATSScore(parsed)
		parsed.ATSScore = &ats
	}

	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal confirmed resume: %w", err)
	}
	profile.ParsedData = parsedJSON
	profile.ATSScore = parsed.ATSScore

	sp, err := s.db.ConfirmSeekerProfile(ctx, seekerID, profile)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, ErrSeekerNotFound
	}

	s.logger.Info("profile confirmed",
		zap.String("seeker_id", seekerID.String()),
		zap.Int("skills", len(sp.Skills)))

	return sp, nil
}

// Status reports the seeker's resume lifecycle state and ATS score. Seekers
// without a state row report the no_resume sentinel and a nil score.
func (s *Service) Status(ctx context.Context, seekerID uuid.UUID) (string, *float64, error) {
	sp, err := s.db.GetSeekerProfile(ctx, seekerID)
	if err != nil {
		return "", nil, err
	}
	if sp == nil {
		return db.ResumeStatusNone, nil, nil
	}
	return sp.ResumeStatus, sp.ATSScore, nil
}
