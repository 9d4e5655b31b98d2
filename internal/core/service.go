package core

import (
	"staffcast/internal/config"
	"staffcast/internal/csvio"
	"staffcast/internal/engine"
)

// Service provides the core business logic for the recommendation workflow.
// It owns the in-memory batch sessions; all mutation happens through its
// methods, so handlers never touch shared state directly.
type Service struct {
	sessions *sessionStore
}

// NewService creates a Service with the configured session TTL.
func NewService(cfg *config.Config) *Service {
	return &Service{
		sessions: newSessionStore(cfg.Session.TTL),
	}
}

// Recommend runs the single-record interactive path, including input
// validation. It is a thin pass-through to the engine so the web layer
// depends only on core.
func (s *Service) Recommend(p engine.Params) (engine.Result, error) {
	return engine.Compute(p)
}

// UploadSummary describes a freshly created batch session.
type UploadSummary struct {
	Session  string   `json:"session"`
	FileName string   `json:"fileName"`
	Headers  []string `json:"headers"`
	RowCount int      `json:"rows"`
}

// CreateSession parses uploaded CSV text and registers a batch session.
// A file without a header row fails with ErrEmptyFile. A file with headers
// but no data rows is accepted; processing it later fails with
// ErrEmptyBatch, matching what the user sees when they skip the upload.
func (s *Service) CreateSession(fileName, csvText string) (UploadSummary, error) {
	doc := csvio.Parse(csvText)
	if doc.Empty() {
		return UploadSummary{}, ErrEmptyFile
	}

	token := s.sessions.create(fileName, doc)
	return UploadSummary{
		Session:  token,
		FileName: fileName,
		Headers:  doc.Headers,
		RowCount: len(doc.Rows),
	}, nil
}

// BatchOptions is the shared configuration applied to every row of a batch.
// It is supplied at process time, not upload time, so reprocessing the same
// session with a different rounding rule works without re-uploading.
type BatchOptions struct {
	Rule     engine.RoundRule
	MinStaff int
	MaxStaff *int
}

// ProcessSummary reports the outcome of processing a batch.
type ProcessSummary struct {
	Session  string `json:"session"`
	RowCount int    `json:"rows"`
	Flagged  int    `json:"flagged"` // rows whose inputs were non-numeric
}

// Process runs the recommendation engine over every row of a session and
// stores the augmented result set on the session for download. Rows are
// processed in order and none are dropped; rows with non-numeric inputs
// carry NaN outputs and are counted in Flagged.
func (s *Service) Process(token string, opts BatchOptions) (ProcessSummary, error) {
	s.sessions.mu.Lock()
	defer s.sessions.mu.Unlock()

	sess, ok := s.sessions.get(token)
	if !ok {
		return ProcessSummary{}, ErrSessionNotFound
	}
	if len(sess.doc.Rows) == 0 {
		return ProcessSummary{}, ErrEmptyBatch
	}

	results, flagged := augment(sess.doc, opts.Rule, opts.MinStaff, opts.MaxStaff)
	sess.results = &results
	sess.flagged = flagged

	return ProcessSummary{
		Session:  token,
		RowCount: len(results.Rows),
		Flagged:  flagged,
	}, nil
}

// Results returns the processed result set for a session.
// Fails with ErrSessionNotFound for unknown or expired sessions and
// ErrNoResults when the session was never processed.
func (s *Service) Results(token string) (ResultSet, error) {
	s.sessions.mu.Lock()
	defer s.sessions.mu.Unlock()

	sess, ok := s.sessions.get(token)
	if !ok {
		return ResultSet{}, ErrSessionNotFound
	}
	if sess.results == nil {
		return ResultSet{}, ErrNoResults
	}
	return *sess.results, nil
}

// ActiveSessions reports the number of live batch sessions.
func (s *Service) ActiveSessions() int {
	return s.sessions.len()
}
