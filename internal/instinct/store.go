package instinct

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store provides add/query/decay/merge operations over one instinct file.
//
// Every mutating operation loads the full document, mutates it in memory and
// saves the full document back. The mutex makes each cycle a single unit
// within this process; the store assumes it is the single logical owner of
// the file (see package doc for the cross-process caveat).
type Store struct {
	path   string
	logger *zap.Logger
	now    func() time.Time

	mu        sync.Mutex
	lastWrite time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the store's logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides the store's time source. Used by tests to make
// decay and timestamp behavior deterministic.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store backed by the file at path. The file does not
// need to exist yet; it is created on first save.
func NewStore(path string, opts ...StoreOption) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path cannot be empty")
	}

	s := &Store{
		path:   path,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Path returns the store's data file path.
func (s *Store) Path() string {
	return s.path
}

// LastWrite returns the time of the store's most recent save, or the zero
// time if this store instance has not written yet. The Monitor uses it to
// tell the store's own writes apart from external ones.
func (s *Store) LastWrite() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastWrite
}

// AddOrUpdate records an observation of a pattern.
//
// When no instinct with the candidate's ID exists, a new one is inserted
// with the candidate's confidence (or DefaultConfidence when zero), a usage
// count of 1 and createdAt = lastUsed = now. When one exists, it is
// reinforced: confidence += ReinforceStep capped at MaxConfidence, lastUsed
// refreshed, usage count incremented. Repeated calls never create
// duplicates. Returns a copy of the resulting record.
func (s *Store) AddOrUpdate(candidate Instinct) (*Instinct, error) {
	if candidate.ID == "" {
		return nil, ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	idx := doc.findIndex(candidate.ID)
	if idx >= 0 {
		rec := &doc.Instincts[idx]
		rec.Confidence = clampConfidence(rec.Confidence + ReinforceStep)
		rec.LastUsed = now
		if rec.UsageCount < 0 {
			rec.UsageCount = 0
		}
		rec.UsageCount++
	} else {
		confidence := candidate.Confidence
		if confidence == 0 {
			confidence = DefaultConfidence
		}
		doc.Instincts = append(doc.Instincts, Instinct{
			ID:         candidate.ID,
			Context:    candidate.Context,
			Confidence: clampConfidence(confidence),
			UsageCount: 1,
			CreatedAt:  now,
			LastUsed:   now,
		})
		idx = len(doc.Instincts) - 1
	}

	if err := s.save(doc); err != nil {
		return nil, err
	}

	rec := doc.Instincts[idx]
	s.logger.Debug("instinct recorded",
		zap.String("id", rec.ID),
		zap.String("context", rec.Context),
		zap.Float64("confidence", rec.Confidence),
		zap.Int("usage_count", rec.UsageCount))

	return &rec, nil
}

// QueryByContext returns all instincts whose context equals the given value,
// in insertion order. An empty context returns everything. Read-only.
func (s *Store) QueryByContext(context string) ([]Instinct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	if context == "" {
		return append([]Instinct{}, doc.Instincts...), nil
	}

	matches := []Instinct{}
	for _, in := range doc.Instincts {
		if in.Context == context {
			matches = append(matches, in)
		}
	}
	return matches, nil
}

// QueryByConfidence returns all instincts with confidence >= threshold, in
// insertion order. Read-only. DefaultQueryThreshold is the conventional
// threshold for "trusted" instincts.
func (s *Store) QueryByConfidence(threshold float64) ([]Instinct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	matches := []Instinct{}
	for _, in := range doc.Instincts {
		if in.Confidence >= threshold {
			matches = append(matches, in)
		}
	}
	return matches, nil
}

// ExportTo writes the current document, augmented with exportedAt and
// exportVersion stamps, to dest. The store's own file is not modified.
func (s *Store) ExportTo(dest string) error {
	if dest == "" {
		return fmt.Errorf("export destination cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	export := ExportDocument{
		Document:      *doc,
		ExportedAt:    s.now().UTC(),
		ExportVersion: ExportVersion,
	}
	if err := writeJSON(dest, &export); err != nil {
		return fmt.Errorf("exporting store: %w", err)
	}

	s.logger.Info("store exported",
		zap.String("dest", dest),
		zap.Int("instincts", len(doc.Instincts)))

	return nil
}

// ImportFrom merges the document at src into the store.
//
// The source must carry an instincts sequence and every incoming record must
// satisfy the store invariants; otherwise ImportFrom fails with
// ErrInvalidImport and the local file is left untouched. Incoming records
// with unknown IDs are appended unchanged. On an ID conflict the incoming
// record replaces the local one only when its confidence is strictly
// greater; ties keep the local record.
func (s *Store) ImportFrom(src string) (*MergeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("reading import source: %w", err)
	}

	// Instincts is a pointer so a present-but-empty sequence can be told
	// apart from a missing key.
	var incoming struct {
		Instincts *[]Instinct `json:"instincts"`
	}
	if err := json.Unmarshal(data, &incoming); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if incoming.Instincts == nil {
		return nil, fmt.Errorf("%w: missing instincts sequence", ErrInvalidImport)
	}
	for i := range *incoming.Instincts {
		if err := (*incoming.Instincts)[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
	}

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	result := &MergeResult{}
	for _, in := range *incoming.Instincts {
		idx := doc.findIndex(in.ID)
		if idx < 0 {
			doc.Instincts = append(doc.Instincts, in)
			result.Added++
			continue
		}
		if in.Confidence > doc.Instincts[idx].Confidence {
			doc.Instincts[idx] = in
			result.Replaced++
		} else {
			result.Kept++
		}
	}

	if err := s.save(doc); err != nil {
		return nil, err
	}

	s.logger.Info("import merged",
		zap.String("src", src),
		zap.Int("added", result.Added),
		zap.Int("replaced", result.Replaced),
		zap.Int("kept", result.Kept))

	return result, nil
}

// DecayUnused reduces the confidence of every instinct whose lastUsed is
// more than daysThreshold days in the past by DecayStep, floored at
// MinConfidence. A non-positive daysThreshold uses DefaultDecayDays. The
// document is persisted even when nothing decayed, matching the store's
// full-rewrite contract.
func (s *Store) DecayUnused(daysThreshold int) (*DecayResult, error) {
	if daysThreshold <= 0 {
		daysThreshold = DefaultDecayDays
	}
	maxAge := time.Duration(daysThreshold) * 24 * time.Hour

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	result := &DecayResult{Scanned: len(doc.Instincts)}
	for i := range doc.Instincts {
		rec := &doc.Instincts[i]
		if now.Sub(rec.LastUsed) <= maxAge {
			continue
		}
		decayed := clampConfidence(rec.Confidence - DecayStep)
		if decayed != rec.Confidence {
			rec.Confidence = decayed
			result.Decayed++
		}
	}

	if err := s.save(doc); err != nil {
		return nil, err
	}

	s.logger.Info("decay pass completed",
		zap.Int("scanned", result.Scanned),
		zap.Int("decayed", result.Decayed),
		zap.Int("threshold_days", daysThreshold))

	return result, nil
}

// load reads the store's own file, falling back to an empty document when
// the file is corrupt. The fallback is logged; the corrupt file is only
// overwritten on the next successful save.
func (s *Store) load() (*Document, error) {
	doc, err := Load(s.path)
	if err == nil {
		return doc, nil
	}
	if errors.Is(err, ErrCorruptStore) {
		s.logger.Warn("store file corrupt, starting from empty document",
			zap.String("path", s.path),
			zap.Error(err))
		return NewDocument(), nil
	}
	return nil, err
}

// save persists the document and records the write time for the Monitor.
func (s *Store) save(doc *Document) error {
	if err := Save(s.path, doc); err != nil {
		return err
	}
	s.lastWrite = time.Now()
	return nil
}
