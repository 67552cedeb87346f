package instinct

import (
	"errors"
	"fmt"
	"time"
)

// Common errors for instinct store operations.
var (
	ErrEmptyID       = errors.New("instinct ID cannot be empty")
	ErrCorruptStore  = errors.New("store file corrupted")
	ErrInvalidImport = errors.New("invalid import document")
)

// Confidence and document constants.
const (
	// DocumentVersion is the version tag stamped on newly created documents.
	DocumentVersion = "1.0"

	// ExportVersion is the version tag stamped on export documents.
	ExportVersion = "1.0"

	// DefaultConfidence is assigned to a new instinct recorded without an
	// explicit confidence.
	DefaultConfidence = 0.3

	// ReinforceStep is added to confidence each time an instinct is re-observed.
	ReinforceStep = 0.1

	// DecayStep is subtracted from confidence when an instinct decays.
	DecayStep = 0.05

	// MinConfidence is the floor for any stored confidence.
	MinConfidence = 0.1

	// MaxConfidence is the ceiling for any stored confidence.
	MaxConfidence = 1.0

	// DefaultQueryThreshold is the default minimum confidence for
	// threshold queries.
	DefaultQueryThreshold = 0.7

	// DefaultDecayDays is the default age in days after which an unused
	// instinct decays.
	DefaultDecayDays = 30
)

// Instinct is a single learned pattern.
//
// ID is the sole identity key for add/update/merge matching. Context is a
// free-form grouping tag used for filtered queries. LastUsed is refreshed
// whenever the instinct is re-observed, but never by decay or export.
type Instinct struct {
	ID         string    `json:"id"`
	Context    string    `json:"context,omitempty"`
	Confidence float64   `json:"confidence"`
	UsageCount int       `json:"usageCount"`
	CreatedAt  time.Time `json:"createdAt"`
	LastUsed   time.Time `json:"lastUsed"`
}

// Validate checks the invariants every persisted instinct must hold.
func (in *Instinct) Validate() error {
	if in.ID == "" {
		return ErrEmptyID
	}
	if in.Confidence < MinConfidence || in.Confidence > MaxConfidence {
		return fmt.Errorf("instinct %q: confidence %v outside [%v, %v]",
			in.ID, in.Confidence, MinConfidence, MaxConfidence)
	}
	if in.UsageCount < 1 {
		return fmt.Errorf("instinct %q: usage count must be >= 1, got %d", in.ID, in.UsageCount)
	}
	return nil
}

// Document is the root persisted object: the full set of instincts plus
// document metadata. Instinct order is insertion order and is preserved
// across load/save for determinism.
type Document struct {
	Instincts   []Instinct `json:"instincts"`
	Version     string     `json:"version"`
	LastUpdated *time.Time `json:"lastUpdated"`
}

// NewDocument returns an empty document with the current version tag and no
// lastUpdated stamp.
func NewDocument() *Document {
	return &Document{
		Instincts: []Instinct{},
		Version:   DocumentVersion,
	}
}

// findIndex returns the position of the instinct with the given ID, or -1.
func (d *Document) findIndex(id string) int {
	for i := range d.Instincts {
		if d.Instincts[i].ID == id {
			return i
		}
	}
	return -1
}

// ExportDocument is a document augmented with export metadata. The embedded
// document keeps the same wire shape; exports only add the two extra keys.
type ExportDocument struct {
	Document
	ExportedAt    time.Time `json:"exportedAt"`
	ExportVersion string    `json:"exportVersion"`
}

// MergeResult summarizes an import merge.
type MergeResult struct {
	// Added is the number of incoming instincts with no local counterpart.
	Added int

	// Replaced is the number of local instincts overwritten by an incoming
	// record with strictly higher confidence.
	Replaced int

	// Kept is the number of local instincts that won their conflict
	// (equal or higher confidence than the incoming record).
	Kept int
}

// DecayResult summarizes a decay pass.
type DecayResult struct {
	// Scanned is the total number of instincts examined.
	Scanned int

	// Decayed is the number of instincts whose confidence was reduced.
	Decayed int
}

// clampConfidence bounds a confidence score to [MinConfidence, MaxConfidence].
func clampConfidence(c float64) float64 {
	if c < MinConfidence {
		return MinConfidence
	}
	if c > MaxConfidence {
		return MaxConfidence
	}
	return c
}
