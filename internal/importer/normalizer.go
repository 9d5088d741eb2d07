// Package importer turns externally supplied artifacts into draft staff
// records. Extraction is best-effort: drafts are never merged into the roster
// here, and callers must validate each one before committing it.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/staff-directory-api/internal/models"
)

var (
	// ErrUnsupportedFormat is returned when no extractor handles the artifact format
	ErrUnsupportedFormat = errors.New("unsupported artifact format")

	// ErrEmptyArtifact is returned for artifacts without content
	ErrEmptyArtifact = errors.New("artifact is empty")

	// ErrTooManyDrafts is returned when an artifact yields more drafts than allowed
	ErrTooManyDrafts = errors.New("artifact exceeds the draft limit")

	// ErrNoColumns is returned when a table header names no known column
	ErrNoColumns = errors.New("no recognizable columns in header")
)

// Candidate is one entry pulled out of an artifact
type Candidate struct {
	Line int
	Form models.StaffForm
	// Confidence is the extractor's 1-100 estimate for this entry; 0 lets the
	// normalizer derive it from field completeness
	Confidence int
	// Problem marks an entry that could not be decoded; it becomes a skipped line
	Problem string
}

// Extractor reads candidates out of one artifact format
type Extractor interface {
	Extract(ctx context.Context, artifact models.Artifact) ([]Candidate, error)
}

// ExtractorFunc adapts a function to the Extractor interface
type ExtractorFunc func(ctx context.Context, artifact models.Artifact) ([]Candidate, error)

// Extract calls f
func (f ExtractorFunc) Extract(ctx context.Context, artifact models.Artifact) ([]Candidate, error) {
	return f(ctx, artifact)
}

// Normalizer dispatches artifacts to format extractors and reserves draft ids
type Normalizer struct {
	extractors map[models.ArtifactFormat]Extractor
	maxDrafts  int
	newID      func() string
}

// NewNormalizer creates a normalizer with the built-in delimited-text,
// spreadsheet and document extractors. maxDrafts <= 0 means no limit.
// Captured images and live captures need an injected extractor.
func NewNormalizer(maxDrafts int) *Normalizer {
	n := &Normalizer{
		extractors: make(map[models.ArtifactFormat]Extractor),
		maxDrafts:  maxDrafts,
		newID:      func() string { return uuid.New().String() },
	}
	n.Register(models.FormatDelimitedText, DelimitedText{})
	n.Register(models.FormatSpreadsheet, Spreadsheet{})
	n.Register(models.FormatDocument, Document{})
	return n
}

// Register installs or replaces the extractor for a format
func (n *Normalizer) Register(format models.ArtifactFormat, e Extractor) {
	n.extractors[format] = e
}

// Supports reports whether an extractor is installed for format
func (n *Normalizer) Supports(format models.ArtifactFormat) bool {
	_, ok := n.extractors[format]
	return ok
}

// Normalize extracts drafts from artifact. Every draft gets a fresh id that
// collides neither with existingIDs nor with another draft of the same
// extraction; uniqueness against a roster that changed afterwards is the
// committer's concern.
func (n *Normalizer) Normalize(ctx context.Context, artifact models.Artifact, existingIDs []string) (*models.Extraction, error) {
	e, ok := n.extractors[artifact.Format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, artifact.Format)
	}

	candidates, err := e.Extract(ctx, artifact)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", artifact.Format, err)
	}

	taken := make(map[string]bool, len(existingIDs)+len(candidates))
	for _, id := range existingIDs {
		taken[id] = true
	}

	out := &models.Extraction{Drafts: []models.Draft{}}
	total := 0
	for _, c := range candidates {
		if c.Problem != "" {
			out.Skipped = append(out.Skipped, models.DraftRejection{Line: c.Line, Reason: c.Problem})
			continue
		}
		if n.maxDrafts > 0 && len(out.Drafts) == n.maxDrafts {
			return nil, fmt.Errorf("%w (%d)", ErrTooManyDrafts, n.maxDrafts)
		}

		id := n.newID()
		for taken[id] {
			id = n.newID()
		}
		taken[id] = true

		c.Form.Normalize()
		out.Drafts = append(out.Drafts, models.Draft{ID: id, Line: c.Line, Form: c.Form})

		conf := c.Confidence
		if conf <= 0 {
			conf = Completeness(c.Form)
		}
		total += clamp(conf)
	}

	if len(out.Drafts) > 0 {
		out.Confidence = (total + len(out.Drafts)/2) / len(out.Drafts)
	}
	return out, nil
}

// Completeness scores a form 0-100 by how many required fields carry a
// plausible value
func Completeness(f models.StaffForm) int {
	checks := []bool{
		strings.TrimSpace(f.FirstName) != "",
		strings.TrimSpace(f.LastName) != "",
		strings.TrimSpace(f.Function) != "",
		strings.TrimSpace(string(f.Department)) != "",
		isDigits(strings.TrimSpace(f.Extension)),
		strings.Contains(f.Email, "@"),
	}
	ok := 0
	for _, c := range checks {
		if c {
			ok++
		}
	}
	return ok * 100 / len(checks)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
