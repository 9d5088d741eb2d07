package models

import (
	"time"
)

// ArtifactFormat is the declared format tag of an import artifact
type ArtifactFormat string

const (
	FormatDelimitedText ArtifactFormat = "delimited-text"
	FormatSpreadsheet   ArtifactFormat = "spreadsheet"
	FormatDocument      ArtifactFormat = "document"
	FormatCapturedImage ArtifactFormat = "captured-image"
	FormatLiveCapture   ArtifactFormat = "live-capture"
)

// ArtifactFormats lists every format tag
var ArtifactFormats = []ArtifactFormat{
	FormatDelimitedText,
	FormatSpreadsheet,
	FormatDocument,
	FormatCapturedImage,
	FormatLiveCapture,
}

// Label returns the display label for the format
func (f ArtifactFormat) Label() string {
	switch f {
	case FormatDelimitedText:
		return "Delimited text (CSV)"
	case FormatSpreadsheet:
		return "Spreadsheet"
	case FormatDocument:
		return "Document"
	case FormatCapturedImage:
		return "Captured image"
	case FormatLiveCapture:
		return "Live capture"
	}
	return string(f)
}

// Valid reports whether f is a known format tag
func (f ArtifactFormat) Valid() bool {
	switch f {
	case FormatDelimitedText, FormatSpreadsheet, FormatDocument, FormatCapturedImage, FormatLiveCapture:
		return true
	}
	return false
}

// Artifact is an externally supplied import source. For live captures Data
// holds the captured frame and Filename is empty.
type Artifact struct {
	Format   ArtifactFormat `json:"format"`
	Filename string         `json:"filename,omitempty"`
	Data     []byte         `json:"-"`
}

// Draft is a candidate record produced by extraction. Its id is reserved
// against the roster snapshot extraction ran on, not yet committed.
type Draft struct {
	ID string `json:"id"`
	// Line is the 1-based source position (row, line or array index), 0 when unknown
	Line int       `json:"line,omitempty"`
	Form StaffForm `json:"form"`
}

// Extraction is the output of the import boundary
type Extraction struct {
	Drafts []Draft `json:"drafts"`
	// Confidence is the extractor's own 0-100 estimate; no accuracy is implied
	Confidence int `json:"confidence"`
	// Skipped lists source entries that could not be turned into a draft at all
	Skipped []DraftRejection `json:"skipped,omitempty"`
}

// ImportSessionStatus represents the lifecycle of an import session
type ImportSessionStatus string

const (
	SessionPending   ImportSessionStatus = "pending"
	SessionCommitted ImportSessionStatus = "committed"
	SessionDiscarded ImportSessionStatus = "discarded"
)

// DraftRejection explains why a draft was not admitted to the roster
type DraftRejection struct {
	DraftID string      `json:"draftId"`
	Line    int         `json:"line"`
	Reason  string      `json:"reason"`
	Fields  FieldErrors `json:"fields,omitempty"`
}

// ImportSession holds extracted drafts awaiting user confirmation
type ImportSession struct {
	ID            string              `json:"sessionId"`
	Format        ArtifactFormat      `json:"format"`
	Filename      string              `json:"filename,omitempty"`
	Status        ImportSessionStatus `json:"status"`
	Drafts        []Draft             `json:"drafts"`
	Confidence    int                 `json:"confidence"`
	LowConfidence bool                `json:"lowConfidence"`
	// Issues are validation problems found at extraction time, keyed by draft
	Issues      []DraftRejection `json:"issues,omitempty"`
	Committed   []string         `json:"committed,omitempty"`
	Rejected    []DraftRejection `json:"rejected,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
}

// CommitRequest confirms a pending session. An empty DraftIDs commits every draft;
// Overrides replace the extracted form of a draft with user-corrected values.
type CommitRequest struct {
	DraftIDs  []string             `json:"draftIds,omitempty"`
	Overrides map[string]StaffForm `json:"overrides,omitempty"`
}

// ImportResult reports what a commit admitted and what it rejected
type ImportResult struct {
	SessionID string           `json:"sessionId,omitempty"`
	Committed []StaffRecord    `json:"committed"`
	Rejected  []DraftRejection `json:"rejected,omitempty"`
}
