package importer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/staff-directory-api/internal/models"
)

// Spreadsheet extracts candidates from the first sheet of an XLSX workbook.
// Row 1 is the header.
type Spreadsheet struct{}

// Extract implements Extractor
func (Spreadsheet) Extract(ctx context.Context, artifact models.Artifact) ([]Candidate, error) {
	if len(artifact.Data) == 0 {
		return nil, ErrEmptyArtifact
	}

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyArtifact
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromTable(rows, nil)
}
