package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/staff-directory-api/internal/models"
)

// DelimitedText extracts candidates from CSV-like text. The delimiter is
// sniffed from the header line among comma, semicolon and tab.
type DelimitedText struct{}

// Extract implements Extractor
func (DelimitedText) Extract(ctx context.Context, artifact models.Artifact) ([]Candidate, error) {
	data := bytes.TrimPrefix(artifact.Data, []byte("\ufeff"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyArtifact
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	var rows [][]string
	var lines []int
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read delimited text: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, record)
		lines = append(lines, line)
	}
	return fromTable(rows, lines)
}

func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', strings.Count(string(line), ",")
	for _, d := range []rune{';', '\t'} {
		if c := strings.Count(string(line), string(d)); c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}
