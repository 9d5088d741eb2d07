package importer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/staff-directory-api/internal/models"
)

// Document extracts candidates from JSON: an array of staff objects, an
// object with a "staff" array, or newline-delimited objects.
type Document struct{}

// Extract implements Extractor
func (Document) Extract(ctx context.Context, artifact models.Artifact) ([]Candidate, error) {
	data := bytes.TrimSpace(bytes.TrimPrefix(artifact.Data, []byte("\ufeff")))
	if len(data) == 0 {
		return nil, ErrEmptyArtifact
	}

	switch data[0] {
	case '[':
		var forms []models.StaffForm
		if err := json.Unmarshal(data, &forms); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		return indexed(forms), nil
	case '{':
		var wrapped struct {
			Staff []models.StaffForm `json:"staff"`
		}
		if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Staff != nil {
			return indexed(wrapped.Staff), nil
		}
	}
	return ndjson(ctx, data)
}

func indexed(forms []models.StaffForm) []Candidate {
	out := make([]Candidate, len(forms))
	for i, f := range forms {
		out[i] = Candidate{Line: i + 1, Form: f}
	}
	return out
}

func ndjson(ctx context.Context, data []byte) ([]Candidate, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var out []Candidate
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var form models.StaffForm
		if err := json.Unmarshal(line, &form); err != nil {
			out = append(out, Candidate{Line: lineNum, Problem: fmt.Sprintf("invalid JSON: %v", err)})
			continue
		}
		out = append(out, Candidate{Line: lineNum, Form: form})
	}
	return out, scanner.Err()
}
