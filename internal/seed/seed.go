// Package seed reads and writes hand-authored rosters in YAML.
//
// A seed file holds a single "staff" list whose entries use the record's
// field names:
//
//	staff:
//	  - id: rec-001
//	    firstName: Kossi
//	    lastName: AKUE
//	    department: reception
//	    isAvailable: true
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/staff-directory-api/internal/models"
)

// Document is the top-level layout of a seed file
type Document struct {
	Staff []models.StaffRecord `yaml:"staff"`
}

// Load reads a seed file. A missing file yields an empty roster.
func Load(path string) ([]models.StaffRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return records, nil
}

// Parse decodes a seed document. Unknown keys are rejected so typos in
// hand-written files surface instead of silently dropping a field.
func Parse(r io.Reader) ([]models.StaffRecord, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return doc.Staff, nil
}

// Write encodes records as a seed document
func Write(w io.Writer, records []models.StaffRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Staff: records}); err != nil {
		return err
	}
	return enc.Close()
}

// Save writes records to path, replacing any existing file
func Save(path string, records []models.StaffRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
