package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/staff-directory-api/internal/models"
)

// LastSeenLayout formats the last-seen column of exports
const LastSeenLayout = "2006-01-02 15:04"

// Export formats
const (
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	*core
	staff StaffService
	loc   *time.Location
}

// newExportService creates a new ExportService
func newExportService(c *core, staff StaffService, loc *time.Location) *exportService {
	ec := *c
	ec.log = c.log.With().Str("service", "export").Logger()
	return &exportService{core: &ec, staff: staff, loc: loc}
}

// ExportRows flattens records into export rows. lastSeen is rendered in loc.
func ExportRows(records []models.StaffRecord, loc *time.Location) []models.ExportRow {
	if loc == nil {
		loc = time.UTC
	}
	rows := make([]models.ExportRow, len(records))
	for i := range records {
		r := &records[i]
		lastSeen := ""
		if r.LastSeen != nil {
			lastSeen = r.LastSeen.In(loc).Format(LastSeenLayout)
		}
		rows[i] = models.ExportRow{
			LastName:     r.LastName,
			FirstName:    r.FirstName,
			Function:     r.Function,
			Department:   r.Department.Label(),
			Extension:    r.Extension,
			Email:        r.Email,
			Availability: r.Status().Label(),
			Location:     r.Location,
			LastSeen:     lastSeen,
		}
	}
	return rows
}

// Rows returns the export projection of a query
func (s *exportService) Rows(ctx context.Context, spec models.QuerySpec) ([]models.ExportRow, error) {
	records, err := s.staff.Query(ctx, spec)
	if err != nil {
		return nil, err
	}
	return ExportRows(records, s.loc), nil
}

// Stream writes the export projection of a query in the given format. It is
// a command: it waits out the simulated delay and emits one notification.
func (s *exportService) Stream(ctx context.Context, w io.Writer, spec models.QuerySpec, format string) error {
	return s.run(ctx, cmdExport, false, func(ctx context.Context, now time.Time) (models.Notification, error) {
		switch format {
		case FormatCSV, FormatJSON, FormatNDJSON:
		default:
			return models.Notification{}, invalid(models.FieldErrors{"format": fmt.Sprintf("unsupported format: %s", format)})
		}

		rows, err := s.Rows(ctx, spec)
		if err != nil {
			return models.Notification{}, err
		}

		if hw, ok := w.(http.ResponseWriter); ok {
			setDownloadHeaders(hw, format, now)
		}
		switch format {
		case FormatCSV:
			err = writeCSV(w, rows)
		case FormatJSON:
			err = writeJSON(w, rows)
		case FormatNDJSON:
			err = writeNDJSON(w, rows)
		}
		if err != nil {
			return models.Notification{}, err
		}

		s.log.Info().Str("format", format).Int("count", len(rows)).Msg("Export completed")
		return models.Notification{
			Kind:  models.NotificationSuccess,
			Title: "Export completed",
			Body:  fmt.Sprintf("%d record(s) exported as %s.", len(rows), format),
		}, nil
	})
}

func setDownloadHeaders(w http.ResponseWriter, format string, now time.Time) {
	contentType := map[string]string{
		FormatCSV:    "text/csv",
		FormatJSON:   "application/json",
		FormatNDJSON: "application/x-ndjson",
	}[format]
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=staff-directory-%s.%s", now.Format("2006-01-02"), format))
}

func writeCSV(w io.Writer, rows []models.ExportRow) error {
	writer := csv.NewWriter(w)

	// Write header
	if err := writer.Write(models.ExportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writer.Write(r.Values()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeJSON(w io.Writer, rows []models.ExportRow) error {
	enc := json.NewEncoder(w)
	return enc.Encode(rows)
}

func writeNDJSON(w io.Writer, rows []models.ExportRow) error {
	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	for i, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
		// Flush every 100 records for streaming
		if (i+1)%100 == 0 && flusher != nil {
			flusher.Flush()
		}
	}
	return nil
}
