package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/staff-directory-api/internal/models"
)

func normalize(t *testing.T, n *Normalizer, format models.ArtifactFormat, data string, existing ...string) *models.Extraction {
	t.Helper()
	out, err := n.Normalize(context.Background(), models.Artifact{Format: format, Data: []byte(data)}, existing)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return out
}

func TestDelimitedText_CommaHeaderAliases(t *testing.T) {
	csv := "First Name,Last Name,Function,Department,Extension,E-mail,Skills,Available\n" +
		"Kossi,AKUE,Receptionist,Front Desk,1201,kossi.akue@example.org,accueil;standard,yes\n" +
		"\n" +
		"Afi,ADJO,Developer,it,40021,afi.adjo@example.org,Go|SQL,no\n"

	out := normalize(t, NewNormalizer(0), models.FormatDelimitedText, csv)

	if len(out.Drafts) != 2 {
		t.Fatalf("Expected 2 drafts, got %d", len(out.Drafts))
	}
	first := out.Drafts[0]
	if first.Form.LastName != "AKUE" || first.Form.Department != models.DepartmentReception {
		t.Errorf("unexpected first draft: %+v", first.Form)
	}
	if first.Line != 2 || out.Drafts[1].Line != 4 {
		t.Errorf("unexpected lines: %d, %d", first.Line, out.Drafts[1].Line)
	}
	if len(first.Form.Skills) != 2 || first.Form.Skills[1] != "standard" {
		t.Errorf("unexpected skills: %v", first.Form.Skills)
	}
	if !first.Form.Available() || out.Drafts[1].Form.Available() {
		t.Error("availability column not parsed")
	}
	if out.Confidence != 100 {
		t.Errorf("Expected confidence 100, got %d", out.Confidence)
	}
}

func TestDelimitedText_SemicolonFrenchHeaders(t *testing.T) {
	csv := "\ufeffNom;Prénom;Fonction;Service;Téléphone;Courriel;Motif;Durée\n" +
		"DOSSOU;Émile;Comptable;Finance;3310;emile@example.org;mission;Several days\n"

	out := normalize(t, NewNormalizer(0), models.FormatDelimitedText, csv)

	if len(out.Drafts) != 1 {
		t.Fatalf("Expected 1 draft, got %d", len(out.Drafts))
	}
	f := out.Drafts[0].Form
	if f.FirstName != "Émile" || f.LastName != "DOSSOU" || f.Function != "Comptable" {
		t.Errorf("unexpected names: %+v", f)
	}
	if f.Department != models.DepartmentFinance {
		t.Errorf("Expected finance, got %q", f.Department)
	}
	if f.AbsenceDuration != models.DurationDays || f.AbsenceReason != "mission" {
		t.Errorf("unexpected absence: %q %q", f.AbsenceReason, f.AbsenceDuration)
	}
	if f.Available() {
		t.Error("a draft carrying an absence reason should start absent")
	}
}

func TestDelimitedText_TabAndFullName(t *testing.T) {
	tsv := "name\temail\textension\n" +
		"MENSAH Ama Esi\tama@example.org\t1234\n"

	out := normalize(t, NewNormalizer(0), models.FormatDelimitedText, tsv)

	f := out.Drafts[0].Form
	if f.LastName != "MENSAH" || f.FirstName != "Ama Esi" {
		t.Errorf("unexpected split: %q / %q", f.LastName, f.FirstName)
	}
	// first, last, extension and email present; function and department missing
	if out.Confidence != 66 {
		t.Errorf("Expected confidence 66, got %d", out.Confidence)
	}
}

func TestDelimitedText_Errors(t *testing.T) {
	n := NewNormalizer(0)
	ctx := context.Background()

	_, err := n.Normalize(ctx, models.Artifact{Format: models.FormatDelimitedText, Data: []byte("  \n")}, nil)
	if !errors.Is(err, ErrEmptyArtifact) {
		t.Errorf("expected ErrEmptyArtifact, got %v", err)
	}

	_, err = n.Normalize(ctx, models.Artifact{Format: models.FormatDelimitedText, Data: []byte("foo,bar\n1,2\n")}, nil)
	if !errors.Is(err, ErrNoColumns) {
		t.Errorf("expected ErrNoColumns, got %v", err)
	}
}

func TestDocument_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantDraft int
		wantSkip  int
	}{
		{"array", `[{"firstName":"A","lastName":"B"},{"firstName":"C","lastName":"D"}]`, 2, 0},
		{"wrapped", `{"staff":[{"firstName":"A","lastName":"B","isAvailable":false}]}`, 1, 0},
		{"ndjson", "{\"firstName\":\"A\"}\n\n{\"firstName\":\"B\"}\n", 2, 0},
		{"ndjson with bad line", "{\"firstName\":\"A\"}\nnot json\n{\"firstName\":\"B\"}\n", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := normalize(t, NewNormalizer(0), models.FormatDocument, tt.data)
			if len(out.Drafts) != tt.wantDraft {
				t.Errorf("Expected %d drafts, got %d", tt.wantDraft, len(out.Drafts))
			}
			if len(out.Skipped) != tt.wantSkip {
				t.Errorf("Expected %d skipped, got %d", tt.wantSkip, len(out.Skipped))
			}
		})
	}

	out := normalize(t, NewNormalizer(0), models.FormatDocument, "{\"firstName\":\"A\"}\nnot json\n")
	if out.Skipped[0].Line != 2 || !strings.Contains(out.Skipped[0].Reason, "invalid JSON") {
		t.Errorf("unexpected skipped entry: %+v", out.Skipped[0])
	}
}

func TestSpreadsheet_FirstSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Last Name", "First Name", "Function", "Department", "Extension", "Email"},
		{"ZINSOU", "Ama", "Legal counsel", "Legal Affairs", "5500", "ama.zinsou@example.org"},
		{"KOFFI", "Kodjo", "Driver", "logistics", "5501", "kodjo.koffi@example.org"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}

	out := normalize(t, NewNormalizer(0), models.FormatSpreadsheet, buf.String())

	if len(out.Drafts) != 2 {
		t.Fatalf("Expected 2 drafts, got %d", len(out.Drafts))
	}
	if out.Drafts[0].Form.Department != models.DepartmentLegal || out.Drafts[1].Form.Department != models.DepartmentLogistics {
		t.Errorf("departments not normalized: %q %q", out.Drafts[0].Form.Department, out.Drafts[1].Form.Department)
	}
	if out.Drafts[1].Line != 3 {
		t.Errorf("Expected line 3, got %d", out.Drafts[1].Line)
	}
}

func TestSpreadsheet_Corrupt(t *testing.T) {
	_, err := NewNormalizer(0).Normalize(context.Background(),
		models.Artifact{Format: models.FormatSpreadsheet, Data: []byte("not a workbook")}, nil)
	if err == nil {
		t.Fatal("expected error for corrupt workbook")
	}
}

func TestNormalize_UnsupportedWithoutInjection(t *testing.T) {
	n := NewNormalizer(0)
	for _, format := range []models.ArtifactFormat{models.FormatCapturedImage, models.FormatLiveCapture, "fax"} {
		_, err := n.Normalize(context.Background(), models.Artifact{Format: format, Data: []byte{1}}, nil)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%s: expected ErrUnsupportedFormat, got %v", format, err)
		}
	}
}

func TestNormalize_InjectedExtractorConfidence(t *testing.T) {
	n := NewNormalizer(0)
	n.Register(models.FormatCapturedImage, ExtractorFunc(func(ctx context.Context, a models.Artifact) ([]Candidate, error) {
		return []Candidate{
			{Form: models.StaffForm{FirstName: "A"}, Confidence: 40},
			{Form: models.StaffForm{FirstName: "B"}, Confidence: 90},
			{Form: models.StaffForm{FirstName: "C"}, Confidence: 150},
		}, nil
	}))

	out := normalize(t, n, models.FormatCapturedImage, "frame")
	// (40 + 90 + 100) / 3 rounded
	if out.Confidence != 77 {
		t.Errorf("Expected confidence 77, got %d", out.Confidence)
	}
	if !n.Supports(models.FormatCapturedImage) {
		t.Error("Supports should report the injected format")
	}
}

func TestNormalize_IDsUniqueAgainstSnapshot(t *testing.T) {
	n := NewNormalizer(0)
	seq := []string{"taken-1", "d1", "d1", "taken-2", "d2", "d3"}
	i := 0
	n.newID = func() string {
		id := seq[i]
		i++
		return id
	}

	out := normalize(t, n, models.FormatDocument, `[{"firstName":"A"},{"firstName":"B"},{"firstName":"C"}]`, "taken-1", "taken-2")

	got := []string{out.Drafts[0].ID, out.Drafts[1].ID, out.Drafts[2].ID}
	want := []string{"d1", "d2", "d3"}
	for k := range want {
		if got[k] != want[k] {
			t.Fatalf("expected ids %v, got %v", want, got)
		}
	}
}

func TestNormalize_MaxDrafts(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("first name,last name\n")
	for i := 0; i < 4; i++ {
		fmt.Fprintf(&sb, "F%d,L%d\n", i, i)
	}

	_, err := NewNormalizer(3).Normalize(context.Background(),
		models.Artifact{Format: models.FormatDelimitedText, Data: []byte(sb.String())}, nil)
	if !errors.Is(err, ErrTooManyDrafts) {
		t.Fatalf("expected ErrTooManyDrafts, got %v", err)
	}
}

func TestNormalize_EmptyTableHasZeroConfidence(t *testing.T) {
	out := normalize(t, NewNormalizer(0), models.FormatDelimitedText, "first name,last name\n")
	if len(out.Drafts) != 0 || out.Confidence != 0 {
		t.Errorf("unexpected extraction: %+v", out)
	}
	if out.Drafts == nil {
		t.Error("drafts should encode as an empty list")
	}
}

func TestParseHelpers(t *testing.T) {
	if ParseDepartment("HUMAN RESOURCES") != models.DepartmentHumanResources {
		t.Error("label match should be case-insensitive")
	}
	if ParseDepartment("Workshop") != "Workshop" {
		t.Error("unknown departments are kept as written")
	}
	if ParseDuration("One week") != models.DurationWeek {
		t.Error("duration label not recognized")
	}
	if v, ok := ParseAvailability("Absent"); !ok || v {
		t.Error("absent not recognized")
	}
	if _, ok := ParseAvailability("maybe"); ok {
		t.Error("unknown availability should not parse")
	}
}
