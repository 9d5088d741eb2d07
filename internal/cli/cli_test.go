package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/seed"
)

const testRoster = `staff:
  - id: rec-001
    firstName: Kossi
    lastName: AKUE
    function: Receptionist
    department: reception
    extension: "1001"
    email: kossi.akue@example.com
    isAvailable: true
  - id: rec-002
    firstName: Ama
    lastName: Mensah
    function: Accountant
    department: finance
    extension: "2001"
    email: ama.mensah@example.com
    isAvailable: false
    absenceReason: mission
    absenceDuration: undetermined
  - id: rec-003
    firstName: Yao
    lastName: Adjei
    function: Developer
    department: it
    extension: "3001"
    email: yao.adjei@example.com
    isAvailable: true
`

func writeRoster(t *testing.T) string {
	t.Helper()
	t.Setenv("DIRECTORY_SEED_FILE", "")
	t.Setenv("NOTIFY_REDIS_ADDR", "")
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte(testRoster), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func loadRoster(t *testing.T, path string) map[string]models.StaffRecord {
	t.Helper()
	records, err := seed.Load(path)
	if err != nil {
		t.Fatalf("Load roster failed: %v", err)
	}
	byID := make(map[string]models.StaffRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	return byID
}

func TestNewRootCmd_hasSubcommands(t *testing.T) {
	root := NewRootCmd("test")
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"query", "stats", "export", "import", "absent", "available", "watch"} {
		if !names[want] {
			t.Errorf("expected subcommand %q", want)
		}
	}
	if root.PersistentFlags().Lookup("roster") == nil {
		t.Error("expected --roster persistent flag")
	}
}

func TestNewRootCmd_versionFlag(t *testing.T) {
	root := NewRootCmd("1.2.3")
	if root.Version != "1.2.3" {
		t.Errorf("Version: got %q", root.Version)
	}
	if NewRootCmd("").Version != "dev" {
		t.Error("expected dev version by default")
	}
}

func TestQuery(t *testing.T) {
	path := writeRoster(t)

	out, _, err := run(t, "--roster", path, "query", "akue")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !strings.Contains(out, "AKUE Kossi") || strings.Contains(out, "Mensah") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "1 record(s)") {
		t.Errorf("expected record count, got:\n%s", out)
	}
}

func TestQuery_JSONFilters(t *testing.T) {
	path := writeRoster(t)

	out, _, err := run(t, "--roster", path, "query", "--availability", "unavailable", "--json")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	var records []models.StaffRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(records) != 1 || records[0].ID != "rec-002" {
		t.Errorf("expected only rec-002, got %+v", records)
	}
}

func TestQuery_InvalidSort(t *testing.T) {
	path := writeRoster(t)

	_, _, err := run(t, "--roster", path, "query", "--sort", "salary")
	if err == nil || !strings.Contains(err.Error(), "sortBy") {
		t.Errorf("expected sortBy error, got %v", err)
	}
}

func TestStats(t *testing.T) {
	path := writeRoster(t)

	out, _, err := run(t, "--roster", path, "stats", "--json")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var st models.Statistics
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if st.TotalStaff != 3 || st.AvailabilityRate != 66.67 {
		t.Errorf("unexpected statistics: %+v", st)
	}

	out, _, err = run(t, "--roster", path, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "66.67%") || !strings.Contains(out, "mission") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestExport(t *testing.T) {
	path := writeRoster(t)

	out, errOut, err := run(t, "--roster", path, "export", "--format", "csv")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d:\n%s", len(lines), out)
	}
	if lines[0] != strings.Join(models.ExportHeader, ",") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Adjei,Yao,") {
		t.Errorf("expected rows sorted by name, got %q", lines[1])
	}
	if !strings.Contains(errOut, "Export completed") {
		t.Errorf("expected export notification on stderr, got %q", errOut)
	}
}

func TestImport(t *testing.T) {
	path := writeRoster(t)
	csvPath := filepath.Join(t.TempDir(), "new.csv")
	csvData := "first_name,last_name,function,department,extension,email\n" +
		"Efua,Owusu,Lawyer,legal,4001,efua.owusu@example.com\n" +
		"Bad,Row,Clerk,legal,12,bad.row@example.com\n"
	if err := os.WriteFile(csvPath, []byte(csvData), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("dry run", func(t *testing.T) {
		out, _, err := run(t, "--roster", path, "import", csvPath)
		if err != nil {
			t.Fatalf("import: %v", err)
		}
		if !strings.Contains(out, "2 draft(s)") || !strings.Contains(out, "line 3") {
			t.Errorf("unexpected output:\n%s", out)
		}
		if len(loadRoster(t, path)) != 3 {
			t.Error("dry run should not change the roster file")
		}
	})

	t.Run("commit and write", func(t *testing.T) {
		out, _, err := run(t, "--roster", path, "-q", "import", csvPath, "--commit", "--write")
		if err != nil {
			t.Fatalf("import: %v", err)
		}
		if !strings.Contains(out, "Committed 1, rejected 1") {
			t.Errorf("unexpected output:\n%s", out)
		}
		roster := loadRoster(t, path)
		if len(roster) != 4 {
			t.Fatalf("expected 4 records after import, got %d", len(roster))
		}
		if _, ok := roster["rec-001"]; !ok {
			t.Error("existing ids should be preserved")
		}
	})
}

func TestAbsentAndAvailable(t *testing.T) {
	path := writeRoster(t)

	_, errOut, err := run(t, "--roster", path, "absent", "rec-001", "--reason", "congé", "--duration", "weeks", "--return", "2099-01-05", "--write")
	if err != nil {
		t.Fatalf("absent: %v", err)
	}
	if !strings.Contains(errOut, "Absence recorded") {
		t.Errorf("expected notification, got %q", errOut)
	}
	rec := loadRoster(t, path)["rec-001"]
	if rec.IsAvailable || rec.AbsenceReason != "congé" || models.FormatDate(rec.ExpectedReturnDate) != "2099-01-05" {
		t.Errorf("unexpected record after absent: %+v", rec)
	}
	if rec.LastSeen == nil {
		t.Error("expected lastSeen to be set")
	}

	if _, _, err := run(t, "--roster", path, "available", "rec-001", "--write"); err != nil {
		t.Fatalf("available: %v", err)
	}
	rec = loadRoster(t, path)["rec-001"]
	if !rec.IsAvailable || rec.HasAbsenceMetadata() {
		t.Errorf("unexpected record after available: %+v", rec)
	}
}

func TestAbsent_Rejected(t *testing.T) {
	path := writeRoster(t)

	_, _, err := run(t, "--roster", path, "absent", "rec-001", "--reason", "x", "--duration", "month")
	if err == nil || !strings.Contains(err.Error(), "duration") {
		t.Errorf("expected duration error, got %v", err)
	}

	_, _, err = run(t, "--roster", path, "available", "rec-999")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestWatch_RequiresRedis(t *testing.T) {
	path := writeRoster(t)

	_, _, err := run(t, "--roster", path, "watch")
	if err == nil || !strings.Contains(err.Error(), "redis") {
		t.Errorf("expected redis address error, got %v", err)
	}
}

func TestOpen_InvalidRoster(t *testing.T) {
	path := writeRoster(t)
	if err := os.WriteFile(path, []byte("staff:\n  - id: x\n    extension: \"1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := run(t, "--roster", path, "stats")
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("expected load error naming the roster, got %v", err)
	}
}
