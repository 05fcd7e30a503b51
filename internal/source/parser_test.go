package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"finsight/internal/model"
)

func writeDoc(t *testing.T, dir, name, body string) {
	t.Helper()
	profilesDir := filepath.Join(dir, "profiles")
	if err := os.MkdirAll(profilesDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(profilesDir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "ravi.json", `{}`)
	writeDoc(t, dir, "asha.json", `{}`)
	writeDoc(t, dir, "notes.txt", `ignore me`)
	writeDoc(t, dir, ".hidden.json", `{}`)

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("discovered %d files, want 2", len(files))
	}
	if files[0].ProfileID != "asha" || files[1].ProfileID != "ravi" {
		t.Errorf("order = %s, %s; want asha, ravi", files[0].ProfileID, files[1].ProfileID)
	}
}

func TestScanDirMissing(t *testing.T) {
	files, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("ScanDir on missing dir: %v", err)
	}
	if files != nil {
		t.Errorf("files = %v, want nil", files)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "ravi.json", `{
		"name": "Ravi",
		"age": 34,
		"monthly_income": 95000,
		"location": "Pune",
		"risk": "aggressive",
		"profession": "Product Manager",
		"spending": {"housing": 28000, "food": 14000},
		"portfolio": {"bank_balance": 250000, "mutual_funds": 400000, "monthly_investment": 12000},
		"goals": [
			{"id": "europe-trip", "title": "Europe Trip", "category": "travel",
			 "target_amount": 400000, "current_amount": 120000,
			 "monthly_contribution": 15000, "target_date": "2026-03-01", "priority": "low"}
		]
	}`)

	files, err := ScanDir(dir)
	if err != nil || len(files) != 1 {
		t.Fatalf("ScanDir: files=%d err=%v", len(files), err)
	}

	res := ParseFile(files[0])
	if res.Err != nil {
		t.Fatalf("ParseFile: %v", res.Err)
	}
	if res.Profile.ID != "ravi" {
		t.Errorf("id = %q, want filename fallback %q", res.Profile.ID, "ravi")
	}
	if res.Profile.Risk != model.RiskAggressive {
		t.Errorf("risk = %v, want aggressive", res.Profile.Risk)
	}
	if res.Spending["housing"] != 28_000 {
		t.Errorf("spending = %v", res.Spending)
	}
	if res.Portfolio.MutualFunds != 400_000 {
		t.Errorf("portfolio = %+v", res.Portfolio)
	}
	if len(res.Goals) != 1 {
		t.Fatalf("goals = %d, want 1", len(res.Goals))
	}
	g := res.Goals[0]
	if g.ID != "europe-trip" || g.Priority != model.PriorityLow {
		t.Errorf("goal = %+v", g)
	}
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !g.TargetDate.Equal(want) {
		t.Errorf("target date = %v, want %v", g.TargetDate, want)
	}
}

func TestParseFileExplicitIDWins(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "old-name.json", `{"id": "ravi", "name": "Ravi", "age": 34, "monthly_income": 95000}`)

	files, _ := ScanDir(dir)
	res := ParseFile(files[0])
	if res.Err != nil {
		t.Fatalf("ParseFile: %v", res.Err)
	}
	if res.Profile.ID != "ravi" {
		t.Errorf("id = %q, want document id to win over filename", res.Profile.ID)
	}
}

func TestParseFileInvalidProfile(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "kid.json", `{"name": "Kid", "age": 12, "monthly_income": 5000}`)

	files, _ := ScanDir(dir)
	res := ParseFile(files[0])
	if !errors.Is(res.Err, model.ErrAgeOutOfRange) {
		t.Fatalf("err = %v, want ErrAgeOutOfRange", res.Err)
	}
}

func TestParseFileBadJSON(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "broken.json", `{"name": `)

	files, _ := ScanDir(dir)
	res := ParseFile(files[0])
	if res.Err == nil {
		t.Fatal("want parse error for malformed JSON")
	}
}

func TestParseFileBadDateDropped(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "ravi.json", `{
		"name": "Ravi", "age": 34, "monthly_income": 95000,
		"goals": [{"id": "g", "title": "G", "target_amount": 1000, "target_date": "next year"}]
	}`)

	files, _ := ScanDir(dir)
	res := ParseFile(files[0])
	if res.Err != nil {
		t.Fatalf("ParseFile: %v", res.Err)
	}
	if !res.Goals[0].TargetDate.IsZero() {
		t.Errorf("unparsable date = %v, want zero", res.Goals[0].TargetDate)
	}
}
