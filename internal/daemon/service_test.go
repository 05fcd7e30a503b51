package daemon

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"finsight/internal/config"
	"finsight/internal/engine"
)

func writeProfile(t *testing.T, dataDir, name, body string) {
	t.Helper()
	dir := filepath.Join(dataDir, "profiles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

const raviDoc = `{
	"name": "Ravi", "age": 34, "monthly_income": 95000,
	"location": "Pune", "risk": "moderate", "profession": "Engineer",
	"spending": {"housing": 28000, "food": 14000, "transport": 5000}
}`

func newTestService(t *testing.T, dataDir string) *Service {
	t.Helper()
	return New(Config{
		DataDir:      dataDir,
		Interval:     10 * time.Second,
		EventsBuffer: 16,
	}, engine.New(config.DefaultConfig()))
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		DataDir:      ".",
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	}, engine.Engine{Baseline: 6.5, HorizonMonths: 12})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollOnceComputesAdvice(t *testing.T) {
	dataDir := t.TempDir()
	writeProfile(t, dataDir, "ravi.json", raviDoc)

	s := newTestService(t, dataDir)
	s.pollOnce(time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC))

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot.Profiles != 1 {
		t.Fatalf("profiles = %d, want 1", s.snapshot.Profiles)
	}
	if s.snapshot.AvgPersonalRate <= 0 {
		t.Fatalf("avg rate = %.1f, want > 0", s.snapshot.AvgPersonalRate)
	}
	if _, ok := s.advice["ravi"]; !ok {
		t.Fatal("advice for ravi not cached")
	}
	if len(s.events) != 1 || s.events[0].Type != "snapshot" {
		t.Fatalf("events = %+v, want one initial snapshot", s.events)
	}
}

func TestPollOnceSkipsUnchangedFiles(t *testing.T) {
	dataDir := t.TempDir()
	writeProfile(t, dataDir, "ravi.json", raviDoc)

	s := newTestService(t, dataDir)
	asOf := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
	s.pollOnce(asOf)
	s.pollOnce(asOf.Add(30 * time.Second))

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Second poll sees the same mtime/size and recomputes nothing, so
	// only the initial snapshot event exists.
	if len(s.events) != 1 {
		t.Fatalf("events = %d, want 1 (unchanged file must not re-emit)", len(s.events))
	}
	if s.pollCount != 2 {
		t.Fatalf("poll count = %d, want 2", s.pollCount)
	}
}

func TestPollOnceCountsBadDocuments(t *testing.T) {
	dataDir := t.TempDir()
	writeProfile(t, dataDir, "broken.json", `{"name": `)
	writeProfile(t, dataDir, "ravi.json", raviDoc)

	s := newTestService(t, dataDir)
	s.pollOnce(time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC))

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot.Profiles != 1 {
		t.Fatalf("profiles = %d, want 1 (bad doc skipped)", s.snapshot.Profiles)
	}
	if s.snapshot.ParseErrors != 1 {
		t.Fatalf("parse errors = %d, want 1", s.snapshot.ParseErrors)
	}
}

func TestHandleAdvice(t *testing.T) {
	dataDir := t.TempDir()
	writeProfile(t, dataDir, "ravi.json", raviDoc)

	s := newTestService(t, dataDir)
	s.pollOnce(time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC))

	rec := httptest.NewRecorder()
	s.handleAdvice(rec, httptest.NewRequest("GET", "/v1/advice/ravi", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !json.Valid([]byte(body)) {
		t.Fatalf("invalid JSON body: %s", body)
	}

	rec = httptest.NewRecorder()
	s.handleAdvice(rec, httptest.NewRequest("GET", "/v1/advice/nobody", nil))
	if rec.Code != 404 {
		t.Fatalf("unknown profile status = %d, want 404", rec.Code)
	}
}

func TestPollOnceDropsDeletedDocuments(t *testing.T) {
	dataDir := t.TempDir()
	writeProfile(t, dataDir, "ravi.json", raviDoc)

	s := newTestService(t, dataDir)
	asOf := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
	s.pollOnce(asOf)

	if err := os.Remove(filepath.Join(dataDir, "profiles", "ravi.json")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	s.pollOnce(asOf.Add(30 * time.Second))

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.advice["ravi"]; ok {
		t.Fatal("advice for deleted document still cached")
	}
	if s.snapshot.Profiles != 0 {
		t.Fatalf("profiles = %d, want 0 after delete", s.snapshot.Profiles)
	}
	// Totals changed with no per-profile delta, so a snapshot event follows
	// the initial one.
	if len(s.events) != 2 || s.events[1].Type != "snapshot" {
		t.Fatalf("events = %+v, want initial + totals snapshot", s.events)
	}
}
