// Package daemon provides the long-running advice service: it watches
// the profile directory, recomputes advice on change, and serves it
// over a local HTTP API.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"finsight/internal/engine"
	"finsight/internal/model"
	"finsight/internal/source"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DataDir      string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is a compact advice state for status/event payloads.
type Snapshot struct {
	At              time.Time `json:"at"`
	Profiles        int       `json:"profiles"`
	ParseErrors     int       `json:"parse_errors"`
	AvgPersonalRate float64   `json:"avg_personal_rate"`
	Goals           int       `json:"goals"`
	Recommendations int       `json:"recommendations"`
}

func (s Snapshot) sameTotals(o Snapshot) bool {
	return s.Profiles == o.Profiles &&
		s.ParseErrors == o.ParseErrors &&
		s.AvgPersonalRate == o.AvgPersonalRate &&
		s.Goals == o.Goals &&
		s.Recommendations == o.Recommendations
}

// Event is emitted whenever a profile's advice changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	ProfileID string    `json:"profile_id,omitempty"`
	RateDelta float64   `json:"rate_delta,omitempty"`
	Snapshot  Snapshot  `json:"snapshot"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DataDir         string    `json:"data_dir"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

type fileMeta struct {
	mtimeNs   int64
	sizeBytes int64
	profileID string
}

func (m fileMeta) same(o fileMeta) bool {
	return m.mtimeNs == o.mtimeNs && m.sizeBytes == o.sizeBytes
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg    Config
	engine engine.Engine

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	advice      map[string]model.AdviceResult
	files       map[string]fileMeta
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config, eng engine.Engine) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8791"
	}

	return &Service{
		cfg:       cfg,
		engine:    eng,
		startedAt: time.Now(),
		advice:    make(map[string]model.AdviceResult),
		files:     make(map[string]fileMeta),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/advice/", s.handleAdvice)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial advice so status is useful immediately.
	s.pollOnce(time.Now())

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(time.Now())
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce(now time.Time) {
	discovered, err := source.ScanDir(s.cfg.DataDir)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		log.Printf("finsight daemon poll error: %v", err)
		return
	}

	type change struct {
		profileID string
		rateDelta float64
	}
	var (
		changes     []change
		parseErrors int
	)

	s.mu.Lock()
	present := make(map[string]bool, len(discovered))
	for _, df := range discovered {
		present[df.Path] = true
		meta := fileMeta{mtimeNs: df.MtimeNs, sizeBytes: df.SizeBytes}
		if prev, ok := s.files[df.Path]; ok {
			if prev.same(meta) {
				continue // unchanged since last poll
			}
			// Carry the id so a later delete still clears the advice,
			// even if this revision fails to parse.
			meta.profileID = prev.profileID
		}

		res := source.ParseFile(df)
		if res.Err != nil {
			parseErrors++
			s.files[df.Path] = meta
			log.Printf("finsight daemon: skipping %s: %v", df.Path, res.Err)
			continue
		}

		advice, err := s.engine.Compute(res.Profile, res.Spending, res.Portfolio, res.Goals, now)
		if err != nil {
			parseErrors++
			s.files[df.Path] = meta
			log.Printf("finsight daemon: computing %s: %v", res.Profile.ID, err)
			continue
		}

		prev, existed := s.advice[res.Profile.ID]
		s.advice[res.Profile.ID] = advice
		meta.profileID = res.Profile.ID
		s.files[df.Path] = meta

		delta := advice.Inflation.PersonalRate
		if existed {
			delta = advice.Inflation.PersonalRate - prev.Inflation.PersonalRate
		}
		changes = append(changes, change{profileID: res.Profile.ID, rateDelta: delta})
	}

	// Drop advice for deleted documents.
	for path, meta := range s.files {
		if !present[path] {
			if meta.profileID != "" {
				delete(s.advice, meta.profileID)
			}
			delete(s.files, path)
		}
	}

	snap := s.buildSnapshotLocked(now, parseErrors)
	prevSnap := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	var pending []Event
	if !prevExists {
		s.nextEventID++
		pending = append(pending, Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
		})
	} else {
		for _, ch := range changes {
			s.nextEventID++
			pending = append(pending, Event{
				ID:        s.nextEventID,
				Type:      "advice_delta",
				Timestamp: now,
				ProfileID: ch.profileID,
				RateDelta: ch.rateDelta,
				Snapshot:  snap,
			})
		}
		if len(changes) == 0 && !snap.sameTotals(prevSnap) {
			s.nextEventID++
			pending = append(pending, Event{
				ID:        s.nextEventID,
				Type:      "snapshot",
				Timestamp: now,
				Snapshot:  snap,
			})
		}
	}
	s.mu.Unlock()

	for _, ev := range pending {
		s.publishEvent(ev)
	}
}

// buildSnapshotLocked aggregates current advice. Caller holds mu.
func (s *Service) buildSnapshotLocked(at time.Time, parseErrors int) Snapshot {
	snap := Snapshot{At: at, Profiles: len(s.advice), ParseErrors: parseErrors}
	var rateSum float64
	for _, advice := range s.advice {
		rateSum += advice.Inflation.PersonalRate
		snap.Goals += len(advice.Goals)
		snap.Recommendations += len(advice.Recommendations)
	}
	if snap.Profiles > 0 {
		snap.AvgPersonalRate = rateSum / float64(snap.Profiles)
	}
	return snap
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DataDir:         s.cfg.DataDir,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

// adviceView is the wire shape served at /v1/advice/{profile}.
type adviceView struct {
	ProfileID       string               `json:"profile_id"`
	PersonalRate    float64              `json:"personal_rate"`
	Baseline        float64              `json:"location_baseline"`
	Difference      float64              `json:"difference"`
	Severity        string               `json:"severity"`
	Tier            string               `json:"tier"`
	Breakdown       []contributionView   `json:"breakdown"`
	SavingsBand     bandView             `json:"savings_band"`
	Goals           []goalView           `json:"goals"`
	Recommendations []recommendationView `json:"recommendations"`
}

type contributionView struct {
	Category        string  `json:"category"`
	WeightPct       float64 `json:"weight_pct"`
	Rate            float64 `json:"rate"`
	ContributionPct float64 `json:"contribution_pct"`
}

type bandView struct {
	Minimum float64 `json:"minimum"`
	Target  float64 `json:"target"`
	Optimal float64 `json:"optimal"`
}

type goalView struct {
	ID                  string  `json:"id"`
	Title               string  `json:"title"`
	Category            string  `json:"category"`
	TargetAmount        float64 `json:"target_amount"`
	CurrentAmount       float64 `json:"current_amount"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	Priority            string  `json:"priority"`
	Insights            int     `json:"insights"`
}

type recommendationView struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Priority      string  `json:"priority"`
	MonthlyAmount float64 `json:"monthly_amount,omitempty"`
	Rationale     string  `json:"rationale,omitempty"`
}

func (s *Service) handleAdvice(w http.ResponseWriter, r *http.Request) {
	profileID := strings.TrimPrefix(r.URL.Path, "/v1/advice/")
	if profileID == "" || strings.Contains(profileID, "/") {
		http.Error(w, "profile id required", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	advice, ok := s.advice[profileID]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, "unknown profile", http.StatusNotFound)
		return
	}

	view := adviceView{
		ProfileID:    profileID,
		PersonalRate: advice.Inflation.PersonalRate,
		Baseline:     advice.Inflation.LocationBaseline,
		Difference:   advice.Inflation.Difference,
		Severity:     advice.Inflation.Severity.String(),
		Tier:         advice.Inflation.Tier,
		SavingsBand: bandView{
			Minimum: advice.Thresholds.Savings.Minimum,
			Target:  advice.Thresholds.Savings.Target,
			Optimal: advice.Thresholds.Savings.Optimal,
		},
	}
	for _, contrib := range advice.Inflation.Breakdown {
		view.Breakdown = append(view.Breakdown, contributionView{
			Category:        contrib.Category,
			WeightPct:       contrib.WeightPct,
			Rate:            contrib.Rate,
			ContributionPct: contrib.ContributionPct,
		})
	}
	for _, g := range advice.Goals {
		view.Goals = append(view.Goals, goalView{
			ID:                  g.ID,
			Title:               g.Title,
			Category:            g.Category,
			TargetAmount:        g.TargetAmount,
			CurrentAmount:       g.CurrentAmount,
			MonthlyContribution: g.MonthlyContribution,
			Priority:            g.Priority.String(),
			Insights:            len(g.Insights),
		})
	}
	for _, rec := range advice.Recommendations {
		view.Recommendations = append(view.Recommendations, recommendationView{
			ID:            rec.ID,
			Title:         rec.Title,
			Priority:      rec.Priority.String(),
			MonthlyAmount: rec.MonthlyAmount,
			Rationale:     rec.Rationale,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
