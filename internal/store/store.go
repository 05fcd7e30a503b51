// Package store persists profiles, goals, and advice run history in
// SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finsight/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProfile stores a profile with its spending snapshot and portfolio
// in one transaction. Existing spending rows are replaced wholesale.
func (s *Store) SaveProfile(
	p model.UserProfile,
	spending model.SpendingSnapshot,
	portfolio model.PortfolioSummary,
) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO profiles
		(profile_id, name, age, monthly_income, location, risk, profession, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Age, p.MonthlyIncome, p.Location, p.Risk.String(), p.Profession, now,
	)
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM spending_categories WHERE profile_id = ?", p.ID); err != nil {
		return err
	}
	for category, amount := range spending {
		_, err = tx.Exec(`INSERT INTO spending_categories (profile_id, category, monthly_amount)
			VALUES (?, ?, ?)`, p.ID, category, amount)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO portfolios
		(profile_id, bank_balance, fixed_deposits, mutual_funds, stocks, gold, nps,
		 monthly_investment, annual_return_pct, diversification)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, portfolio.BankBalance, portfolio.FixedDeposits, portfolio.MutualFunds,
		portfolio.Stocks, portfolio.Gold, portfolio.NPS,
		portfolio.MonthlyInvestment, portfolio.AnnualReturnPct, portfolio.DiversificationScore,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadProfile reads one profile with its spending and portfolio.
func (s *Store) LoadProfile(profileID string) (model.UserProfile, model.SpendingSnapshot, model.PortfolioSummary, error) {
	var p model.UserProfile
	var risk string
	var location, profession sql.NullString

	err := s.db.QueryRow(`SELECT profile_id, name, age, monthly_income, location, risk, profession
		FROM profiles WHERE profile_id = ?`, profileID).
		Scan(&p.ID, &p.Name, &p.Age, &p.MonthlyIncome, &location, &risk, &profession)
	if err != nil {
		return model.UserProfile{}, nil, model.PortfolioSummary{}, err
	}
	p.Risk = model.ParseRiskTier(risk)
	if location.Valid {
		p.Location = location.String
	}
	if profession.Valid {
		p.Profession = profession.String
	}

	spending := model.SpendingSnapshot{}
	rows, err := s.db.Query(`SELECT category, monthly_amount FROM spending_categories
		WHERE profile_id = ?`, profileID)
	if err != nil {
		return model.UserProfile{}, nil, model.PortfolioSummary{}, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return model.UserProfile{}, nil, model.PortfolioSummary{}, err
		}
		spending[category] = amount
	}
	if err := rows.Err(); err != nil {
		return model.UserProfile{}, nil, model.PortfolioSummary{}, err
	}

	var pf model.PortfolioSummary
	err = s.db.QueryRow(`SELECT bank_balance, fixed_deposits, mutual_funds, stocks, gold, nps,
		monthly_investment, annual_return_pct, diversification
		FROM portfolios WHERE profile_id = ?`, profileID).
		Scan(&pf.BankBalance, &pf.FixedDeposits, &pf.MutualFunds, &pf.Stocks, &pf.Gold,
			&pf.NPS, &pf.MonthlyInvestment, &pf.AnnualReturnPct, &pf.DiversificationScore)
	if err != nil && err != sql.ErrNoRows {
		return model.UserProfile{}, nil, model.PortfolioSummary{}, err
	}

	return p, spending, pf, nil
}

// ListProfiles returns all stored profiles, most recently updated first.
func (s *Store) ListProfiles() ([]model.UserProfile, error) {
	rows, err := s.db.Query(`SELECT profile_id, name, age, monthly_income, location, risk, profession
		FROM profiles ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var profiles []model.UserProfile
	for rows.Next() {
		var p model.UserProfile
		var risk string
		var location, profession sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.MonthlyIncome, &location, &risk, &profession); err != nil {
			return nil, err
		}
		p.Risk = model.ParseRiskTier(risk)
		if location.Valid {
			p.Location = location.String
		}
		if profession.Valid {
			p.Profession = profession.String
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// SaveGoals replaces a profile's persisted goals. Insights are
// derived per run and are not stored.
func (s *Store) SaveGoals(profileID string, goals []model.Goal) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec("DELETE FROM goals WHERE profile_id = ?", profileID); err != nil {
		return err
	}
	for _, g := range goals {
		targetDate := ""
		if !g.TargetDate.IsZero() {
			targetDate = g.TargetDate.UTC().Format(time.RFC3339)
		}
		_, err = tx.Exec(`INSERT INTO goals
			(profile_id, goal_id, title, category, target_amount, current_amount,
			 monthly_contribution, target_date, priority, icon, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			profileID, g.ID, g.Title, g.Category, g.TargetAmount, g.CurrentAmount,
			g.MonthlyContribution, targetDate, g.Priority.String(), g.Icon, g.Description,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadGoals reads a profile's persisted goals ordered by id.
func (s *Store) LoadGoals(profileID string) ([]model.Goal, error) {
	rows, err := s.db.Query(`SELECT goal_id, title, category, target_amount, current_amount,
		monthly_contribution, target_date, priority, icon, description
		FROM goals WHERE profile_id = ? ORDER BY goal_id`, profileID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		var targetDate, priority string
		var icon, description sql.NullString
		err := rows.Scan(&g.ID, &g.Title, &g.Category, &g.TargetAmount, &g.CurrentAmount,
			&g.MonthlyContribution, &targetDate, &priority, &icon, &description)
		if err != nil {
			return nil, err
		}
		g.Priority = model.ParsePriority(priority)
		if targetDate != "" {
			g.TargetDate, _ = time.Parse(time.RFC3339, targetDate)
		}
		if icon.Valid {
			g.Icon = icon.String
		}
		if description.Valid {
			g.Description = description.String
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// RunRecord is one row of advice run history.
type RunRecord struct {
	ProfileID           string
	AsOf                time.Time
	PersonalRate        float64
	LocationBaseline    float64
	Severity            string
	GoalCount           int
	RecommendationCount int
	CreatedAt           time.Time
}

// RecordRun appends an advice computation to the run history.
func (s *Store) RecordRun(profileID string, asOf time.Time, res model.AdviceResult) error {
	_, err := s.db.Exec(`INSERT INTO advice_runs
		(profile_id, as_of, personal_rate, location_baseline, severity,
		 goal_count, recommendation_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		profileID, asOf.UTC().Format(time.RFC3339),
		res.Inflation.PersonalRate, res.Inflation.LocationBaseline, res.Inflation.Severity.String(),
		len(res.Goals), len(res.Recommendations), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// RunHistory returns up to limit recent runs, oldest first so the
// caller can feed them straight into a trend sparkline.
func (s *Store) RunHistory(profileID string, limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(`SELECT profile_id, as_of, personal_rate, location_baseline,
		severity, goal_count, recommendation_count, created_at
		FROM advice_runs WHERE profile_id = ?
		ORDER BY created_at DESC, run_id DESC LIMIT ?`, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var asOf, createdAt string
		err := rows.Scan(&r.ProfileID, &asOf, &r.PersonalRate, &r.LocationBaseline,
			&r.Severity, &r.GoalCount, &r.RecommendationCount, &createdAt)
		if err != nil {
			return nil, err
		}
		r.AsOf, _ = time.Parse(time.RFC3339, asOf)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LatestRun returns the most recent run for a profile, or sql.ErrNoRows.
func (s *Store) LatestRun(profileID string) (RunRecord, error) {
	records, err := s.RunHistory(profileID, 1)
	if err != nil {
		return RunRecord{}, err
	}
	if len(records) == 0 {
		return RunRecord{}, sql.ErrNoRows
	}
	return records[0], nil
}

// DeleteProfile removes a profile and all dependent rows.
func (s *Store) DeleteProfile(profileID string) error {
	_, err := s.db.Exec("DELETE FROM profiles WHERE profile_id = ?", profileID)
	return err
}

// ProfileCount returns the number of stored profiles.
func (s *Store) ProfileCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&count)
	return count, err
}
