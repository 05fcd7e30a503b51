package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS profiles (
    profile_id           TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    age                  INTEGER NOT NULL,
    monthly_income       REAL NOT NULL,
    location             TEXT,
    risk                 TEXT NOT NULL,
    profession           TEXT,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS spending_categories (
    profile_id           TEXT NOT NULL REFERENCES profiles(profile_id) ON DELETE CASCADE,
    category             TEXT NOT NULL,
    monthly_amount       REAL NOT NULL,
    PRIMARY KEY (profile_id, category)
);

CREATE TABLE IF NOT EXISTS portfolios (
    profile_id           TEXT PRIMARY KEY REFERENCES profiles(profile_id) ON DELETE CASCADE,
    bank_balance         REAL,
    fixed_deposits       REAL,
    mutual_funds         REAL,
    stocks               REAL,
    gold                 REAL,
    nps                  REAL,
    monthly_investment   REAL,
    annual_return_pct    REAL,
    diversification      REAL
);

CREATE TABLE IF NOT EXISTS goals (
    profile_id           TEXT NOT NULL REFERENCES profiles(profile_id) ON DELETE CASCADE,
    goal_id              TEXT NOT NULL,
    title                TEXT NOT NULL,
    category             TEXT NOT NULL,
    target_amount        REAL NOT NULL,
    current_amount       REAL NOT NULL,
    monthly_contribution REAL NOT NULL,
    target_date          TEXT,
    priority             TEXT NOT NULL,
    icon                 TEXT,
    description          TEXT,
    PRIMARY KEY (profile_id, goal_id)
);

CREATE TABLE IF NOT EXISTS advice_runs (
    run_id               INTEGER PRIMARY KEY AUTOINCREMENT,
    profile_id           TEXT NOT NULL REFERENCES profiles(profile_id) ON DELETE CASCADE,
    as_of                TEXT NOT NULL,
    personal_rate        REAL NOT NULL,
    location_baseline    REAL NOT NULL,
    severity             TEXT NOT NULL,
    goal_count           INTEGER NOT NULL,
    recommendation_count INTEGER NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_goals_profile ON goals(profile_id);
CREATE INDEX IF NOT EXISTS idx_runs_profile ON advice_runs(profile_id, created_at);
`
