package source

// RawDocument is the on-disk JSON shape of one profile document.
type RawDocument struct {
	ID            string             `json:"id,omitempty"`
	Name          string             `json:"name"`
	Age           int                `json:"age"`
	MonthlyIncome float64            `json:"monthly_income"`
	Location      string             `json:"location,omitempty"`
	Risk          string             `json:"risk,omitempty"`
	Profession    string             `json:"profession,omitempty"`
	Spending      map[string]float64 `json:"spending,omitempty"`
	Portfolio     *RawPortfolio      `json:"portfolio,omitempty"`
	Goals         []RawGoal          `json:"goals,omitempty"`
}

// RawPortfolio holds asset holdings from the document.
type RawPortfolio struct {
	BankBalance       float64 `json:"bank_balance,omitempty"`
	FixedDeposits     float64 `json:"fixed_deposits,omitempty"`
	MutualFunds       float64 `json:"mutual_funds,omitempty"`
	Stocks            float64 `json:"stocks,omitempty"`
	Gold              float64 `json:"gold,omitempty"`
	NPS               float64 `json:"nps,omitempty"`
	MonthlyInvestment float64 `json:"monthly_investment,omitempty"`
	AnnualReturnPct   float64 `json:"annual_return_pct,omitempty"`
	Diversification   float64 `json:"diversification,omitempty"`
}

// RawGoal is a user-declared goal carried in the document. Generated
// goals with the same id are suppressed on recompute.
type RawGoal struct {
	ID                  string  `json:"id"`
	Title               string  `json:"title"`
	Category            string  `json:"category,omitempty"`
	TargetAmount        float64 `json:"target_amount"`
	CurrentAmount       float64 `json:"current_amount,omitempty"`
	MonthlyContribution float64 `json:"monthly_contribution,omitempty"`
	TargetDate          string  `json:"target_date,omitempty"` // RFC 3339 or YYYY-MM-DD
	Priority            string  `json:"priority,omitempty"`
	Icon                string  `json:"icon,omitempty"`
	Description         string  `json:"description,omitempty"`
}

// DiscoveredFile represents a profile document found during directory
// scanning.
type DiscoveredFile struct {
	Path      string
	ProfileID string // derived from filename, overridden by the document's id field
	MtimeNs   int64
	SizeBytes int64
}
