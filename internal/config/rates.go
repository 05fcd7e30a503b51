package config

// DefaultGovernmentBaseline is the published all-India CPI figure the
// personal rate is compared against, percent per year.
const DefaultGovernmentBaseline = 6.5

// TrendFactor is applied when the projection horizon exceeds
// TrendHorizonMonths.
const (
	TrendFactor        = 1.05
	TrendHorizonMonths = 6
)

// StandardWeights is the fallback category weighting used for spending
// categories absent from a snapshot. Must sum to 1.0; VerifyTables
// checks that at test time.
var StandardWeights = map[string]float64{
	"food":          0.25,
	"housing":       0.30,
	"transport":     0.12,
	"entertainment": 0.08,
	"shopping":      0.10,
	"healthcare":    0.06,
	"education":     0.05,
	"miscellaneous": 0.04,
}

// BaseRates holds the per-category annual inflation rates, percent,
// before location adjustment.
var BaseRates = map[string]float64{
	"food":          7.5,
	"housing":       5.0,
	"transport":     6.0,
	"entertainment": 4.5,
	"shopping":      5.5,
	"healthcare":    9.0,
	"education":     8.0,
	"miscellaneous": 5.0,
}

// SeasonalFactors is indexed by month (January = 0). Festive-season
// demand lifts October-December; the post-harvest window eases prices.
var SeasonalFactors = [12]float64{
	1.02, // Jan
	1.00, // Feb
	0.98, // Mar
	0.97, // Apr
	0.99, // May
	1.01, // Jun
	1.03, // Jul
	1.02, // Aug
	1.00, // Sep
	1.04, // Oct
	1.06, // Nov
	1.03, // Dec
}
