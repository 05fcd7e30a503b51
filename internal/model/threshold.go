package model

// CategoryThreshold holds the personalized spending boundaries for one
// category, as fractions of monthly income. Reasoning is part of the
// output contract: it names the factors that drove the numbers.
type CategoryThreshold struct {
	Category        string
	WarningFraction float64
	TargetFraction  float64
	Reasoning       string
}

// SavingsBand holds the personalized savings-rate thresholds as income
// fractions, ordered Minimum <= Target <= Optimal.
type SavingsBand struct {
	Minimum   float64
	Target    float64
	Optimal   float64
	Reasoning string
}

// ThresholdSet is the output of the threshold engine.
type ThresholdSet struct {
	Categories []CategoryThreshold
	Savings    SavingsBand
}

// Category returns the threshold row for a category, if governed.
func (t ThresholdSet) Category(name string) (CategoryThreshold, bool) {
	for _, ct := range t.Categories {
		if ct.Category == name {
			return ct, true
		}
	}
	return CategoryThreshold{}, false
}
