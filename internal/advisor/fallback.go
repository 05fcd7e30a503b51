package advisor

import (
	"fmt"
	"strings"

	"finsight/internal/model"
)

// Fallback builds a deterministic commentary from the advice alone,
// used when no service is configured or the request fails. Same
// advice in, same text out.
func Fallback(res model.AdviceResult) string {
	var b strings.Builder

	inf := res.Inflation
	fmt.Fprintf(&b, "Your personal inflation rate is %.1f%% (%s), against a %.1f%% baseline for your area.",
		inf.PersonalRate, strings.ToLower(inf.Severity.String()), inf.LocationBaseline)

	if inf.Difference > 0 {
		fmt.Fprintf(&b, " You are running %.1f points hot, mostly from", inf.Difference)
		for i, contrib := range inf.Breakdown {
			if i >= 2 {
				break
			}
			if i > 0 {
				b.WriteString(" and")
			}
			fmt.Fprintf(&b, " %s", contrib.Category)
		}
		b.WriteString(" spending.")
	} else {
		b.WriteString(" Your spending mix is holding costs below the local average.")
	}

	if n := len(res.Goals); n > 0 {
		fmt.Fprintf(&b, " %d goal", n)
		if n > 1 {
			b.WriteString("s")
		}
		b.WriteString(" suggested for your profile.")
	}

	for _, rec := range res.Recommendations {
		if rec.Priority >= model.PriorityHigh {
			fmt.Fprintf(&b, " Priority action: %s.", rec.Title)
			break
		}
	}

	return b.String()
}
