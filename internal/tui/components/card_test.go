package components

import (
	"strings"
	"testing"

	"finsight/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	cases := []struct {
		total, n int
	}{
		{120, 4},
		{121, 4},
		{123, 4},
		{80, 3},
		{7, 2},
	}
	for _, tc := range cases {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) len = %d", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
	if LayoutRow(100, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("setup: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	if got := len(strings.Split(joined, "\n")); got != tallLines {
		t.Errorf("joined height = %d, want %d (tallest card)", got, tallLines)
	}
}

func TestHBarListLayout(t *testing.T) {
	theme.SetActive("flexoki-dark")

	rows := []HBarRow{
		{Label: "food", Value: 40, Note: "40.0%"},
		{Label: "transport", Value: 20, Note: "20.0%"},
		{Label: "entertainment", Value: 10, Note: "10.0%"},
	}
	out := HBarList(rows, theme.Active.Blue, 60)

	lines := strings.Split(out, "\n")
	if len(lines) != len(rows) {
		t.Fatalf("got %d lines, want %d", len(lines), len(rows))
	}
	w := lipgloss.Width(lines[0])
	for i, line := range lines[1:] {
		if lipgloss.Width(line) != w {
			t.Errorf("line %d width = %d, want %d", i+1, lipgloss.Width(line), w)
		}
	}

	if HBarList(nil, theme.Active.Blue, 60) != "" {
		t.Error("empty rows should render nothing")
	}
}

func TestSparkline(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := Sparkline([]float64{1, 2, 4, 8}, theme.Active.Cyan)
	plain := stripANSI(out)
	if got := len([]rune(plain)); got != 4 {
		t.Fatalf("sparkline runes = %d, want 4", got)
	}
	runes := []rune(plain)
	if runes[3] != '█' {
		t.Errorf("peak rune = %q, want full block", runes[3])
	}
	if runes[0] >= runes[3] {
		t.Errorf("smallest value rendered %q, peak %q", runes[0], runes[3])
	}

	if Sparkline(nil, theme.Active.Cyan) != "" {
		t.Error("empty values should render nothing")
	}
	// All-zero input must not divide by zero
	if got := stripANSI(Sparkline([]float64{0, 0}, theme.Active.Cyan)); got != "▁▁" {
		t.Errorf("zero values rendered %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := stripANSI(ProgressBar(0.5, 10))
	if !strings.HasSuffix(out, "50%") {
		t.Errorf("bar %q should end with percentage", out)
	}
	if got := strings.Count(out, "█"); got != 5 {
		t.Errorf("filled cells = %d, want 5", got)
	}
	if got := strings.Count(out, "░"); got != 5 {
		t.Errorf("empty cells = %d, want 5", got)
	}

	// Over- and underflow clamp the bar but not the label
	over := stripANSI(ProgressBar(1.3, 10))
	if got := strings.Count(over, "█"); got != 10 {
		t.Errorf("overflow filled cells = %d, want 10", got)
	}
	if !strings.HasSuffix(over, "130%") {
		t.Errorf("overflow bar %q should keep the raw percentage", over)
	}
	under := stripANSI(ProgressBar(-0.2, 10))
	if got := strings.Count(under, "░"); got != 10 {
		t.Errorf("underflow empty cells = %d, want 10", got)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}
