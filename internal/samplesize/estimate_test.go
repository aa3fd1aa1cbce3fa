package samplesize

import "testing"

func TestEstimateTotalPinnedValues(t *testing.T) {
	cases := []struct {
		name                          string
		alpha, power, effect, dropout string
		want                          int
	}{
		{"canonical no dropout", "0.05", "0.80", "0.5", "0", 126},
		{"canonical 15 percent dropout", "0.05", "0.80", "0.5", "15%", 149},
		{"dropout as fraction", "0.05", "0.80", "0.5", "0.15", 149},
		{"dropout as bare percent number", "0.05", "0.80", "0.5", "15", 149},
		{"unparseable alpha falls back to 0.05", "garbage", "0.80", "0.5", "", 126},
		{"unparseable power falls back to 0.80", "0.05", "??", "0.5", "", 126},
		{"comma decimal effect size", "0.05", "0.80", "0,5", "", 126},
		{"effect size embedded in prose", "0.05", "0.80", "an effect of 0.5 points", "", 126},
		{"stricter alpha", "0.01", "0.80", "0.5", "", 188},
		{"higher power", "0.05", "0.90", "0.5", "", 170},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := EstimateTotal(tc.alpha, tc.power, tc.effect, tc.dropout)
			if !ok {
				t.Fatalf("EstimateTotal(%q,%q,%q,%q) not ok", tc.alpha, tc.power, tc.effect, tc.dropout)
			}
			if got != tc.want {
				t.Errorf("EstimateTotal(%q,%q,%q,%q) = %d, want %d", tc.alpha, tc.power, tc.effect, tc.dropout, got, tc.want)
			}
		})
	}
}

func TestEstimateTotalNoEffectSize(t *testing.T) {
	for _, effect := range []string{"", "0", "zero", "to be determined"} {
		if got, ok := EstimateTotal("0.05", "0.80", effect, ""); ok {
			t.Errorf("EstimateTotal with effect %q = (%d, true), want not ok", effect, got)
		}
	}
}

func TestEstimateTotalDropoutBounds(t *testing.T) {
	// Dropout of 100 percent or more cannot be inflated away; the raw
	// estimate comes back unchanged.
	got, ok := EstimateTotal("0.05", "0.80", "0.5", "100%")
	if !ok || got != 126 {
		t.Fatalf("EstimateTotal with 100%% dropout = (%d, %v), want (126, true)", got, ok)
	}
}
