package gpa

import "testing"

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want Weight
	}{
		{"AP Biology", nil, Advanced},
		{"KAP English 1", nil, Advanced},
		{"Biology", []string{"AP"}, Advanced},
		{"Biology", []string{"KAP"}, Advanced},
		{"Biology", []string{"kap"}, Advanced},
		{"Dual Credit US History", nil, DualCredit},
		{"US History", []string{"DC"}, DualCredit},
		{"US History", []string{"dc"}, DualCredit},
		{"Biology", []string{"DC"}, DualCredit},
		{"Biology", nil, Standard},
		{"Art 1", []string{"CTE"}, Standard},
		// AP strictly precedes dual credit.
		{"AP Dual Credit Seminar", []string{"DC"}, Advanced},
		{"Dual Credit Biology", []string{"AP"}, Advanced},
	}

	for _, tt := range tests {
		if got := Calculate(tt.name, tt.tags); got != tt.want {
			t.Errorf("Calculate(%q, %v) = %v, want %v", tt.name, tt.tags, got, tt.want)
		}
	}
}

func TestCalculateIsIdempotentEvidence(t *testing.T) {
	// Repeated classification of the same inputs never drifts.
	for i := 0; i < 3; i++ {
		if got := Calculate("AP Biology", []string{"DC"}); got != Advanced {
			t.Fatalf("pass %d: got %v, want %v", i, got, Advanced)
		}
	}
}

func TestWeightValid(t *testing.T) {
	for _, w := range []Weight{Standard, DualCredit, Advanced} {
		if !w.Valid() {
			t.Errorf("%v should be valid", w)
		}
	}
	if Weight(3.5).Valid() {
		t.Error("3.5 is not a recognized weight")
	}
}
