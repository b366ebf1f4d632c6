package commission

import "testing"

func TestCalculate_AtClose(t *testing.T) {
	gross, partner := Calculate(1_500_000, 0.25)
	if gross != 30_000 {
		t.Fatalf("gross = %v, want 30000", gross)
	}
	if partner != 7_500 {
		t.Fatalf("partner = %v, want 7500", partner)
	}
}

func TestCalculate_AtEstimate(t *testing.T) {
	gross, partner := Calculate(1_000_000, 0.25)
	if gross != 20_000 {
		t.Fatalf("gross = %v, want 20000", gross)
	}
	if partner != 5_000 {
		t.Fatalf("partner = %v, want 5000", partner)
	}
}

func TestCalculate_InvariantHolds(t *testing.T) {
	for _, c := range []struct{ amount, pct float64 }{
		{500_000, 0}, {2_000_000, 0.2}, {25_000_000, 1},
	} {
		gross, partner := Calculate(c.amount, c.pct)
		if partner != gross*c.pct {
			t.Fatalf("partner %v != gross %v * pct %v", partner, gross, c.pct)
		}
	}
}
