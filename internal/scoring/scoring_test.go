package scoring

import (
	"math"
	"testing"

	"github.com/nao1215/phishscore/internal/model"
)

// TestStatusFor tests the status thresholds.
func TestStatusFor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		confidence float64
		expected   model.Status
	}{
		{100, model.StatusSafe},
		{80, model.StatusSafe},
		{79.9, model.StatusSuspicious},
		{50, model.StatusSuspicious},
		{49.9, model.StatusDangerous},
		{0, model.StatusDangerous},
	}

	for _, tc := range testCases {
		t.Run(tc.expected.String(), func(t *testing.T) {
			t.Parallel()

			if got := StatusFor(tc.confidence); got != tc.expected {
				t.Errorf("StatusFor(%v) = %v, expected %v", tc.confidence, got, tc.expected)
			}
		})
	}
}

// TestRound1 tests one-decimal rounding of binary floating-point values.
func TestRound1(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    float64
		expected float64
	}{
		{0.25, 0.2},
		{0.35, 0.3},
		{57.54545454545455, 57.5},
		{79.95, 80.0},
		{49.95, 50.0},
		{84.512, 84.5},
		{100, 100},
		{0, 0},
	}

	for _, tc := range testCases {
		if got := Round1(tc.input); got != tc.expected {
			t.Errorf("Round1(%v) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}

// TestClamp tests clamping into [0, 100].
func TestClamp(t *testing.T) {
	t.Parallel()

	if Clamp(-3) != 0 {
		t.Error("expected negative values to clamp to 0")
	}
	if Clamp(130) != 100 {
		t.Error("expected large values to clamp to 100")
	}
	if Clamp(42.5) != 42.5 {
		t.Error("expected in-range values to pass through")
	}
}

// TestAggregate tests final result construction.
func TestAggregate(t *testing.T) {
	t.Parallel()

	entropy := model.Finding{Type: model.FindingTypeEntropy, Title: "High entropy/length", Penalty: 12}

	t.Run("heuristics only", func(t *testing.T) {
		t.Parallel()

		r := Aggregate([]model.Finding{entropy}, 88.0, 0, false, false)
		if r.Confidence != 88.0 || r.Status != model.StatusSafe {
			t.Errorf("unexpected result %+v", r)
		}
		if r.HasFindingType(model.FindingTypeML) {
			t.Error("expected no ML finding")
		}
		if r.MLAvailable {
			t.Error("expected MLAvailable false")
		}
	})

	t.Run("classifier blend", func(t *testing.T) {
		t.Parallel()

		r := Aggregate([]model.Finding{entropy}, 88.0, 79.28, true, true)
		if r.Confidence != 84.5 {
			t.Errorf("expected 84.5, got %v", r.Confidence)
		}
		last := r.Findings[len(r.Findings)-1]
		if last.Title != "ML included" || last.Detail != "Local model contributed 79.3% confidence." {
			t.Errorf("unexpected ML finding %+v", last)
		}
		if last.Penalty != 0 {
			t.Errorf("expected informational finding, got penalty %v", last.Penalty)
		}
	})

	t.Run("surrogate label scores", func(t *testing.T) {
		t.Parallel()

		base := 100 - 15.0*4/11 - 25 - 12
		if r := Aggregate(nil, base, 90, true, true); r.Confidence != 70.5 || r.Status != model.StatusSuspicious {
			t.Errorf("unexpected positive-label result %+v", r)
		}
		if r := Aggregate(nil, base, 20, true, true); r.Confidence != 42.5 || r.Status != model.StatusDangerous {
			t.Errorf("unexpected negative-label result %+v", r)
		}
	})

	t.Run("available classifier whose call failed", func(t *testing.T) {
		t.Parallel()

		r := Aggregate(nil, 75, 0, false, true)
		if r.Confidence != 75 || !r.MLAvailable || len(r.Findings) != 0 {
			t.Errorf("unexpected result %+v", r)
		}
	})

	t.Run("out of range inputs are clamped", func(t *testing.T) {
		t.Parallel()

		if r := Aggregate(nil, 100, 250, true, true); r.Confidence != 100 {
			t.Errorf("expected 100, got %v", r.Confidence)
		}
		if r := Aggregate(nil, -20, 0, false, false); r.Confidence != 0 {
			t.Errorf("expected 0, got %v", r.Confidence)
		}
	})
}

// TestBlendProperty tests that the blended confidence equals the weighted
// sum of the heuristic base and the classifier score before rounding.
func TestBlendProperty(t *testing.T) {
	t.Parallel()

	for b := 0.0; b <= 100; b += 7.3 {
		for p := 0.0; p <= 1; p += 0.1 {
			got := Blend(b, p*100)
			want := 0.6*b + 0.4*(p*100)
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("Blend(%v, %v) = %v, expected %v", b, p*100, got, want)
			}
			if r := Aggregate(nil, b, p*100, true, true); math.Abs(r.Confidence-want) > 0.05+1e-9 {
				t.Errorf("Aggregate(%v, %v) = %v, expected about %v", b, p*100, r.Confidence, want)
			}
		}
	}
}

// TestInvalidResult tests the empty-input result.
func TestInvalidResult(t *testing.T) {
	t.Parallel()

	r := InvalidResult(true)
	if r.Confidence != 0 || r.Status != model.StatusDangerous {
		t.Errorf("unexpected result %+v", r)
	}
	if len(r.Findings) != 1 || r.Findings[0].Title != "Invalid URL" || r.Findings[0].Detail != "Empty input" {
		t.Errorf("unexpected findings %+v", r.Findings)
	}
	if !r.MLAvailable {
		t.Error("expected MLAvailable to be carried through")
	}
}
