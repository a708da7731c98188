package detector

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/nao1215/phishscore/internal/model"
)

// Length/entropy thresholds. Both comparisons are strict.
const (
	EntropyPenalty   = 12.0
	EntropyThreshold = 3.5
	LengthThreshold  = 75
)

// EntropyDetector flags long or high-entropy URLs.
type EntropyDetector struct{}

// NewEntropyDetector creates an EntropyDetector.
func NewEntropyDetector() *EntropyDetector {
	return &EntropyDetector{}
}

// Name returns the detector name.
func (d *EntropyDetector) Name() string {
	return "entropy"
}

// Detect fires when the raw URL is longer than LengthThreshold characters
// or the entropy of the lowered URL exceeds EntropyThreshold.
func (d *EntropyDetector) Detect(u model.ParsedURL) (model.Finding, bool) {
	length := utf8.RuneCountInString(u.Raw)
	ent := Entropy(u.Lowered)
	if length <= LengthThreshold && ent <= EntropyThreshold {
		return model.Finding{}, false
	}

	return model.Finding{
		Type:    model.FindingTypeEntropy,
		Title:   "High entropy/length",
		Detail:  fmt.Sprintf("length=%d, entropy=%.2f", length, ent),
		Penalty: EntropyPenalty,
	}, true
}

// Entropy returns the Shannon entropy in bits of the character
// distribution of s. The empty string has entropy 0.
//
// Characters are tallied in first-seen order so the floating-point sum is
// reproducible across runs.
func Entropy(s string) float64 {
	if s == "" {
		return 0
	}

	counts := make(map[rune]int)
	var order []rune
	total := 0
	for _, r := range s {
		if counts[r] == 0 {
			order = append(order, r)
		}
		counts[r]++
		total++
	}

	var sum float64
	for _, r := range order {
		p := float64(counts[r]) / float64(total)
		sum += p * math.Log2(p)
	}
	return -sum
}
