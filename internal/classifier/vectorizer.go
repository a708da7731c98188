package classifier

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Supported vectorizer settings.
const (
	AnalyzerChar = "char"
	NormL2       = "l2"
	NormL1       = "l1"
	NormNone     = ""
)

// whitespaceRun matches runs of two or more whitespace characters, which
// are collapsed to a single space before n-grams are taken.
var whitespaceRun = regexp.MustCompile(`\s\s+`)

// Vectorizer is a character n-gram TF-IDF vectorizer.
// It reproduces the transform of a fitted scikit-learn TfidfVectorizer
// with analyzer="char" exported to JSON.
type Vectorizer struct {
	// Analyzer must be "char".
	Analyzer string `json:"analyzer"`

	// NgramRange is the inclusive [min, max] n-gram length.
	NgramRange [2]int `json:"ngram_range"`

	// Lowercase lower-cases the document before extracting n-grams.
	Lowercase bool `json:"lowercase"`

	// Vocabulary maps n-grams to feature indices.
	Vocabulary map[string]int `json:"vocabulary"`

	// IDF holds the inverse document frequency per feature index.
	IDF []float64 `json:"idf"`

	// Norm is "l2", "l1" or empty for no normalization.
	Norm string `json:"norm"`

	// SublinearTF replaces term frequency tf with 1 + ln(tf).
	SublinearTF bool `json:"sublinear_tf"`
}

// Feature is one non-zero entry of a sparse feature vector.
type Feature struct {
	Index int
	Value float64
}

// Dimensions returns the number of features the vectorizer produces.
func (v *Vectorizer) Dimensions() int {
	return len(v.IDF)
}

// Validate checks the vectorizer is internally consistent.
func (v *Vectorizer) Validate() error {
	if v.Analyzer != AnalyzerChar {
		return fmt.Errorf("%w: unsupported analyzer %q", ErrInvalidArtifact, v.Analyzer)
	}
	if v.NgramRange[0] < 1 || v.NgramRange[1] < v.NgramRange[0] {
		return fmt.Errorf("%w: invalid ngram_range %v", ErrInvalidArtifact, v.NgramRange)
	}
	switch v.Norm {
	case NormL2, NormL1, NormNone:
	default:
		return fmt.Errorf("%w: unsupported norm %q", ErrInvalidArtifact, v.Norm)
	}
	if len(v.Vocabulary) == 0 {
		return fmt.Errorf("%w: empty vocabulary", ErrInvalidArtifact)
	}
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.IDF) {
			return fmt.Errorf("%w: vocabulary entry %q has index %d outside idf of length %d",
				ErrInvalidArtifact, term, idx, len(v.IDF))
		}
	}
	return nil
}

// Transform converts a document to a sparse TF-IDF vector ordered by
// feature index. N-grams not in the vocabulary are ignored.
func (v *Vectorizer) Transform(doc string) []Feature {
	if v.Lowercase {
		doc = cases.Lower(language.Und).String(doc)
	}

	counts := make(map[int]int)
	for _, gram := range charNgrams(doc, v.NgramRange[0], v.NgramRange[1]) {
		if idx, ok := v.Vocabulary[gram]; ok {
			counts[idx]++
		}
	}

	features := make([]Feature, 0, len(counts))
	for idx, c := range counts {
		tf := float64(c)
		if v.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		features = append(features, Feature{Index: idx, Value: tf * v.IDF[idx]})
	}
	sort.Slice(features, func(i, j int) bool {
		return features[i].Index < features[j].Index
	})

	normalize(features, v.Norm)
	return features
}

// charNgrams returns every character n-gram of doc with length in
// [minN, maxN], shorter lengths first.
func charNgrams(doc string, minN, maxN int) []string {
	runes := []rune(whitespaceRun.ReplaceAllString(doc, " "))

	var grams []string
	for n := minN; n <= maxN && n <= len(runes); n++ {
		for i := 0; i+n <= len(runes); i++ {
			grams = append(grams, string(runes[i:i+n]))
		}
	}
	return grams
}

func normalize(features []Feature, norm string) {
	var total float64
	switch norm {
	case NormL2:
		for _, f := range features {
			total += f.Value * f.Value
		}
		total = math.Sqrt(total)
	case NormL1:
		for _, f := range features {
			total += math.Abs(f.Value)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for i := range features {
		features[i].Value /= total
	}
}
