package detector

import (
	"strings"

	"github.com/nao1215/phishscore/internal/model"
)

// KeywordMaxPenalty is the penalty when every keyword matches.
const KeywordMaxPenalty = 15.0

// Keywords is the suspicious vocabulary, in reporting order.
var Keywords = []string{
	"login", "verify", "account", "update", "secure", "confirm",
	"bank", "signin", "password", "reset", "payment",
}

// KeywordDetector flags credential and urgency vocabulary.
// Each keyword counts once, matched as a substring of the lowered URL.
type KeywordDetector struct {
	keywords []string
}

// NewKeywordDetector creates a detector over the standard keyword list.
func NewKeywordDetector() *KeywordDetector {
	return &KeywordDetector{keywords: Keywords}
}

// Name returns the detector name.
func (d *KeywordDetector) Name() string {
	return "keyword"
}

// Detect reports the matched keywords in list order.
// The penalty is KeywordMaxPenalty scaled by the fraction of keywords found.
func (d *KeywordDetector) Detect(u model.ParsedURL) (model.Finding, bool) {
	var found []string
	for _, k := range d.keywords {
		if strings.Contains(u.Lowered, k) {
			found = append(found, k)
		}
	}
	if len(found) == 0 {
		return model.Finding{}, false
	}

	return model.Finding{
		Type:    model.FindingTypeKeyword,
		Title:   "Suspicious keywords",
		Detail:  "Found: " + strings.Join(found, ", "),
		Penalty: KeywordMaxPenalty * float64(len(found)) / float64(max(1, len(d.keywords))),
	}, true
}
