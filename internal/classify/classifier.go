// Package classify implements the status heuristics: free text about an
// airline in, an operating-status label with a confidence tier out.
//
// The classifier is pure and deterministic. It never fails; text that
// matches nothing yields StatusUnknown with low confidence.
package classify

import (
	"regexp"
	"strings"

	"github.com/JinojiLock/Airlines/internal/model"
)

// Phrase sets are checked by substring containment against lowercased
// source text. Order matters only for the renamed set, where the first
// phrase that yields a successor name wins.
var (
	defunctPhrases = []string{
		"ceased operations", "defunct", "no longer operates",
		"discontinued", "liquidated", "bankrupt", "shut down",
		"stopped flying", "ended operations", "closed down",
		"ceased trading", "went out of business",
	}

	operatingPhrases = []string{
		"currently operates", "operating", "operates flights",
		"active airline", "continues to operate", "flying",
		"serves destinations", "scheduled flights", "is operating",
	}

	renamedPhrases = []string{
		"renamed to", "rebranded as", "now known as",
		"changed its name to", "became", "merged with",
		"acquired by", "replaced by",
	}
)

// ceasedYearRe picks up the first 4-digit year after a "ceased
// operation(s)" mention in the lowered text.
var ceasedYearRe = regexp.MustCompile(`ceased operations?.*?(\d{4})`)

// successorRes holds one pattern per renamed phrase: the phrase
// (case-insensitive) followed by a capitalized name, cut off at a
// sentence boundary, a comma, " in ", " from ", or end of text.
var successorRes = buildSuccessorPatterns()

func buildSuccessorPatterns() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(renamedPhrases))
	for i, phrase := range renamedPhrases {
		res[i] = regexp.MustCompile(`(?i:` + regexp.QuoteMeta(phrase) + `)\s+([A-Z][\w\s&-]+?)(?:\.|,|\sin\s|\sfrom\s|$)`)
	}
	return res
}

// Classify runs the keyword heuristics over sourceText for the named
// airline. subjectName is part of the contract for future heuristics but
// the current rules do not consult it.
func Classify(subjectName, sourceText string) model.Classification {
	lower := strings.ToLower(sourceText)

	isDefunct := containsAny(lower, defunctPhrases)
	isOperating := containsAny(lower, operatingPhrases)
	isRenamed := containsAny(lower, renamedPhrases)

	var ceasedYear string
	if m := ceasedYearRe.FindStringSubmatch(lower); m != nil {
		ceasedYear = m[1]
	}

	var successor string
	if isRenamed {
		// Match against the original-case text: the successor must
		// start with a capital letter.
		for _, re := range successorRes {
			if m := re.FindStringSubmatch(sourceText); m != nil {
				successor = strings.TrimSpace(m[1])
				break
			}
		}
	}

	// Confidence guards, checked in order.
	confidence := model.ConfidenceLow
	switch {
	case isDefunct && ceasedYear != "":
		confidence = model.ConfidenceHigh
	case isOperating && strings.Contains(lower, "currently"):
		confidence = model.ConfidenceHigh
	case isDefunct || isOperating:
		confidence = model.ConfidenceMedium
	}

	// Status priority: defunct beats operating beats renamed. Renamed
	// requires an extracted successor; otherwise the text falls through
	// to unknown. The successor name is kept whichever status wins, so
	// a defunct airline absorbed by another still reports who took over.
	cls := model.Classification{
		SuccessorName: successor,
		Confidence:    confidence,
	}
	switch {
	case isDefunct:
		cls.Status = model.StatusDefunct
		cls.CeasedYear = ceasedYear
	case isOperating:
		cls.Status = model.StatusOperating
	case isRenamed && successor != "":
		cls.Status = model.StatusRenamed
	default:
		cls.Status = model.StatusUnknown
	}
	return cls
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
