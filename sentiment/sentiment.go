package sentiment

import "context"

// Sentiment labels as normalized from the classifier backend.
const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
	LabelNeutral  = "NEUTRAL"
)

// MaxSequenceRunes is the classifier's input budget. Longer text is cut
// silently; truncation is never an error.
const MaxSequenceRunes = 512

// Classifier is the capability of labeling a piece of text with a sentiment
// and the backend's own confidence for the winning label (0..1, reported
// as-is, no recalibration).
type Classifier interface {
	Classify(ctx context.Context, text string) (label string, score float64, err error)
}

// Truncate cuts text to the classifier input budget.
func Truncate(text string) string {
	rs := []rune(text)
	if len(rs) <= MaxSequenceRunes {
		return text
	}
	return string(rs[:MaxSequenceRunes])
}
