package extract

// recognizerConfidence is the fixed confidence assigned to spans contributed
// by a secondary recognizer. Pattern matches at equal confidence win the
// deduplication tie.
const recognizerConfidence = 0.8

// recognizerLabelTypes maps a recognizer's native label set into the core
// entity type vocabulary. Labels absent from the map are dropped.
var recognizerLabelTypes = map[string]string{
	"ORG":     "Company",
	"PERSON":  "Person",
	"DATE":    "Date",
	"MONEY":   "MonetaryAmount",
	"PERCENT": "Percentage",
	"PRODUCT": "Product",
}

// RecognizedSpan is a raw span produced by a secondary recognizer, labeled
// in the recognizer's native vocabulary.
type RecognizedSpan struct {
	Text  string
	Label string
	Start int
	End   int
}

// Recognizer is a pluggable secondary entity source, such as a statistical
// NER model. Implementations return raw labeled spans; the extractor maps
// labels into the core type vocabulary and applies the standard
// deduplication and filtering rules.
type Recognizer interface {
	Recognize(text string) []RecognizedSpan
}

// RecognizerFunc adapts a function to the Recognizer interface.
type RecognizerFunc func(text string) []RecognizedSpan

// Recognize calls f.
func (f RecognizerFunc) Recognize(text string) []RecognizedSpan {
	return f(text)
}

var _ Recognizer = (RecognizerFunc)(nil)
