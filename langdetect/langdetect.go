// Package langdetect tags transcripts with the language they were spoken in.
package langdetect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
	_ "github.com/pemistahl/lingua-go/language-models/de"
	_ "github.com/pemistahl/lingua-go/language-models/en"
	_ "github.com/pemistahl/lingua-go/language-models/es"
	_ "github.com/pemistahl/lingua-go/language-models/fr"
	_ "github.com/pemistahl/lingua-go/language-models/it"
	_ "github.com/pemistahl/lingua-go/language-models/ja"
	_ "github.com/pemistahl/lingua-go/language-models/ko"
	_ "github.com/pemistahl/lingua-go/language-models/nl"
	_ "github.com/pemistahl/lingua-go/language-models/pt"
	_ "github.com/pemistahl/lingua-go/language-models/ru"
	_ "github.com/pemistahl/lingua-go/language-models/zh"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// minTextLength is the shortest transcript worth classifying; anything
// shorter is reported as undetermined.
const minTextLength = 12

// Detector classifies transcript text against a fixed set of dictation
// languages. Safe for concurrent use.
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a Detector over the supported language set.
func New() *Detector {
	langs := []lingua.Language{
		lingua.English,
		lingua.Spanish,
		lingua.French,
		lingua.German,
		lingua.Italian,
		lingua.Portuguese,
		lingua.Dutch,
		lingua.Russian,
		lingua.Japanese,
		lingua.Korean,
		lingua.Chinese,
	}
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(langs...).
			Build(),
	}
}

// Detect returns the ISO 639-1 code and English display name for text.
// Undeterminable or too-short text yields ("auto", "Unknown").
func (d *Detector) Detect(text string) (code, name string) {
	text = strings.TrimSpace(text)
	if len(text) < minTextLength {
		return "auto", "Unknown"
	}

	detected, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "auto", "Unknown"
	}

	code = strings.ToLower(detected.IsoCode639_1().String())
	tag, err := language.Parse(code)
	if err != nil {
		return code, "Unknown"
	}
	return code, display.English.Languages().Name(tag)
}
