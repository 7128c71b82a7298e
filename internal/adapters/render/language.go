package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supportedTags = []language.Tag{
	language.English,
	language.German,
}

// Label keys double as English format strings.
const (
	msgHeader     = "run %s, seed %s, %d trials per talent"
	msgNeeded     = "needed"
	msgProb       = "probability"
	msgCumulative = "cumulative"
	msgSuccess    = "success"
	msgChecks     = "checks"
	msgSkill      = "skill"
	msgNotLearned = "not learned"
	msgSkipped    = "skipped (not learned): %s"
)

var german = map[string]string{
	msgHeader:     "Lauf %s, Seed %s, %d Würfe je Talent",
	msgNeeded:     "benötigt",
	msgProb:       "Wahrscheinlichkeit",
	msgCumulative: "kumuliert",
	msgSuccess:    "Erfolg",
	msgChecks:     "Proben",
	msgSkill:      "FW",
	msgNotLearned: "nicht erlernt",
	msgSkipped:    "übersprungen (nicht erlernt): %s",
}

var labels = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, de := range german {
		if err := b.SetString(language.English, key, key); err != nil {
			panic(err)
		}
		if err := b.SetString(language.German, key, de); err != nil {
			panic(err)
		}
	}
	return b
}

// Supported returns the languages the renderers can localize to.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// ParseLanguage maps a language code like "en" or "de-AT" to a supported tag.
// The empty string selects English.
func ParseLanguage(value string) (language.Tag, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.English, nil
	}
	parsed, err := language.Parse(value)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q", ErrUnknownLanguage, value)
	}
	base, _ := parsed.Base()
	for _, tag := range supportedTags {
		if b, _ := tag.Base(); b == base {
			return tag, nil
		}
	}
	return language.Und, fmt.Errorf("%w: %q", ErrUnknownLanguage, value)
}

// Printer returns a message printer for tag backed by the label catalog.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(labels))
}
