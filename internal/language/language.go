package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// words maps English language names accepted in config files to BCP 47 tags.
var words = map[string]string{
	"portuguese": "pt",
	"brazilian":  "pt-BR",
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
}

// Parse resolves a language code, tag, or English word to a tag. Bare "pt"
// resolves to Brazilian Portuguese because every keyword list and report is
// written in that variant.
func Parse(code string) (language.Tag, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return language.Und, false
	}
	if mapped, ok := words[code]; ok {
		code = mapped
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.Und, false
	}
	if base, _ := tag.Base(); base.String() == "pt" {
		if _, conf := tag.Region(); conf != language.Exact {
			return language.BrazilianPortuguese, true
		}
	}
	return tag, true
}

// ToISO2 converts any recognized language code or word to ISO 639-1 (2-letter).
// Returns empty string for unrecognized input.
func ToISO2(code string) string {
	tag, ok := Parse(code)
	if !ok {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	iso := base.String()
	if len(iso) != 2 {
		return ""
	}
	return iso
}

// CaseTag returns the tag used for locale-aware case folding, falling back
// to Brazilian Portuguese.
func CaseTag(code string) language.Tag {
	if tag, ok := Parse(code); ok {
		return tag
	}
	return language.BrazilianPortuguese
}

// DisplayName returns the English name of the language, or the uppercased
// input when it is not recognized.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	tag, ok := Parse(code)
	if !ok {
		return strings.ToUpper(strings.TrimSpace(code))
	}
	return display.English.Tags().Name(tag)
}
