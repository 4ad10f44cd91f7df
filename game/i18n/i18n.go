package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// LangParam is the query parameter used to select a language
const LangParam = "lang"

var supported = []language.Tag{language.English, language.German}

var matcher = language.NewMatcher(supported)

// Supported returns the languages with a catalog
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Default returns the fallback language
func Default() language.Tag {
	return language.English
}

// ParseTag matches a user-supplied language against the supported set
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return Default(), false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default(), false
	}
	return supported[idx], true
}

// ResolveTag picks the language for a request from ?lang= then Accept-Language
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := ParseTag(value); ok {
			return tag
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return supported[idx]
			}
		}
	}
	return Default()
}

// Printer returns a message printer for the tag
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Text renders a message key. Unknown keys are returned as-is.
func Text(tag language.Tag, key string, args ...any) string {
	if key == "" {
		return ""
	}
	return Printer(tag).Sprintf(key, args...)
}

// Money renders an amount held in tenths using the locale's number format
func Money(tag language.Tag, tenths int64) string {
	p := Printer(tag)
	return p.Sprintf("£%v", number.Decimal(float64(tenths)/10, number.Scale(2)))
}
