// Package i18n selects localized phrases and formats dates for the small set
// of locales the rendering layer ships with. It is intentionally not a full
// translation system - authored content arrives already localized, only the
// handful of UI phrases the renderer generates itself (link titles, download
// labels) go through here.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is configured or the requested one
// cannot be matched.
const DefaultLocale = "en"

// Phrases maps a BCP 47 locale to the phrase in that locale. Callers must
// always supply at least the "en" entry.
type Phrases map[string]string

type Localizer struct {
	tag language.Tag
}

// New creates a localizer for the given locale. Unparseable locales fall
// back to English rather than failing - a bad locale setting should never
// break page rendering.
func New(locale string) *Localizer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Localizer{tag: tag}
}

func (l *Localizer) Locale() string {
	base, _ := l.tag.Base()
	return base.String()
}

// Localize picks the phrase best matching the active locale, falling back to
// English and then to any available entry.
func (l *Localizer) Localize(phrases Phrases) string {
	if len(phrases) == 0 {
		return ""
	}

	tags := make([]language.Tag, 0, len(phrases))
	keys := make([]string, 0, len(phrases))
	for k := range phrases {
		tag, err := language.Parse(k)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		keys = append(keys, k)
	}
	if len(tags) > 0 {
		m := language.NewMatcher(tags)
		if _, idx, conf := m.Match(l.tag); conf > language.No {
			return phrases[keys[idx]]
		}
	}

	if p, ok := phrases[DefaultLocale]; ok {
		return p
	}
	for _, p := range phrases {
		return p
	}
	return ""
}

// Month names for the locales the renderer is shipped with. Anything else
// falls back to English.
var monthNames = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	"fr": {"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
}

// FormatDate renders a long-form date, optionally with a time component,
// in the active locale.
func (l *Localizer) FormatDate(t time.Time, withTime bool) string {
	locale := l.Locale()

	var out string
	switch locale {
	case "fr":
		out = fmt.Sprintf("%d %s %d", t.Day(), monthNames["fr"][t.Month()-1], t.Year())
	case "es":
		out = fmt.Sprintf("%d de %s de %d", t.Day(), monthNames["es"][t.Month()-1], t.Year())
	case "zh":
		out = fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
	default:
		out = fmt.Sprintf("%s %d, %d", monthNames["en"][t.Month()-1], t.Day(), t.Year())
	}

	if withTime {
		out += " " + t.Format("15:04")
	}
	return out
}

// Expand substitutes the single %s placeholder in every phrase of the table.
// Convenience for the common "phrase around a value" pattern.
func Expand(phrases Phrases, value string) Phrases {
	out := make(Phrases, len(phrases))
	for k, v := range phrases {
		if strings.Contains(v, "%s") {
			out[k] = fmt.Sprintf(v, value)
		} else {
			out[k] = v
		}
	}
	return out
}
