// Package links classifies link targets the way the site renderer needs
// them: downloadable files, known social platforms, mail/phone schemes and
// generic page links, with a human readable title for each.
package links

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/h2non/filetype"

	"webdoc/i18n"
)

// Kind of a classified link target.
type Kind string

const (
	KindFile     Kind = "file"
	KindPlatform Kind = "platform"
	KindEmail    Kind = "email"
	KindPhone    Kind = "phone"
	KindGeneric  Kind = "generic"
)

// fileExtensions is the single allow-list of downloadable file extensions.
// Every place that needs to decide "is this a file link" must go through
// this table - keeping several copies in sync has already caused drift once.
var fileExtensions = []string{
	"pdf",
	"doc",
	"docx",
	"xls",
	"xlsx",
	"ppt",
	"pptx",
	"jpg",
	"svg",
	"jpeg",
	"png",
	"webp",
	"gif",
	"mp4",
	"mp3",
	"wav",
	"mov",
	"zip",
}

var fileExtensionSet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(fileExtensions))
	for _, ext := range fileExtensions {
		s[ext] = struct{}{}
	}
	return s
}()

// platform prefixes in match order, first match wins.
var platformPatterns = []struct {
	name   string
	prefix string
	label  string
}{
	{"twitter", "https://twitter.com", "Twitter"},
	{"facebook", "https://www.facebook.com", "Facebook"},
	{"linkedin", "https://www.linkedin.com", "LinkedIn"},
	{"medium", "https://medium.com", "Medium"},
	{"quora", "https://www.quora.com", "Quora"},
	{"tumblr", "https://www.tumblr.com", "Tumblr"},
	{"youtube", "https://www.youtube.com", "YouTube"},
	{"github", "https://github.com", "GitHub"},
	{"x", "https://x.com", "X"},
	{"instagram", "https://www.instagram.com", "Instagram"},
}

var trailingExtRe = regexp.MustCompile(`\.\w+$`)

// Classification describes a link target.
type Classification struct {
	Kind     Kind
	Platform string // platform name for KindPlatform
	MIME     string // content type for KindFile when the extension is recognized
	External bool
	Title    string // localized human readable title
}

// Classifier resolves link targets against the site origin. The zero value
// classifies everything as external.
type Classifier struct {
	Origin    *url.URL
	Localizer *i18n.Localizer
}

func NewClassifier(origin string, loc *i18n.Localizer) *Classifier {
	c := &Classifier{Localizer: loc}
	if origin != "" {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			c.Origin = u
		}
	}
	if c.Localizer == nil {
		c.Localizer = i18n.New(i18n.DefaultLocale)
	}
	return c
}

// FileExtension extracts the final path extension of the target, lowercased
// and without the dot. Query strings and fragments are ignored. The second
// result is false when there is no extension or the target cannot be parsed.
func FileExtension(href string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	path := u.Path
	if path == "" {
		path = u.Opaque
	}
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || idx == len(path)-1 {
		return "", false
	}
	ext := strings.ToLower(path[idx+1:])
	if strings.ContainsAny(ext, "/\\") {
		return "", false
	}
	return ext, true
}

// IsFile reports whether the target points at a downloadable file. Invalid
// URLs are "not a file", never an error.
func IsFile(href string) bool {
	ext, ok := FileExtension(href)
	if !ok {
		return false
	}
	_, ok = fileExtensionSet[ext]
	return ok
}

// IsExternal reports whether the target leaves the configured site origin.
// Absolute http(s) targets with a different host and mailto links count as
// external; relative paths never do.
func (c *Classifier) IsExternal(href string) bool {
	if strings.HasPrefix(href, "mailto:") {
		return true
	}
	u, err := url.Parse(href)
	if err != nil || u.Host == "" {
		return false
	}
	if c.Origin == nil {
		return true
	}
	return !strings.EqualFold(u.Host, c.Origin.Host)
}

// Platform returns the platform name when the target starts with one of the
// known social/media origins. Matching is case-insensitive and ordered, the
// first hit wins.
func Platform(href string) (string, bool) {
	if href == "" {
		return "", false
	}
	lower := strings.ToLower(href)
	for _, p := range platformPatterns {
		if strings.HasPrefix(lower, p.prefix) {
			return p.name, true
		}
	}
	return "", false
}

// PlatformLabel maps a platform name to its display label, falling back to
// the name itself.
func PlatformLabel(name string) string {
	for _, p := range platformPatterns {
		if p.name == name {
			return p.label
		}
	}
	return name
}

// Classify decides what kind of target href is and derives a localized
// title for it. It never fails: anything unparseable ends up generic with
// the raw href as title material.
func (c *Classifier) Classify(href string) Classification {
	loc := c.Localizer

	if IsFile(href) {
		cl := Classification{Kind: KindFile, External: c.IsExternal(href)}
		if ext, ok := FileExtension(href); ok {
			if t := filetype.GetType(ext); t != filetype.Unknown {
				cl.MIME = t.MIME.Value
			}
		}
		cl.Title = loc.Localize(i18n.Phrases{
			"en": "Download file",
			"fr": "Télécharger le fichier",
			"es": "Descargar archivo",
			"zh": "下载文件",
		})
		return cl
	}

	if name, ok := Platform(href); ok {
		label := PlatformLabel(name)
		return Classification{
			Kind:     KindPlatform,
			Platform: name,
			External: true,
			Title: loc.Localize(i18n.Expand(i18n.Phrases{
				"en": "View on %s",
				"fr": "Voir sur %s",
				"es": "Ver en %s",
				"zh": "在 %s 上查看",
			}, label)),
		}
	}

	if email, ok := strings.CutPrefix(href, "mailto:"); ok {
		return Classification{
			Kind:     KindEmail,
			External: true,
			Title: loc.Localize(i18n.Expand(i18n.Phrases{
				"en": "Send an email to %s",
				"fr": "Envoyer un e-mail à %s",
				"es": "Enviar un correo electrónico a %s",
				"zh": "发送电子邮件到 %s",
			}, email)),
		}
	}

	if phone, ok := strings.CutPrefix(href, "tel:"); ok {
		return Classification{
			Kind: KindPhone,
			Title: loc.Localize(i18n.Expand(i18n.Phrases{
				"en": "Call %s",
				"fr": "Appeler %s",
				"es": "Llamar a %s",
				"zh": "拨打电话 %s",
			}, phone)),
		}
	}

	external := c.IsExternal(href)
	return Classification{
		Kind:     KindGeneric,
		External: external,
		Title:    c.genericTitle(href, external),
	}
}

// genericTitle humanizes the target path: decoded, without leading slashes,
// dashes and underscores become spaces and a trailing file extension is
// dropped. An empty result (href was just "/") falls back to the raw href.
func (c *Classifier) genericTitle(href string, external bool) string {
	if href == "" {
		return ""
	}

	path := href
	if u, err := url.Parse(href); err == nil {
		if decoded, err := url.PathUnescape(u.Path); err == nil {
			path = decoded
		} else {
			path = u.Path
		}
	}

	human := strings.TrimLeft(path, "/")
	human = strings.NewReplacer("-", " ", "_", " ").Replace(human)
	human = trailingExtRe.ReplaceAllString(human, "")
	human = strings.TrimSpace(human)
	if human == "" {
		human = href
	}

	if external {
		return c.Localizer.Localize(i18n.Expand(i18n.Phrases{
			"en": "Open external link: %s",
			"fr": "Ouvrir le lien externe : %s",
			"es": "Abrir enlace externo: %s",
			"zh": "打开外部链接：%s",
		}, human))
	}
	return c.Localizer.Localize(i18n.Expand(i18n.Phrases{
		"en": "Go to %s",
		"fr": "Aller à %s",
		"es": "Ir a %s",
		"zh": "前往 %s",
	}, human))
}
