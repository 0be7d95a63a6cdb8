package render

import (
	"strings"
	"testing"
)

func TestResolveTopicLink(t *testing.T) {
	cases := []struct {
		name     string
		basePath string
		href     string
		want     string
	}{
		{"custom domain", "/docs", "topic:getting-started", "/docs/getting-started"},
		{"custom domain double slash", "/docs", "topic://getting-started", "/docs/getting-started"},
		{"shared route", "", "topic:getting-started", "/websites/en/site-1/getting-started"},
		{"shared route nested", "", "topic:guides/install", "/websites/en/site-1/guides/install"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSanitizer(c.basePath, "en", "site-1")
			if got := s.ResolveTopicLink(c.href); got != c.want {
				t.Errorf("ResolveTopicLink(%q) = %q, want %q", c.href, got, c.want)
			}
		})
	}
}

func TestSanitize_RewritesTopicLinks(t *testing.T) {
	s := NewSanitizer("", "fr", "site-9")

	out := s.Sanitize(`See <a href="topic:pricing">pricing</a> for details`)
	if !strings.Contains(out, `href="/websites/fr/site-9/pricing"`) {
		t.Errorf("topic link not rewritten: %q", out)
	}
	if strings.Contains(out, "topic:") {
		t.Errorf("topic scheme leaked through: %q", out)
	}
}

func TestSanitize_LeavesOrdinaryLinksAlone(t *testing.T) {
	s := NewSanitizer("/docs", "en", "site-1")

	in := `<a href="https://example.org/page" target="_blank" rel="noopener noreferrer">out</a>`
	out := s.Sanitize(in)
	for _, want := range []string{
		`href="https://example.org/page"`,
		`target="_blank"`,
		`rel="noopener noreferrer"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Sanitize() lost %q: %q", want, out)
		}
	}
	if strings.Contains(out, "nofollow") {
		t.Errorf("Sanitize() injected nofollow: %q", out)
	}
}

func TestSanitize_StripsDangerousMarkup(t *testing.T) {
	s := NewSanitizer("", "en", "site-1")

	cases := []struct {
		name string
		in   string
		gone string
	}{
		{"script element", `hi<script>alert(1)</script>`, "<script"},
		{"event handler", `<span onclick="alert(1)">hi</span>`, "onclick"},
		{"javascript href", `<a href="javascript:alert(1)">hi</a>`, "javascript:"},
		{"iframe", `hi<iframe src="https://evil.example.com"></iframe>`, "<iframe"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := s.Sanitize(c.in)
			if strings.Contains(out, c.gone) {
				t.Errorf("Sanitize(%q) kept %q: %q", c.in, c.gone, out)
			}
			if !strings.Contains(out, "hi") {
				t.Errorf("Sanitize(%q) lost surrounding text: %q", c.in, out)
			}
		})
	}
}

func TestSanitize_KeepsInlineStyling(t *testing.T) {
	s := NewSanitizer("", "en", "site-1")

	in := `<span style="background-color: var(--highlight)">marked</span> and ` +
		`<span style="color: var(--red)">red</span> and ` +
		`<strong style="background-color: var(--highlight)">bold</strong>` +
		`<em style="color: var(--red)">slanted</em>`
	out := s.Sanitize(in)
	for _, want := range []string{
		"background-color: var(--highlight)",
		"color: var(--red)",
		`<strong style="background-color: var(--highlight)">bold</strong>`,
		`<em style="color: var(--red)">slanted</em>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Sanitize() lost %q: %q", want, out)
		}
	}
}

func TestSanitize_KeepsDownloadAttr(t *testing.T) {
	s := NewSanitizer("", "en", "site-1")

	out := s.Sanitize(`<a href="/files/report.pdf" download="" title="Download file">report</a>`)
	for _, want := range []string{`download=""`, `title="Download file"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Sanitize() lost %q: %q", want, out)
		}
	}
}

func TestStripTags(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<strong>Hello World</strong>", "Hello World"},
		{`<a href="/x">linked <em>text</em></a>`, "linked text"},
		{"plain", "plain"},
		{"a &amp; b", "a & b"},
		{"", ""},
	}
	for _, c := range cases {
		if got := StripTags(c.in); got != c.want {
			t.Errorf("StripTags(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStripTags_IframeSources(t *testing.T) {
	// iframe content models vary between parsers; the lexer must not leak
	// attribute values as text.
	got := StripTags(`before <iframe src="https://example.org/embed"></iframe> after`)
	if strings.Contains(got, "example.org") {
		t.Errorf("StripTags() leaked attribute value: %q", got)
	}
	if !strings.Contains(got, "before") || !strings.Contains(got, "after") {
		t.Errorf("StripTags() lost surrounding text: %q", got)
	}
}
