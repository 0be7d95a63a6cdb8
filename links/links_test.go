package links

import (
	"strings"
	"testing"

	"webdoc/i18n"
)

func TestFileExtension(t *testing.T) {
	cases := []struct {
		href string
		ext  string
		ok   bool
	}{
		{"https://example.org/docs/report.pdf", "pdf", true},
		{"https://example.org/docs/report.PDF?version=2", "pdf", true},
		{"/media/photo.JPEG#caption", "jpeg", true},
		{"https://example.org/about", "", false},
		{"https://example.org/v1.2/page", "", false},
		{"https://example.org/archive.", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		ext, ok := FileExtension(c.href)
		if ext != c.ext || ok != c.ok {
			t.Errorf("FileExtension(%q) = (%q, %v), want (%q, %v)", c.href, ext, ok, c.ext, c.ok)
		}
	}
}

func TestIsFile(t *testing.T) {
	for _, ext := range fileExtensions {
		href := "https://example.org/assets/item." + strings.ToUpper(ext)
		if !IsFile(href) {
			t.Errorf("IsFile(%q) = false, want true", href)
		}
	}
	for _, href := range []string{
		"https://example.org/assets/item.exe",
		"https://example.org/about",
		"/contact",
		"mailto:info@example.org",
	} {
		if IsFile(href) {
			t.Errorf("IsFile(%q) = true, want false", href)
		}
	}
}

func TestPlatform(t *testing.T) {
	cases := []struct {
		href string
		name string
		ok   bool
	}{
		{"https://twitter.com/someuser", "twitter", true},
		{"HTTPS://WWW.YOUTUBE.COM/watch?v=abc", "youtube", true},
		{"https://x.com/someuser", "x", true},
		{"https://github.com/someorg/somerepo", "github", true},
		{"https://www.instagram.com/someuser", "instagram", true},
		{"https://example.org/twitter.com", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		name, ok := Platform(c.href)
		if name != c.name || ok != c.ok {
			t.Errorf("Platform(%q) = (%q, %v), want (%q, %v)", c.href, name, ok, c.name, c.ok)
		}
	}

	if got := PlatformLabel("linkedin"); got != "LinkedIn" {
		t.Errorf("PlatformLabel(linkedin) = %q", got)
	}
	if got := PlatformLabel("unknown"); got != "unknown" {
		t.Errorf("PlatformLabel(unknown) = %q", got)
	}
}

func TestIsExternal(t *testing.T) {
	c := NewClassifier("https://example.org", i18n.New("en"))

	cases := []struct {
		href string
		want bool
	}{
		{"https://example.org/about", false},
		{"https://EXAMPLE.ORG/about", false},
		{"https://other.example.com/page", true},
		{"/relative/page", false},
		{"page.html", false},
		{"mailto:info@example.org", true},
	}
	for _, tc := range cases {
		if got := c.IsExternal(tc.href); got != tc.want {
			t.Errorf("IsExternal(%q) = %v, want %v", tc.href, got, tc.want)
		}
	}

	// no origin configured - everything absolute is external
	bare := NewClassifier("", i18n.New("en"))
	if !bare.IsExternal("https://example.org/about") {
		t.Error("IsExternal() without origin = false, want true")
	}
	if bare.IsExternal("/relative") {
		t.Error("IsExternal(/relative) without origin = true, want false")
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier("https://example.org", i18n.New("en"))

	cases := []struct {
		name     string
		href     string
		kind     Kind
		external bool
		title    string
	}{
		{"file", "https://example.org/docs/report.pdf", KindFile, false, "Download file"},
		{"external file", "https://cdn.example.com/report.pdf", KindFile, true, "Download file"},
		{"platform", "https://twitter.com/someuser", KindPlatform, true, "View on Twitter"},
		{"email", "mailto:info@example.org", KindEmail, true, "Send an email to info@example.org"},
		{"phone", "tel:+15551234567", KindPhone, false, "Call +15551234567"},
		{"internal page", "/about-our-team", KindGeneric, false, "Go to about our team"},
		{"external page", "https://other.example.com/pricing_new", KindGeneric, true, "Open external link: pricing new"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(tc.href)
			if got.Kind != tc.kind {
				t.Errorf("Kind = %q, want %q", got.Kind, tc.kind)
			}
			if got.External != tc.external {
				t.Errorf("External = %v, want %v", got.External, tc.external)
			}
			if got.Title != tc.title {
				t.Errorf("Title = %q, want %q", got.Title, tc.title)
			}
		})
	}
}

func TestClassify_FileMIME(t *testing.T) {
	c := NewClassifier("https://example.org", i18n.New("en"))

	if got := c.Classify("/docs/report.pdf"); got.MIME != "application/pdf" {
		t.Errorf("MIME for pdf = %q, want application/pdf", got.MIME)
	}
	if got := c.Classify("/media/clip.mp4"); got.MIME != "video/mp4" {
		t.Errorf("MIME for mp4 = %q, want video/mp4", got.MIME)
	}
}

func TestClassify_Localized(t *testing.T) {
	c := NewClassifier("https://example.org", i18n.New("fr"))

	if got := c.Classify("/docs/report.pdf").Title; got != "Télécharger le fichier" {
		t.Errorf("fr file title = %q", got)
	}
	if got := c.Classify("https://www.facebook.com/somepage").Title; got != "Voir sur Facebook" {
		t.Errorf("fr platform title = %q", got)
	}
}

func TestGenericTitle(t *testing.T) {
	c := NewClassifier("https://example.org", i18n.New("en"))

	cases := []struct {
		href  string
		title string
	}{
		{"/our-services/web_design.html", "Go to our services/web design"},
		{"/caf%C3%A9-menu", "Go to café menu"},
		{"/", "Go to /"},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.href).Title; got != tc.title {
			t.Errorf("Classify(%q).Title = %q, want %q", tc.href, got, tc.title)
		}
	}
}
