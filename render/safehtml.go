package render

import (
	"fmt"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sanitizer cleans markup fragments before they enter the page and resolves
// authored topic links ("topic:<target>") into site-relative paths.
type Sanitizer struct {
	policy *bluemonday.Policy

	// BasePath is the site mount point on a custom domain. When empty,
	// topic links resolve through the shared multi-site route.
	BasePath string
	Language string
	SiteID   string
}

// NewSanitizer builds a sanitizer for the given site routing configuration.
func NewSanitizer(basePath, language, siteID string) *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	// strong/em carry highlight and color styling when a run is formatted
	p.AllowAttrs("style").OnElements("span", "strong", "em", "p", "div", "figure", "img", "h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("title", "target", "rel", "download").OnElements("a")
	// rel is authored upstream per link kind, do not force nofollow on
	// internal navigation.
	p.RequireNoFollowOnLinks(false)
	return &Sanitizer{
		policy:   p,
		BasePath: basePath,
		Language: language,
		SiteID:   siteID,
	}
}

// Sanitize resolves topic links and strips everything the policy does not
// allow. Safe to call on untrusted authored markup.
func (s *Sanitizer) Sanitize(fragment string) string {
	rewritten, err := s.rewriteTopicLinks(fragment)
	if err == nil {
		fragment = rewritten
	}
	return s.policy.Sanitize(fragment)
}

// ResolveTopicLink maps a "topic:<target>" reference onto the site's URL
// space.
func (s *Sanitizer) ResolveTopicLink(href string) string {
	target := strings.TrimPrefix(href, "topic:")
	target = strings.TrimPrefix(target, "//")
	if s.BasePath != "" {
		return path.Join(s.BasePath, target)
	}
	return fmt.Sprintf("/websites/%s/%s/%s", s.Language, s.SiteID, target)
}

func (s *Sanitizer) rewriteTopicLinks(fragment string) (string, error) {
	if !strings.Contains(fragment, "topic:") {
		return fragment, nil
	}
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	for _, n := range nodes {
		s.rewriteNode(n)
		if err := html.Render(&out, n); err != nil {
			return "", err
		}
	}
	return out.String(), nil
}

func (s *Sanitizer) rewriteNode(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "a" {
		for i := range n.Attr {
			if n.Attr[i].Key == "href" && strings.HasPrefix(n.Attr[i].Val, "topic:") {
				n.Attr[i].Val = s.ResolveTopicLink(n.Attr[i].Val)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s.rewriteNode(c)
	}
}
