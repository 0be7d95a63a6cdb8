package doc

import (
	"fmt"
	"html"
	"strings"

	"webdoc/links"
)

// ResolveRuns flattens a sequence of text runs into an HTML markup fragment.
// Adjacent runs linked to the same target share one anchor element; the
// anchor closes as soon as a run with a different target (or no link at all)
// is reached. Inline formulas are resolved through the math collaborator and
// embedded verbatim.
func (n *Normalizer) ResolveRuns(runs []Node) string {
	var buf strings.Builder
	openHref := ""
	closeAnchor := func() {
		if openHref != "" {
			buf.WriteString("</a>")
			openHref = ""
		}
	}
	for i := range runs {
		run := &runs[i]
		if run.Type == NodeMathInline {
			closeAnchor()
			buf.WriteString(n.inlineMath(run.AsPlainText()))
			continue
		}
		if run.Text == "" {
			continue
		}
		if href := run.linkHref(); href != openHref {
			closeAnchor()
			if href != "" {
				n.openAnchor(&buf, href)
				openHref = href
			}
		}
		appendStyledText(&buf, run)
	}
	closeAnchor()
	return buf.String()
}

// openAnchor writes the opening tag for a link run, decorated according to
// its classification: files become downloads, external targets open in a new
// tab, and every link gets a localized descriptive title.
func (n *Normalizer) openAnchor(buf *strings.Builder, href string) {
	var cl links.Classification
	if n.Links != nil {
		cl = n.Links.Classify(href)
	}
	buf.WriteString(`<a href="`)
	buf.WriteString(html.EscapeString(href))
	buf.WriteByte('"')
	if cl.Title != "" {
		buf.WriteString(` title="`)
		buf.WriteString(html.EscapeString(cl.Title))
		buf.WriteByte('"')
	}
	if cl.Kind == links.KindFile {
		buf.WriteString(` download=""`)
	}
	if cl.External {
		buf.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	buf.WriteByte('>')
}

// appendStyledText writes a single run wrapped in its formatting tags. Bold
// always nests outside italic so that combined runs produce stable markup,
// and highlight/color styling rides on the innermost formatting tag - a span
// is emitted only for runs with no formatting of their own.
func appendStyledText(buf *strings.Builder, run *Node) {
	styleAttr := ""
	if style := runStyle(run); style != "" {
		styleAttr = ` style="` + html.EscapeString(style) + `"`
	}
	bold, italic := run.mark(MarkBold) != nil, run.mark(MarkItalic) != nil
	switch {
	case bold && italic:
		buf.WriteString("<strong><em" + styleAttr + ">")
	case bold:
		buf.WriteString("<strong" + styleAttr + ">")
	case italic:
		buf.WriteString("<em" + styleAttr + ">")
	case styleAttr != "":
		buf.WriteString("<span" + styleAttr + ">")
	}
	buf.WriteString(html.EscapeString(run.Text))
	switch {
	case bold && italic:
		buf.WriteString("</em></strong>")
	case bold:
		buf.WriteString("</strong>")
	case italic:
		buf.WriteString("</em>")
	case styleAttr != "":
		buf.WriteString("</span>")
	}
}

// runStyle derives the inline CSS for highlight and color marks. Colors go
// through theme variables so the stylesheet stays in control of the palette.
func runStyle(run *Node) string {
	var parts []string
	if run.mark(MarkHighlight) != nil {
		parts = append(parts, "background-color: var(--highlight)")
	}
	if m := run.mark(MarkTextStyle); m != nil && m.Attrs.Color != "" {
		parts = append(parts, fmt.Sprintf("color: var(--%s)", m.Attrs.Color))
	}
	return strings.Join(parts, "; ")
}

func (n *Normalizer) inlineMath(expr string) string {
	if expr == "" {
		return ""
	}
	if n.Math != nil {
		return n.Math.InlineMarkup(expr)
	}
	return `<span class="math-inline">` + html.EscapeString(expr) + `</span>`
}
