// Package render turns normalized content blocks into an HTML document. The
// page is assembled as an element tree and serialized at the end, so nesting
// and escaping are correct by construction; resolved inline markup enters
// the tree through the sanitizer.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"webdoc/common"
	"webdoc/doc"
	"webdoc/media"
)

// Renderer assembles HTML pages from normalized blocks. Media and Math are
// optional; without them video blocks are skipped and formulas degrade to
// annotated source.
type Renderer struct {
	Media    *media.Resolver
	Math     doc.MathRenderer
	Sanitize *Sanitizer
	// Stylesheet is the href of the page stylesheet link.
	Stylesheet string
	// Posters maps video sources to poster image URLs, usually filled by
	// the thumbnail fetcher.
	Posters map[string]string
	// SDKRefs are player SDK script locations preloaded from the page head.
	SDKRefs []string
	// MapsKey enables static map previews on address cards.
	MapsKey string
	Log     *zap.Logger
}

// NewRenderer wires a renderer with the given collaborators.
func NewRenderer(resolver *media.Resolver, math doc.MathRenderer, san *Sanitizer, stylesheet string, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{Media: resolver, Math: math, Sanitize: san, Stylesheet: stylesheet, Log: log}
}

// Document renders a full standalone page around the given blocks.
func (r *Renderer) Document(title string, blocks []doc.Block) (*etree.Document, error) {
	d := etree.NewDocument()
	d.CreateDirective("DOCTYPE html")

	htmlElem := d.CreateElement("html")
	if r.Sanitize != nil && r.Sanitize.Language != "" {
		htmlElem.CreateAttr("lang", r.Sanitize.Language)
	}

	head := htmlElem.CreateElement("head")

	meta := head.CreateElement("meta")
	meta.CreateAttr("charset", "utf-8")

	viewport := head.CreateElement("meta")
	viewport.CreateAttr("name", "viewport")
	viewport.CreateAttr("content", "width=device-width, initial-scale=1")

	if r.Stylesheet != "" {
		link := head.CreateElement("link")
		link.CreateAttr("rel", "stylesheet")
		link.CreateAttr("type", "text/css")
		link.CreateAttr("href", r.Stylesheet)
	}

	for _, ref := range r.SDKRefs {
		preload := head.CreateElement("link")
		preload.CreateAttr("rel", "preload")
		preload.CreateAttr("as", "script")
		preload.CreateAttr("href", ref)
	}

	titleElem := head.CreateElement("title")
	titleElem.CreateText(title)

	body := htmlElem.CreateElement("body")
	article := body.CreateElement("article")
	article.CreateAttr("class", "document")

	if err := r.AppendBlocks(article, blocks); err != nil {
		return nil, err
	}
	return d, nil
}

// Render serializes the full page for the given blocks.
func (r *Renderer) Render(title string, blocks []doc.Block) (string, error) {
	d, err := r.Document(title, blocks)
	if err != nil {
		return "", err
	}
	d.Indent(2)
	return d.WriteToString()
}

// Fragment renders blocks without the page wrapper, for embedding.
func (r *Renderer) Fragment(blocks []doc.Block) (string, error) {
	d := etree.NewDocument()
	root := d.CreateElement("div")
	root.CreateAttr("class", "document")
	if err := r.AppendBlocks(root, blocks); err != nil {
		return "", err
	}
	return d.WriteToString()
}

// AppendBlocks renders each block as a child of parent. Blocks that resolve
// to nothing are skipped without error.
func (r *Renderer) AppendBlocks(parent *etree.Element, blocks []doc.Block) error {
	for i := range blocks {
		if err := r.appendBlock(parent, &blocks[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) appendBlock(parent *etree.Element, b *doc.Block) error {
	switch b.Kind {
	case doc.BlockParagraph:
		p := parent.CreateElement("p")
		if b.Paragraph.Alignment != "" {
			p.CreateAttr("style", "text-align: "+b.Paragraph.Alignment)
		}
		return r.appendMarkup(p, b.Paragraph.Markup)
	case doc.BlockHeading:
		return r.appendHeading(parent, b.Heading)
	case doc.BlockImage:
		return r.appendImage(parent, b.Image)
	case doc.BlockVideo:
		return r.appendVideo(parent, b.Video)
	case doc.BlockAlert:
		div := parent.CreateElement("div")
		div.CreateAttr("class", "alert alert-"+b.Alert.Level.String())
		div.CreateAttr("role", "alert")
		return r.appendMarkup(div, b.Alert.Markup)
	case doc.BlockDivider:
		appendDivider(parent, b.Divider)
		return nil
	case doc.BlockOrdered, doc.BlockBullet:
		tag := "ol"
		if b.Kind == doc.BlockBullet {
			tag = "ul"
		}
		list := parent.CreateElement(tag)
		for _, item := range b.List.Items {
			li := list.CreateElement("li")
			if err := r.AppendBlocks(li, item); err != nil {
				return err
			}
		}
		return nil
	case doc.BlockQuote:
		quote := parent.CreateElement("blockquote")
		return r.AppendBlocks(quote, b.Quote.Content)
	case doc.BlockCode:
		pre := parent.CreateElement("pre")
		code := pre.CreateElement("code")
		if b.Code.Language != "" {
			code.CreateAttr("class", "language-"+b.Code.Language)
		}
		code.CreateText(b.Code.Content)
		return nil
	case doc.BlockCardGroup:
		return r.appendCards(parent, b.Cards)
	case doc.BlockMath:
		div := parent.CreateElement("div")
		div.CreateAttr("class", "math-display")
		if r.Math != nil {
			return r.appendMarkup(div, r.Math.DisplayMarkup(b.Math.Expr))
		}
		div.CreateText(b.Math.Expr)
		return nil
	case doc.BlockButton:
		div := parent.CreateElement("div")
		class := "button"
		if b.Button.Secondary {
			class += " button-secondary"
		}
		div.CreateAttr("class", class)
		return r.appendMarkup(div, b.Button.Markup)
	case doc.BlockTable:
		return r.appendTable(parent, b.Table)
	case doc.BlockDetails:
		det := parent.CreateElement("details")
		summary := det.CreateElement("summary")
		summary.CreateText(b.Details.Summary)
		return r.AppendBlocks(det, b.Details.Content)
	default:
		r.Log.Debug("Skipping block of unknown kind", zap.String("kind", string(b.Kind)))
		return nil
	}
}

// appendHeading emits the heading with a stable anchor derived from the
// authored block id and the heading text. Collisions keep their shared
// anchor, links resolve to the first occurrence.
func (r *Renderer) appendHeading(parent *etree.Element, h *doc.Heading) error {
	level := h.Level
	if level < 1 || level > 6 {
		level = 2
	}
	elem := parent.CreateElement(fmt.Sprintf("h%d", level))
	if id := headingAnchor(h.ID, h.Markup); id != "" {
		elem.CreateAttr("id", id)
	}
	if h.Alignment != "" {
		elem.CreateAttr("style", "text-align: "+h.Alignment)
	}
	return r.appendMarkup(elem, h.Markup)
}

func headingAnchor(blockID, markup string) string {
	text := slug.Make(StripTags(markup))
	if blockID == "" && text == "" {
		return ""
	}
	return fmt.Sprintf("Section%s-%s", blockID, text)
}

func (r *Renderer) appendImage(parent *etree.Element, img *doc.Image) error {
	figure := parent.CreateElement("figure")
	class := "image"
	if img.Direction != "" {
		class += " image-" + img.Direction
	}
	figure.CreateAttr("class", class)

	container := figure
	if img.TargetHref != "" {
		a := figure.CreateElement("a")
		a.CreateAttr("href", img.TargetHref)
		container = a
	}
	if ar := img.AspectRatio; ar != nil && ar.PaddingBottom != "" {
		wrap := container.CreateElement("div")
		wrap.CreateAttr("class", "image-aspect")
		wrap.CreateAttr("style", "padding-bottom: "+ar.PaddingBottom)
		container = wrap
	}

	elem := container.CreateElement("img")
	elem.CreateAttr("src", img.URL)
	elem.CreateAttr("alt", img.Alt)
	if css := img.Filter.CSS(); css != "" {
		elem.CreateAttr("style", "filter: "+css)
	}

	if img.Caption != "" {
		caption := figure.CreateElement("figcaption")
		caption.CreateText(img.Caption)
	}
	return nil
}

func (r *Renderer) appendVideo(parent *etree.Element, v *doc.Video) error {
	if r.Media == nil {
		r.Log.Debug("Skipping video block, no media resolver", zap.String("src", v.Src))
		return nil
	}
	plan := r.Media.ResolveEmbed(v.Src, media.Options{Background: v.Background, Thumbnail: v.Thumbnail})
	if plan == nil {
		return nil
	}

	figure := parent.CreateElement("figure")
	figure.CreateAttr("class", "video video-"+plan.Provider.String())

	poster := r.Posters[v.Src]

	if !plan.Provider.Embeddable() {
		video := figure.CreateElement("video")
		video.CreateAttr("id", plan.ElementID)
		video.CreateAttr("src", plan.EmbedURL)
		if poster != "" {
			video.CreateAttr("poster", poster)
		}
		if v.Background {
			video.CreateAttr("autoplay", "")
			video.CreateAttr("muted", "")
			video.CreateAttr("loop", "")
			video.CreateAttr("playsinline", "")
		} else {
			video.CreateAttr("controls", "")
		}
	} else {
		if poster != "" && v.Thumbnail {
			img := figure.CreateElement("img")
			img.CreateAttr("class", "video-poster")
			img.CreateAttr("src", poster)
			img.CreateAttr("alt", v.Caption)
		}
		iframe := figure.CreateElement("iframe")
		iframe.CreateAttr("id", plan.ElementID)
		iframe.CreateAttr("src", plan.EmbedURL)
		iframe.CreateAttr("allow", plan.Allow)
		iframe.CreateAttr("allowfullscreen", "")
		iframe.CreateAttr("frameborder", "0")
		if v.Caption != "" {
			iframe.CreateAttr("title", v.Caption)
		}
	}

	if v.Caption != "" {
		caption := figure.CreateElement("figcaption")
		caption.CreateText(v.Caption)
	}
	return nil
}

func appendDivider(parent *etree.Element, d *doc.Divider) {
	if d.Kind == common.DividerKindHr {
		parent.CreateElement("hr")
		return
	}
	div := parent.CreateElement("div")
	div.CreateAttr("class", "divider-dots")
	div.CreateAttr("role", "separator")
	for range 3 {
		dot := div.CreateElement("span")
		dot.CreateText("·")
	}
}

func (r *Renderer) appendTable(parent *etree.Element, t *doc.Table) error {
	table := parent.CreateElement("table")
	tbody := table.CreateElement("tbody")
	for i := range t.Rows {
		tr := tbody.CreateElement("tr")
		for j := range t.Rows[i].Cells {
			cell := &t.Rows[i].Cells[j]
			tag := "td"
			if cell.Header {
				tag = "th"
			}
			td := tr.CreateElement(tag)
			if cell.ColSpan > 1 {
				td.CreateAttr("colspan", fmt.Sprintf("%d", cell.ColSpan))
			}
			if cell.RowSpan > 1 {
				td.CreateAttr("rowspan", fmt.Sprintf("%d", cell.RowSpan))
			}
			if err := r.AppendBlocks(td, cell.Content); err != nil {
				return err
			}
		}
	}
	return nil
}

var nonPhoneRe = regexp.MustCompile(`[^+\d]`)

func (r *Renderer) appendCards(parent *etree.Element, group *doc.CardGroup) error {
	div := parent.CreateElement("div")
	div.CreateAttr("class", "card-group")
	for i := range group.Cards {
		if err := r.appendCard(div, &group.Cards[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) appendCard(parent *etree.Element, c *doc.Card) error {
	if c.Hidden {
		return nil
	}
	div := parent.CreateElement("div")
	class := "card card-" + c.Kind.String()
	if c.DisplayMode != "" {
		class += " card-" + c.DisplayMode
	}
	div.CreateAttr("class", class)

	if c.Title != "" {
		title := div.CreateElement("h3")
		title.CreateAttr("class", "card-title")
		if c.Href != "" {
			a := title.CreateElement("a")
			a.CreateAttr("href", c.Href)
			a.CreateText(c.Title)
		} else {
			title.CreateText(c.Title)
		}
	}
	if c.Caption != "" {
		caption := div.CreateElement("p")
		caption.CreateAttr("class", "card-caption")
		caption.CreateText(c.Caption)
	}
	if c.Date != "" {
		appendCardRow(div, "card-date", c.Date)
	}
	if c.Datetime != "" {
		appendCardRow(div, "card-datetime", c.Datetime)
	}
	if c.Contact != "" {
		appendCardContact(div, c.Contact)
	}
	if c.Address != nil {
		r.appendCardAddress(div, c.Address)
	}
	if c.Kind == common.CardKindDocument {
		appendCardDocument(div, c.Document)
	}
	return nil
}

func appendCardRow(parent *etree.Element, class, text string) {
	p := parent.CreateElement("p")
	p.CreateAttr("class", class)
	p.CreateText(text)
}

// appendCardContact renders an authored "phone|extension" value as a
// clickable telephone link. The dialable part keeps only digits and a
// leading plus; the extension is display-only.
func appendCardContact(parent *etree.Element, contact string) {
	phone, ext, _ := strings.Cut(contact, "|")
	phone = strings.TrimSpace(phone)
	ext = strings.TrimSpace(ext)

	p := parent.CreateElement("p")
	p.CreateAttr("class", "card-contact")
	a := p.CreateElement("a")
	a.CreateAttr("href", "tel:"+nonPhoneRe.ReplaceAllString(phone, ""))
	a.CreateText(phone)
	if ext != "" {
		p.CreateText(" ext. " + ext)
	}
}

func (r *Renderer) appendCardAddress(parent *etree.Element, addr *doc.Address) {
	loc := addr.Geometry.Location

	if r.MapsKey != "" {
		img := parent.CreateElement("img")
		img.CreateAttr("class", "card-map")
		img.CreateAttr("src", fmt.Sprintf("https://maps.googleapis.com/maps/api/staticmap?center=%g,%g&zoom=15&size=400x200&markers=%g,%g&key=%s",
			loc.Lat, loc.Lng, loc.Lat, loc.Lng, r.MapsKey))
		img.CreateAttr("alt", addr.FormattedAddress)
	}

	p := parent.CreateElement("p")
	p.CreateAttr("class", "card-address")
	a := p.CreateElement("a")
	a.CreateAttr("href", fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%g,%g", loc.Lat, loc.Lng))
	a.CreateAttr("target", "_blank")
	a.CreateAttr("rel", "noopener noreferrer")
	a.CreateText(addr.FormattedAddress)
}

func appendCardDocument(parent *etree.Element, d *doc.DocumentCard) {
	if d == nil {
		return
	}
	p := parent.CreateElement("p")
	p.CreateAttr("class", "card-document")
	p.CreateAttr("id", d.ID)

	a := p.CreateElement("a")
	href := d.Download
	if href == "" {
		href = d.URL
	}
	a.CreateAttr("href", href)
	a.CreateAttr("download", "")
	a.CreateText(d.Name)

	meta := p.CreateElement("span")
	meta.CreateAttr("class", "card-document-meta")
	label := d.FileTypeLabel()
	if size := d.SizeLabel(); size != "" {
		label += " · " + size
	}
	meta.CreateText(label)
}

// appendMarkup inserts a resolved inline markup fragment into the tree. The
// fragment passes through the sanitizer first and is then reparsed so it
// serializes as real elements rather than escaped text.
func (r *Renderer) appendMarkup(parent *etree.Element, markup string) error {
	if markup == "" {
		return nil
	}
	if r.Sanitize != nil {
		markup = r.Sanitize.Sanitize(markup)
	}
	frag := etree.NewDocument()
	frag.ReadSettings.Permissive = true
	if err := frag.ReadFromString("<root>" + markup + "</root>"); err != nil {
		return fmt.Errorf("unable to parse markup fragment: %w", err)
	}
	root := frag.Root()
	if root == nil {
		return nil
	}
	// AddChild detaches tokens from their old parent, so iterate a copy.
	children := append([]etree.Token(nil), root.Child...)
	for _, child := range children {
		parent.AddChild(child)
	}
	return nil
}
