package doc

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"webdoc/assets"
	"webdoc/common"
	"webdoc/i18n"
	"webdoc/links"
)

// MathRenderer typesets formula source into embeddable HTML markup.
type MathRenderer interface {
	InlineMarkup(expr string) string
	DisplayMarkup(expr string) string
}

// Normalizer converts an authored content tree into flat render-ready
// blocks. All collaborators are optional except Log - a nil classifier,
// asset store or math renderer simply degrades the corresponding feature.
type Normalizer struct {
	Links     *links.Classifier
	Assets    assets.Store
	Localizer *i18n.Localizer
	Math      MathRenderer
	Log       *zap.Logger
}

// NewNormalizer wires a normalizer with the given collaborators.
func NewNormalizer(cl *links.Classifier, store assets.Store, loc *i18n.Localizer, math MathRenderer, log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{Links: cl, Assets: store, Localizer: loc, Math: math, Log: log}
}

// Normalize flattens the children of the given node into blocks. Nodes of
// unknown type produce no output and are never an error.
func (n *Normalizer) Normalize(root *Node) []Block {
	if root == nil || len(root.Content) == 0 {
		return nil
	}
	blocks := make([]Block, 0, len(root.Content))
	for i := range root.Content {
		if b, ok := n.normalizeNode(&root.Content[i], i); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func (n *Normalizer) normalizeNode(node *Node, index int) (Block, bool) {
	switch node.Type {
	case NodeParagraph:
		if len(node.Content) == 0 {
			return Block{}, false
		}
		return Block{Kind: BlockParagraph, Paragraph: &Paragraph{
			Markup:    n.ResolveRuns(node.Content),
			Alignment: node.Attrs.String("textAlign"),
		}}, true
	case NodeHeading:
		return Block{Kind: BlockHeading, Heading: &Heading{
			Markup:    n.ResolveRuns(node.Content),
			Level:     node.Attrs.Int("level", 2),
			ID:        node.Attrs.String("id"),
			Alignment: node.Attrs.String("textAlign"),
		}}, true
	case NodeImage:
		return n.normalizeImage(node)
	case NodeVideo:
		return n.normalizeVideo(node)
	case NodeWarning:
		level, err := common.ParseAlertLevel(node.Attrs.String("type"))
		if err != nil {
			level = common.AlertLevelInfo
		}
		return Block{Kind: BlockAlert, Alert: &Alert{
			Markup: n.ResolveRuns(node.Content),
			Level:  level,
		}}, true
	case NodeDivider:
		kind, err := common.ParseDividerKind(node.Attrs.String("type"))
		if err != nil {
			kind = common.DividerKindDots
		}
		return Block{Kind: BlockDivider, Divider: &Divider{Kind: kind}}, true
	case NodeOrderedList, NodeBulletList:
		kind := BlockOrdered
		if node.Type == NodeBulletList {
			kind = BlockBullet
		}
		items := make([][]Block, 0, len(node.Content))
		for i := range node.Content {
			items = append(items, n.Normalize(&node.Content[i]))
		}
		return Block{Kind: kind, List: &List{Items: items}}, true
	case NodeBlockquote:
		return Block{Kind: BlockQuote, Quote: &Quote{Content: n.Normalize(node)}}, true
	case NodeCodeBlock:
		lang, content := parseFencedCode(node.rawText(), node.Attrs)
		return Block{Kind: BlockCode, Code: &Code{Language: lang, Content: content}}, true
	case NodeCardGroup:
		return n.normalizeCards(node)
	case NodeMathDisplay:
		expr := node.AsPlainText()
		if expr == "" {
			return Block{}, false
		}
		return Block{Kind: BlockMath, Math: &Math{Expr: expr}}, true
	case NodeButton:
		return Block{Kind: BlockButton, Button: &Button{
			Markup:    n.ResolveRuns(node.Content),
			Secondary: node.Attrs.String("style") == "secondary",
		}}, true
	case NodeTable:
		return n.normalizeTable(node)
	case NodeDetails:
		return n.normalizeDetails(node)
	default:
		n.Log.Debug("Dropping node of unknown type", zap.String("type", string(node.Type)))
		return Block{}, false
	}
}

func (n *Normalizer) normalizeImage(node *Node) (Block, bool) {
	attrs := node.Attrs
	img := &Image{
		URL:        attrs.String("url"),
		Caption:    attrs.String("caption"),
		Alt:        attrs.String("alt"),
		Direction:  attrs.String("direction"),
		TargetHref: attrs.String("targetId"),
	}
	if img.URL == "" {
		return Block{}, false
	}
	if img.Alt == "" {
		img.Alt = img.Caption
	}
	if ar := attrs.Sub("aspect_ratio"); ar != nil {
		img.AspectRatio = &AspectRatio{
			Width:         ar.Float("width", 0),
			Height:        ar.Float("height", 0),
			Ratio:         ar.Float("ratio", 0),
			PaddingBottom: ar.String("pb"),
		}
	}
	if f := attrs.Sub("filter"); f != nil {
		img.Filter = &ImageFilter{
			Blur:       f.String("blur"),
			Brightness: f.String("brightness"),
			Contrast:   f.String("contrast"),
			Grayscale:  f.String("grayscale"),
		}
	}
	return Block{Kind: BlockImage, Image: img}, true
}

func (n *Normalizer) normalizeVideo(node *Node) (Block, bool) {
	src := node.Src
	if src == "" {
		src = node.Attrs.String("src")
	}
	if src == "" {
		return Block{}, false
	}
	return Block{Kind: BlockVideo, Video: &Video{
		Src:        src,
		Caption:    node.Attrs.String("caption"),
		Thumbnail:  node.Attrs.Bool("thumbnail"),
		Background: node.Attrs.Bool("background"),
	}}, true
}

func (n *Normalizer) normalizeTable(node *Node) (Block, bool) {
	tbl := &Table{}
	for i := range node.Content {
		row := &node.Content[i]
		if row.Type != NodeTableRow {
			continue
		}
		tr := TableRow{}
		for j := range row.Content {
			cell := &row.Content[j]
			if cell.Type != NodeTableCell {
				continue
			}
			tr.Cells = append(tr.Cells, TableCell{
				Content: n.Normalize(cell),
				ColSpan: cell.Attrs.Int("colspan", 1),
				RowSpan: cell.Attrs.Int("rowspan", 1),
				Header:  cell.Attrs.Bool("header"),
			})
		}
		tbl.Rows = append(tbl.Rows, tr)
	}
	if len(tbl.Rows) == 0 {
		return Block{}, false
	}
	return Block{Kind: BlockTable, Table: tbl}, true
}

func (n *Normalizer) normalizeDetails(node *Node) (Block, bool) {
	det := &Details{}
	for i := range node.Content {
		child := &node.Content[i]
		switch child.Type {
		case NodeDetailsSummary:
			det.Summary = child.AsPlainText()
		case NodeDetailsContent:
			det.Content = append(det.Content, n.Normalize(child)...)
		}
	}
	if det.Summary == "" && len(det.Content) == 0 {
		return Block{}, false
	}
	return Block{Kind: BlockDetails, Details: det}, true
}

func (n *Normalizer) normalizeCards(node *Node) (Block, bool) {
	group := &CardGroup{}
	for i := range node.Content {
		if card, ok := n.normalizeCard(&node.Content[i], i); ok {
			group.Cards = append(group.Cards, card)
		}
	}
	if len(group.Cards) == 0 {
		return Block{}, false
	}
	return Block{Kind: BlockCardGroup, Cards: group}, true
}

func (n *Normalizer) normalizeCard(node *Node, index int) (Card, bool) {
	attrs := node.Attrs
	kind, err := common.ParseCardKind(attrs.String("type"))
	if err != nil {
		n.Log.Debug("Dropping card of unknown kind", zap.String("type", attrs.String("type")))
		return Card{}, false
	}
	card := Card{
		Kind:        kind,
		Title:       attrs.String("title"),
		Caption:     attrs.String("caption"),
		Href:        attrs.String("href"),
		Contact:     attrs.String("contact"),
		DisplayMode: attrs.String("displayMode"),
		Hidden:      attrs.Bool("hidden"),
	}
	if kind == common.CardKindDocument {
		card.Document = n.resolveDocumentCard(attrs, index)
		return card, true
	}
	if raw := attrs.String("address"); raw != "" {
		var addr Address
		if err := json.Unmarshal([]byte(raw), &addr); err != nil {
			// Malformed locations are dropped quietly, the card still renders.
			n.Log.Debug("Unable to decode card address", zap.Error(err))
		} else {
			card.Address = &addr
		}
	}
	if v := attrs.String("date"); v != "" {
		card.Date = n.formatCardDate(v)
	}
	if v := attrs.String("datetime"); v != "" {
		card.Datetime = n.formatCardDate(v)
	}
	return card, true
}

// resolveDocumentCard looks the referenced document up in the asset store.
// Without a resolvable URL there is nothing to offer the reader, so the
// payload collapses to nil and the renderer skips the card body.
func (n *Normalizer) resolveDocumentCard(attrs Attrs, index int) *DocumentCard {
	docAttrs := attrs.Sub("document")
	if docAttrs == nil {
		return nil
	}
	identifier := docAttrs.String("identifier")
	if identifier == "" {
		return nil
	}
	card := &DocumentCard{
		ID:   fmt.Sprintf("document_%d", index),
		Name: attrs.String("title"),
		URL:  identifier,
	}
	if card.Name == "" {
		card.Name = docAttrs.String("name")
	}
	if n.Assets != nil {
		if info, ok := n.Assets.GetAssetInfo(identifier); ok {
			if info.URL != "" {
				card.URL = info.URL
			}
			card.Download = info.Download
			card.MIME = info.MIME
			card.Size = info.Size
			if card.Name == "" {
				card.Name = info.Name
			}
		}
	}
	if card.Name == "" {
		if i := strings.IndexByte(identifier, '/'); i >= 0 && i+1 < len(identifier) {
			card.Name = identifier[i+1:]
		} else {
			card.Name = identifier
		}
	}
	if card.URL == "" {
		return nil
	}
	return card
}

// parseFencedCode splits a fenced code body into language and content. The
// language sits between the opening fence and the first newline; inputs
// without a fence fall back to the authored language attribute.
func parseFencedCode(input string, attrs Attrs) (lang, content string) {
	if after, ok := strings.CutPrefix(input, "```"); ok {
		if i := strings.IndexByte(after, '\n'); i >= 0 {
			return strings.TrimSpace(after[:i]), after[i+1:]
		}
	}
	return attrs.String("language"), input
}
