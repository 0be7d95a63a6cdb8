package doc

import (
	"fmt"
	"strings"

	"webdoc/common"
)

// BlockKind tags the active payload of a Block.
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockHeading   BlockKind = "heading"
	BlockImage     BlockKind = "image"
	BlockVideo     BlockKind = "video"
	BlockAlert     BlockKind = "alert"
	BlockDivider   BlockKind = "divider"
	BlockOrdered   BlockKind = "ordered-list"
	BlockBullet    BlockKind = "bullet-list"
	BlockQuote     BlockKind = "blockquote"
	BlockCode      BlockKind = "code"
	BlockCardGroup BlockKind = "card-group"
	BlockMath      BlockKind = "math"
	BlockButton    BlockKind = "button"
	BlockTable     BlockKind = "table"
	BlockDetails   BlockKind = "details"
)

// Block is a normalized, render-ready content block. Kind selects which of
// the payload pointers is set; exactly one is non-nil.
type Block struct {
	Kind BlockKind

	Paragraph *Paragraph
	Heading   *Heading
	Image     *Image
	Video     *Video
	Alert     *Alert
	Divider   *Divider
	List      *List
	Quote     *Quote
	Code      *Code
	Cards     *CardGroup
	Math      *Math
	Button    *Button
	Table     *Table
	Details   *Details
}

// Paragraph holds resolved inline markup for a single paragraph.
type Paragraph struct {
	Markup    string
	Alignment string
}

// Heading holds resolved inline markup plus the authored level and id.
type Heading struct {
	Markup    string
	Level     int
	ID        string
	Alignment string
}

// AspectRatio describes the authored image proportions. PaddingBottom is the
// precomputed percentage used by the responsive wrapper.
type AspectRatio struct {
	Width         float64
	Height        float64
	Ratio         float64
	PaddingBottom string
}

// ImageFilter carries the authored CSS filter components.
type ImageFilter struct {
	Blur       string
	Brightness string
	Contrast   string
	Grayscale  string
}

// CSS renders the filter as a CSS filter property value, "" when unset.
func (f *ImageFilter) CSS() string {
	if f == nil {
		return ""
	}
	var parts []string
	if f.Blur != "" {
		parts = append(parts, "blur("+f.Blur+")")
	}
	if f.Brightness != "" {
		parts = append(parts, "brightness("+f.Brightness+")")
	}
	if f.Contrast != "" {
		parts = append(parts, "contrast("+f.Contrast+")")
	}
	if f.Grayscale != "" {
		parts = append(parts, "grayscale("+f.Grayscale+")")
	}
	return strings.Join(parts, " ")
}

// Image is an image block with optional caption, link target and filter.
type Image struct {
	URL         string
	Caption     string
	Alt         string
	Direction   string
	TargetHref  string
	AspectRatio *AspectRatio
	Filter      *ImageFilter
}

// Video is an embedded video block resolved later by the media package.
type Video struct {
	Src        string
	Caption    string
	Thumbnail  bool
	Background bool
}

// Alert is a callout with a severity level.
type Alert struct {
	Markup string
	Level  common.AlertLevel
}

// Divider is a thematic break.
type Divider struct {
	Kind common.DividerKind
}

// List holds the normalized blocks of each list item.
type List struct {
	Items [][]Block
}

// Quote holds the normalized blocks of a blockquote.
type Quote struct {
	Content []Block
}

// Code is a fenced or attribute-annotated code block.
type Code struct {
	Language string
	Content  string
}

// CardGroup is a row of structured cards.
type CardGroup struct {
	Cards []Card
}

// Card is a single structured card. Kind selects which optional payload is
// meaningful; Address and Document may be nil even for their own kinds when
// resolution failed, in which case the renderer degrades gracefully.
type Card struct {
	Kind        common.CardKind
	Title       string
	Caption     string
	Href        string
	Contact     string
	Date        string
	Datetime    string
	DisplayMode string
	Hidden      bool
	Address     *Address
	Document    *DocumentCard
}

// Address is a decoded location payload.
type Address struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// DocumentCard is a resolved downloadable document reference.
type DocumentCard struct {
	ID       string
	Name     string
	URL      string
	Download string
	MIME     string
	Size     int64
}

// FileTypeLabel derives a short uppercase type label from the document name,
// "FILE" when no extension is present.
func (d *DocumentCard) FileTypeLabel() string {
	if i := strings.LastIndexByte(d.Name, '.'); i >= 0 && i+1 < len(d.Name) {
		return strings.ToUpper(d.Name[i+1:])
	}
	return "FILE"
}

// SizeLabel formats the document size for display, "" when unknown.
func (d *DocumentCard) SizeLabel() string {
	if d.Size <= 0 {
		return ""
	}
	const unit = 1024
	if d.Size < unit {
		return fmt.Sprintf("%d B", d.Size)
	}
	div, exp := int64(unit), 0
	for n := d.Size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(d.Size)/float64(div), "KMGTPE"[exp])
}

// Math is a display-mode formula kept as source until render time.
type Math struct {
	Expr string
}

// Button is a call-to-action link styled as a button.
type Button struct {
	Markup    string
	Secondary bool
}

// Table is a normalized table, rows of cells of nested blocks.
type Table struct {
	Rows []TableRow
}

// TableRow is a single table row.
type TableRow struct {
	Cells []TableCell
}

// TableCell holds nested content plus span and header information.
type TableCell struct {
	Content []Block
	ColSpan int
	RowSpan int
	Header  bool
}

// Details is a collapsible section with a summary line.
type Details struct {
	Summary string
	Content []Block
}
