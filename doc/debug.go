package doc

import (
	"webdoc/utils/debug"
)

// DumpBlocks returns a readable tree of normalized blocks. It exists solely
// for manual inspection during debugging.
func DumpBlocks(blocks []Block) string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Blocks: %d", len(blocks))
	dumpBlocks(tw, 1, blocks)
	return tw.String()
}

func dumpBlocks(tw *debug.TreeWriter, depth int, blocks []Block) {
	for i := range blocks {
		dumpBlock(tw, depth, &blocks[i])
	}
}

func dumpBlock(tw *debug.TreeWriter, depth int, b *Block) {
	switch b.Kind {
	case BlockParagraph:
		tw.TextBlock(depth, "Paragraph", b.Paragraph.Markup)
	case BlockHeading:
		tw.Line(depth, "Heading level[%d] id[%q]", b.Heading.Level, b.Heading.ID)
		tw.TextBlock(depth+1, "Markup", b.Heading.Markup)
	case BlockImage:
		tw.Line(depth, "Image url[%q] caption[%q] filter[%q]", b.Image.URL, b.Image.Caption, b.Image.Filter.CSS())
	case BlockVideo:
		tw.Line(depth, "Video src[%q] thumbnail[%t] background[%t]", b.Video.Src, b.Video.Thumbnail, b.Video.Background)
	case BlockAlert:
		tw.Line(depth, "Alert level[%s]", b.Alert.Level)
		tw.TextBlock(depth+1, "Markup", b.Alert.Markup)
	case BlockDivider:
		tw.Line(depth, "Divider kind[%s]", b.Divider.Kind)
	case BlockOrdered, BlockBullet:
		tw.Line(depth, "List kind[%s] items[%d]", b.Kind, len(b.List.Items))
		for i, item := range b.List.Items {
			tw.Line(depth+1, "Item[%d]", i)
			dumpBlocks(tw, depth+2, item)
		}
	case BlockQuote:
		tw.Line(depth, "Blockquote")
		dumpBlocks(tw, depth+1, b.Quote.Content)
	case BlockCode:
		tw.Line(depth, "Code language[%q]", b.Code.Language)
		tw.TextBlock(depth+1, "Content", b.Code.Content)
	case BlockCardGroup:
		tw.Line(depth, "Cards: %d", len(b.Cards.Cards))
		for i := range b.Cards.Cards {
			dumpCard(tw, depth+1, &b.Cards.Cards[i])
		}
	case BlockMath:
		tw.TextBlock(depth, "Math", b.Math.Expr)
	case BlockButton:
		tw.Line(depth, "Button secondary[%t]", b.Button.Secondary)
		tw.TextBlock(depth+1, "Markup", b.Button.Markup)
	case BlockTable:
		tw.Line(depth, "Table rows[%d]", len(b.Table.Rows))
		for i, row := range b.Table.Rows {
			tw.Line(depth+1, "Row[%d] cells[%d]", i, len(row.Cells))
			for j, cell := range row.Cells {
				tw.Line(depth+2, "Cell[%d] colspan[%d] rowspan[%d] header[%t]", j, cell.ColSpan, cell.RowSpan, cell.Header)
				dumpBlocks(tw, depth+3, cell.Content)
			}
		}
	case BlockDetails:
		tw.Line(depth, "Details summary[%q]", b.Details.Summary)
		dumpBlocks(tw, depth+1, b.Details.Content)
	default:
		tw.Line(depth, "Unknown block kind[%s]", b.Kind)
	}
}

func dumpCard(tw *debug.TreeWriter, depth int, c *Card) {
	tw.Line(depth, "Card kind[%s] title[%q] hidden[%t]", c.Kind, c.Title, c.Hidden)
	if c.Address != nil {
		tw.Line(depth+1, "Address[%q] at (%g, %g)", c.Address.FormattedAddress, c.Address.Geometry.Location.Lat, c.Address.Geometry.Location.Lng)
	}
	if c.Document != nil {
		tw.Line(depth+1, "Document[%q] url[%q] mime[%q] size[%d]", c.Document.Name, c.Document.URL, c.Document.MIME, c.Document.Size)
	}
	if c.Date != "" {
		tw.Line(depth+1, "Date[%q]", c.Date)
	}
	if c.Datetime != "" {
		tw.Line(depth+1, "Datetime[%q]", c.Datetime)
	}
}
