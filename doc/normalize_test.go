package doc

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"webdoc/assets"
	"webdoc/common"
	"webdoc/i18n"
	"webdoc/links"
)

func TestNormalize_Paragraph(t *testing.T) {
	n := testNormalizer(t)

	root := &Node{Type: NodeDoc, Content: []Node{
		{Type: NodeParagraph, Content: []Node{textRun("Hello", Mark{Type: MarkBold})}},
	}}

	blocks := n.Normalize(root)
	if len(blocks) != 1 {
		t.Fatalf("Normalize() produced %d blocks, want 1", len(blocks))
	}
	if blocks[0].Kind != BlockParagraph {
		t.Fatalf("Normalize() kind = %s, want %s", blocks[0].Kind, BlockParagraph)
	}
	if got, want := blocks[0].Paragraph.Markup, "<strong>Hello</strong>"; got != want {
		t.Errorf("Paragraph markup = %q, want %q", got, want)
	}
}

func TestNormalize_EmptyParagraphDropped(t *testing.T) {
	n := testNormalizer(t)

	blocks := n.Normalize(&Node{Type: NodeDoc, Content: []Node{{Type: NodeParagraph}}})
	if len(blocks) != 0 {
		t.Errorf("Normalize() produced %d blocks for empty paragraph, want 0", len(blocks))
	}
}

func TestNormalize_UnknownTypesDropped(t *testing.T) {
	n := testNormalizer(t)

	root := &Node{Type: NodeDoc, Content: []Node{
		{Type: "mysteryWidget", Attrs: Attrs{"payload": map[string]any{"deeply": "nested"}}},
		{Type: NodeParagraph, Content: []Node{textRun("still here")}},
		{Type: "anotherOne", Content: []Node{{Type: "nested", Text: "x"}}},
	}}

	blocks := n.Normalize(root)
	if len(blocks) != 1 {
		t.Fatalf("Normalize() produced %d blocks, want 1 (unknowns dropped)", len(blocks))
	}
	if blocks[0].Kind != BlockParagraph {
		t.Errorf("Surviving block kind = %s, want paragraph", blocks[0].Kind)
	}
}

func TestNormalize_Heading(t *testing.T) {
	n := testNormalizer(t)

	root := &Node{Type: NodeDoc, Content: []Node{
		{Type: NodeHeading, Attrs: Attrs{"level": float64(3), "id": "abc123"}, Content: []Node{textRun("Title")}},
		{Type: NodeHeading, Content: []Node{textRun("No attrs")}},
	}}

	blocks := n.Normalize(root)
	if len(blocks) != 2 {
		t.Fatalf("Normalize() produced %d blocks, want 2", len(blocks))
	}
	if blocks[0].Heading.Level != 3 || blocks[0].Heading.ID != "abc123" {
		t.Errorf("Heading = %+v, want level 3 id abc123", blocks[0].Heading)
	}
	if blocks[1].Heading.Level != 2 {
		t.Errorf("Heading without attrs level = %d, want default 2", blocks[1].Heading.Level)
	}
}

func TestNormalize_CodeBlock(t *testing.T) {
	n := testNormalizer(t)

	tests := []struct {
		name        string
		text        string
		attrs       Attrs
		wantLang    string
		wantContent string
	}{
		{
			name:        "fenced with language",
			text:        "```go\nfunc main() {}\n",
			wantLang:    "go",
			wantContent: "func main() {}\n",
		},
		{
			name:        "fenced without language",
			text:        "```\nplain\n",
			wantLang:    "",
			wantContent: "plain\n",
		},
		{
			name:        "fence without newline falls back to attrs",
			text:        "```incomplete",
			attrs:       Attrs{"language": "text"},
			wantLang:    "text",
			wantContent: "```incomplete",
		},
		{
			name:        "no fence uses language attribute",
			text:        "SELECT 1;",
			attrs:       Attrs{"language": "sql"},
			wantLang:    "sql",
			wantContent: "SELECT 1;",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &Node{Type: NodeDoc, Content: []Node{
				{Type: NodeCodeBlock, Attrs: tt.attrs, Content: []Node{{Type: NodeText, Text: tt.text}}},
			}}
			blocks := n.Normalize(root)
			if len(blocks) != 1 || blocks[0].Kind != BlockCode {
				t.Fatalf("Normalize() = %+v, want single code block", blocks)
			}
			if blocks[0].Code.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", blocks[0].Code.Language, tt.wantLang)
			}
			if blocks[0].Code.Content != tt.wantContent {
				t.Errorf("Content = %q, want %q", blocks[0].Code.Content, tt.wantContent)
			}
		})
	}
}

func TestNormalize_AlertAndDivider(t *testing.T) {
	n := testNormalizer(t)

	root := &Node{Type: NodeDoc, Content: []Node{
		{Type: NodeWarning, Attrs: Attrs{"type": "danger"}, Content: []Node{textRun("boom")}},
		{Type: NodeWarning, Attrs: Attrs{"type": "sparkly"}, Content: []Node{textRun("eh")}},
		{Type: NodeDivider, Attrs: Attrs{"type": "hr"}},
		{Type: NodeDivider},
	}}

	blocks := n.Normalize(root)
	if len(blocks) != 4 {
		t.Fatalf("Normalize() produced %d blocks, want 4", len(blocks))
	}
	if blocks[0].Alert.Level != common.AlertLevelDanger {
		t.Errorf("Alert level = %s, want danger", blocks[0].Alert.Level)
	}
	if blocks[1].Alert.Level != common.AlertLevelInfo {
		t.Errorf("Unknown alert level = %s, want info fallback", blocks[1].Alert.Level)
	}
	if blocks[2].Divider.Kind != common.DividerKindHr {
		t.Errorf("Divider kind = %s, want hr", blocks[2].Divider.Kind)
	}
	if blocks[3].Divider.Kind != common.DividerKindDots {
		t.Errorf("Default divider kind = %s, want dots", blocks[3].Divider.Kind)
	}
}

func TestNormalize_Lists(t *testing.T) {
	n := testNormalizer(t)

	item := func(text string) Node {
		return Node{Type: "listItem", Content: []Node{
			{Type: NodeParagraph, Content: []Node{textRun(text)}},
		}}
	}
	root := &Node{Type: NodeDoc, Content: []Node{
		{Type: NodeOrderedList, Content: []Node{item("one"), item("two")}},
		{Type: NodeBulletList, Content: []Node{item("dot")}},
	}}

	blocks := n.Normalize(root)
	if len(blocks) != 2 {
		t.Fatalf("Normalize() produced %d blocks, want 2", len(blocks))
	}
	if blocks[0].Kind != BlockOrdered || len(blocks[0].List.Items) != 2 {
		t.Errorf("Ordered list = %+v, want 2 items", blocks[0].List)
	}
	if blocks[1].Kind != BlockBullet || len(blocks[1].List.Items) != 1 {
		t.Errorf("Bullet list = %+v, want 1 item", blocks[1].List)
	}
	if blocks[0].List.Items[1][0].Paragraph.Markup != "two" {
		t.Errorf("List item content = %+v, want paragraph 'two'", blocks[0].List.Items[1])
	}
}

func TestNormalize_Table(t *testing.T) {
	n := testNormalizer(t)

	cell := func(text string, attrs Attrs) Node {
		return Node{Type: NodeTableCell, Attrs: attrs, Content: []Node{
			{Type: NodeParagraph, Content: []Node{textRun(text)}},
		}}
	}
	root := &Node{Type: NodeDoc, Content: []Node{
		{Type: NodeTable, Content: []Node{
			{Type: NodeTableRow, Content: []Node{
				cell("head", Attrs{"header": true, "colspan": float64(2)}),
			}},
			{Type: NodeTableRow, Content: []Node{
				cell("a", nil),
				cell("b", Attrs{"rowspan": float64(3)}),
			}},
		}},
	}}

	blocks := n.Normalize(root)
	if len(blocks) != 1 || blocks[0].Kind != BlockTable {
		t.Fatalf("Normalize() = %+v, want single table", blocks)
	}
	tbl := blocks[0].Table
	if len(tbl.Rows) != 2 {
		t.Fatalf("Table has %d rows, want 2", len(tbl.Rows))
	}
	if !tbl.Rows[0].Cells[0].Header || tbl.Rows[0].Cells[0].ColSpan != 2 {
		t.Errorf("Header cell = %+v, want header colspan 2", tbl.Rows[0].Cells[0])
	}
	if tbl.Rows[1].Cells[1].RowSpan != 3 {
		t.Errorf("RowSpan = %d, want 3", tbl.Rows[1].Cells[1].RowSpan)
	}
	if tbl.Rows[1].Cells[0].ColSpan != 1 {
		t.Errorf("Default colspan = %d, want 1", tbl.Rows[1].Cells[0].ColSpan)
	}
}

func TestNormalize_Cards(t *testing.T) {
	store := assets.StaticStore{
		"docs/report.pdf": {URL: "https://assets.example.org/docs/report.pdf", Name: "report.pdf", Size: 1536, MIME: "application/pdf"},
	}
	n := NewNormalizer(
		links.NewClassifier("https://example.org", i18n.New("en")),
		store, i18n.New("en"), nil,
		zaptest.NewLogger(t))

	card := func(attrs Attrs) Node {
		return Node{Type: "card", Attrs: attrs}
	}
	root := &Node{Type: NodeDoc, Content: []Node{
		{Type: NodeCardGroup, Content: []Node{
			card(Attrs{"type": "event", "title": "Launch", "date": "2024/03/05", "datetime": "2024/03/05 15:04"}),
			card(Attrs{"type": "address", "title": "Office", "address": `{"formatted_address":"1 Main St","geometry":{"location":{"lat":45.5,"lng":-73.6}}}`}),
			card(Attrs{"type": "address", "title": "Broken", "address": `{not json`}),
			card(Attrs{"type": "document", "title": "Annual report", "document": map[string]any{"identifier": "docs/report.pdf", "name": "report.pdf"}}),
			card(Attrs{"type": "document", "document": map[string]any{"name": "orphan.pdf"}}),
			card(Attrs{"type": "hologram"}),
		}},
	}}

	blocks := n.Normalize(root)
	if len(blocks) != 1 || blocks[0].Kind != BlockCardGroup {
		t.Fatalf("Normalize() = %+v, want single card group", blocks)
	}
	cards := blocks[0].Cards.Cards
	if len(cards) != 5 {
		t.Fatalf("Card group has %d cards, want 5 (unknown kind dropped)", len(cards))
	}

	if cards[0].Date != "March 5, 2024" {
		t.Errorf("Event date = %q, want %q", cards[0].Date, "March 5, 2024")
	}
	if cards[0].Datetime != "March 5, 2024 15:04" {
		t.Errorf("Event datetime = %q, want %q", cards[0].Datetime, "March 5, 2024 15:04")
	}

	if cards[1].Address == nil || cards[1].Address.FormattedAddress != "1 Main St" {
		t.Errorf("Address card = %+v, want decoded address", cards[1].Address)
	}
	if cards[1].Address.Geometry.Location.Lat != 45.5 {
		t.Errorf("Address lat = %g, want 45.5", cards[1].Address.Geometry.Location.Lat)
	}

	if cards[2].Address != nil {
		t.Error("Malformed address was not dropped")
	}

	docCard := cards[3].Document
	if docCard == nil {
		t.Fatal("Document card payload missing")
	}
	if docCard.URL != "https://assets.example.org/docs/report.pdf" {
		t.Errorf("Document URL = %q, want resolved asset URL", docCard.URL)
	}
	if docCard.Size != 1536 {
		t.Errorf("Document size = %d, want 1536", docCard.Size)
	}
	if got := docCard.SizeLabel(); got != "1.5 KB" {
		t.Errorf("SizeLabel() = %q, want 1.5 KB", got)
	}
	if got := docCard.FileTypeLabel(); got != "PDF" {
		t.Errorf("FileTypeLabel() = %q, want PDF", got)
	}

	if cards[4].Document != nil {
		t.Error("Document card without identifier should have nil payload")
	}
}

func TestNormalize_CardDateFallback(t *testing.T) {
	n := testNormalizer(t)

	root := &Node{Type: NodeDoc, Content: []Node{
		{Type: NodeCardGroup, Content: []Node{
			{Type: "card", Attrs: Attrs{"type": "event", "date": "sometime soon"}},
		}},
	}}
	blocks := n.Normalize(root)
	if got := blocks[0].Cards.Cards[0].Date; got != "sometime soon" {
		t.Errorf("Unparsable date = %q, want authored value kept", got)
	}
}

func TestNormalize_VideoAndImage(t *testing.T) {
	n := testNormalizer(t)

	root := &Node{Type: NodeDoc, Content: []Node{
		{Type: NodeVideo, Src: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", Attrs: Attrs{"caption": "demo"}},
		{Type: NodeVideo}, // no source
		{Type: NodeImage, Attrs: Attrs{
			"url":     "https://assets.example.org/pic.png",
			"caption": "a picture",
			"filter":  map[string]any{"blur": "2px", "grayscale": "100%"},
			"aspect_ratio": map[string]any{
				"width": float64(1600), "height": float64(900), "ratio": 16.0 / 9.0, "pb": "56.25%",
			},
		}},
		{Type: NodeImage}, // no url
	}}

	blocks := n.Normalize(root)
	if len(blocks) != 2 {
		t.Fatalf("Normalize() produced %d blocks, want 2 (sourceless media dropped)", len(blocks))
	}
	if blocks[0].Kind != BlockVideo || blocks[0].Video.Caption != "demo" {
		t.Errorf("Video = %+v, want caption 'demo'", blocks[0].Video)
	}

	img := blocks[1].Image
	if img.Alt != "a picture" {
		t.Errorf("Image alt = %q, want caption fallback", img.Alt)
	}
	if css := img.Filter.CSS(); css != "blur(2px) grayscale(100%)" {
		t.Errorf("Filter CSS = %q", css)
	}
	if img.AspectRatio == nil || img.AspectRatio.PaddingBottom != "56.25%" {
		t.Errorf("AspectRatio = %+v", img.AspectRatio)
	}
}

func TestNormalize_Details(t *testing.T) {
	n := testNormalizer(t)

	root := &Node{Type: NodeDoc, Content: []Node{
		{Type: NodeDetails, Content: []Node{
			{Type: NodeDetailsSummary, Content: []Node{textRun("More info")}},
			{Type: NodeDetailsContent, Content: []Node{
				{Type: NodeParagraph, Content: []Node{textRun("hidden text")}},
			}},
		}},
	}}

	blocks := n.Normalize(root)
	if len(blocks) != 1 || blocks[0].Kind != BlockDetails {
		t.Fatalf("Normalize() = %+v, want single details block", blocks)
	}
	det := blocks[0].Details
	if det.Summary != "More info" {
		t.Errorf("Summary = %q", det.Summary)
	}
	if len(det.Content) != 1 || det.Content[0].Paragraph.Markup != "hidden text" {
		t.Errorf("Details content = %+v", det.Content)
	}
}

func TestParseCardDate(t *testing.T) {
	tests := []struct {
		in       string
		want     string
		withTime bool
		wantErr  bool
	}{
		{in: "2024/03/05", want: "2024-03-05 00:00", withTime: false},
		{in: "2024/03/05 15:04", want: "2024-03-05 15:04", withTime: true},
		{in: "2024/12/31 00:00", want: "2024-12-31 00:00", withTime: true},
		{in: "03/05/2024/x", wantErr: true},
		{in: "2024-03-05", wantErr: true},
		{in: "2024/03/05 noon", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, withTime, err := ParseCardDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCardDate(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCardDate(%q) error = %v", tt.in, err)
			continue
		}
		if got.Format("2006-01-02 15:04") != tt.want {
			t.Errorf("ParseCardDate(%q) = %s, want %s", tt.in, got.Format("2006-01-02 15:04"), tt.want)
		}
		if withTime != tt.withTime {
			t.Errorf("ParseCardDate(%q) withTime = %t, want %t", tt.in, withTime, tt.withTime)
		}
	}
}

func TestDumpBlocks(t *testing.T) {
	n := testNormalizer(t)
	root := &Node{Type: NodeDoc, Content: []Node{
		{Type: NodeParagraph, Content: []Node{textRun("Hello")}},
		{Type: NodeDivider, Attrs: Attrs{"type": "hr"}},
	}}
	out := DumpBlocks(n.Normalize(root))
	if !strings.Contains(out, "Blocks: 2") || !strings.Contains(out, `"Hello"`) {
		t.Errorf("DumpBlocks() = %q", out)
	}
}
