package notion

import "testing"

func blockText(t *testing.T, spans []RichText) string {
	t.Helper()
	if len(spans) != 1 {
		t.Fatalf("expected one rich text span, got %d", len(spans))
	}
	if spans[0].Text == nil {
		t.Fatal("span has no text content")
	}
	return spans[0].Text.Content
}

func TestToggleBlocksSimpleText(t *testing.T) {
	blocks := ToggleBlocks("just a note", "📝 Original Note")

	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	toggle := blocks[0]
	if toggle.Type != "toggle" || toggle.Toggle == nil {
		t.Fatalf("block type = %q, want toggle", toggle.Type)
	}
	if got := blockText(t, toggle.Toggle.RichText); got != "📝 Original Note" {
		t.Errorf("toggle title = %q", got)
	}

	children := toggle.Toggle.Children
	if len(children) != 1 {
		t.Fatalf("got %d children, want 1", len(children))
	}
	if children[0].Type != "paragraph" {
		t.Errorf("child type = %q, want paragraph", children[0].Type)
	}
	if got := blockText(t, children[0].Paragraph.RichText); got != "just a note" {
		t.Errorf("child text = %q", got)
	}
}

func TestToggleBlocksSplitsParagraphs(t *testing.T) {
	blocks := ToggleBlocks("first\n\nsecond\n\n\n\nthird", "Details")

	children := blocks[0].Toggle.Children
	if len(children) != 3 {
		t.Fatalf("got %d children, want 3", len(children))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got := blockText(t, children[i].Paragraph.RichText); got != want {
			t.Errorf("child %d = %q, want %q", i, got, want)
		}
	}
}

func TestToggleBlocksBoldHeading(t *testing.T) {
	blocks := ToggleBlocks("**Assumptions** the user has admin rights", "Details")

	children := blocks[0].Toggle.Children
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	if children[0].Type != "heading_3" {
		t.Errorf("first child type = %q, want heading_3", children[0].Type)
	}
	if got := blockText(t, children[0].Heading3.RichText); got != "Assumptions" {
		t.Errorf("heading text = %q", got)
	}
	if children[1].Type != "paragraph" {
		t.Errorf("second child type = %q, want paragraph", children[1].Type)
	}
	if got := blockText(t, children[1].Paragraph.RichText); got != "the user has admin rights" {
		t.Errorf("remainder text = %q", got)
	}
}

func TestToggleBlocksHeadingWithoutRemainder(t *testing.T) {
	blocks := ToggleBlocks("**Heading only**", "Details")

	children := blocks[0].Toggle.Children
	if len(children) != 1 {
		t.Fatalf("got %d children, want 1", len(children))
	}
	if children[0].Type != "heading_3" {
		t.Errorf("child type = %q, want heading_3", children[0].Type)
	}
	if got := blockText(t, children[0].Heading3.RichText); got != "Heading only" {
		t.Errorf("heading text = %q", got)
	}
}

func TestToggleBlocksEmptyText(t *testing.T) {
	blocks := ToggleBlocks("", "Details")

	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if len(blocks[0].Toggle.Children) != 0 {
		t.Errorf("got %d children for empty text, want 0", len(blocks[0].Toggle.Children))
	}
}

func TestCallout(t *testing.T) {
	block := Callout("**Confidence**: 0.85", "🤖")

	if block.Type != "callout" || block.Callout == nil {
		t.Fatalf("block type = %q, want callout", block.Type)
	}
	if got := blockText(t, block.Callout.RichText); got != "**Confidence**: 0.85" {
		t.Errorf("callout text = %q", got)
	}
	if block.Callout.Icon == nil || block.Callout.Icon.Emoji != "🤖" {
		t.Errorf("callout icon = %+v, want 🤖 emoji", block.Callout.Icon)
	}
}

func TestPropertyBuilders(t *testing.T) {
	title := TitleProperty("My Task")
	if got := richTextString(title.Title); got != "My Task" {
		t.Errorf("title property text = %q", got)
	}

	sel := SelectProperty("3")
	if sel.Select == nil || sel.Select.Name != "3" {
		t.Errorf("select property = %+v", sel.Select)
	}

	status := StatusProperty("Not started")
	if status.Status == nil || status.Status.Name != "Not started" {
		t.Errorf("status property = %+v", status.Status)
	}

	num := NumberProperty(85)
	if num.Number == nil || *num.Number != 85 {
		t.Errorf("number property = %+v", num.Number)
	}

	rel := RelationProperty("p1", "p2")
	if len(rel.Relation) != 2 || rel.Relation[0].ID != "p1" || rel.Relation[1].ID != "p2" {
		t.Errorf("relation property = %+v", rel.Relation)
	}
}
