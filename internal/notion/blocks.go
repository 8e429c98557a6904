package notion

import "strings"

// textSpan wraps content in a writable rich text span.
func textSpan(content string) RichText {
	return RichText{Type: "text", Text: &TextContent{Content: content}}
}

// ToggleBlocks converts text into a toggle block holding its paragraphs.
// Paragraphs are split on blank lines; a paragraph opening with a **bold**
// run becomes a heading_3 followed by the remainder as its own paragraph.
func ToggleBlocks(text, title string) []Block {
	var children []Block
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if strings.HasPrefix(para, "**") && strings.Count(para, "**") >= 2 {
			heading := strings.Split(para, "**")[1]
			children = append(children, Block{
				Object:   "block",
				Type:     "heading_3",
				Heading3: &RichTextBody{RichText: []RichText{textSpan(heading)}},
			})

			parts := strings.SplitN(para, "**", 3)
			if remaining := strings.TrimSpace(parts[2]); remaining != "" {
				children = append(children, Block{
					Object:    "block",
					Type:      "paragraph",
					Paragraph: &RichTextBody{RichText: []RichText{textSpan(remaining)}},
				})
			}
			continue
		}

		children = append(children, Block{
			Object:    "block",
			Type:      "paragraph",
			Paragraph: &RichTextBody{RichText: []RichText{textSpan(para)}},
		})
	}

	return []Block{{
		Object: "block",
		Type:   "toggle",
		Toggle: &ToggleBody{
			RichText: []RichText{textSpan(title)},
			Children: children,
		},
	}}
}

// Callout builds a callout block with an emoji icon.
func Callout(text, emoji string) Block {
	return Block{
		Object: "block",
		Type:   "callout",
		Callout: &CalloutBody{
			RichText: []RichText{textSpan(text)},
			Icon:     &Icon{Type: "emoji", Emoji: emoji},
		},
	}
}

// TitleProperty builds a title property from plain text.
func TitleProperty(text string) Property {
	return Property{Title: []RichText{{Text: &TextContent{Content: text}}}}
}

// SelectProperty builds a select property naming one option.
func SelectProperty(name string) Property {
	return Property{Select: &SelectOption{Name: name}}
}

// StatusProperty builds a status property naming one option.
func StatusProperty(name string) Property {
	return Property{Status: &SelectOption{Name: name}}
}

// NumberProperty builds a number property.
func NumberProperty(value float64) Property {
	return Property{Number: &value}
}

// RelationProperty builds a relation property pointing at the given pages.
func RelationProperty(pageIDs ...string) Property {
	refs := make([]PageRef, 0, len(pageIDs))
	for _, id := range pageIDs {
		refs = append(refs, PageRef{ID: id})
	}
	return Property{Relation: refs}
}
