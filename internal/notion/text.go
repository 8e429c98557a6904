package notion

import (
	"log/slog"
	"strings"
)

// richTextString concatenates the plain text of a rich text array.
func richTextString(spans []RichText) string {
	var b strings.Builder
	for _, span := range spans {
		if span.PlainText != "" {
			b.WriteString(span.PlainText)
			continue
		}
		if span.Text != nil {
			b.WriteString(span.Text.Content)
		}
	}
	return b.String()
}

// iconText renders an icon as text: the emoji itself, or the file URL.
func iconText(icon *Icon) string {
	if icon == nil {
		return ""
	}
	switch icon.Type {
	case "emoji":
		return icon.Emoji
	case "external":
		if icon.External != nil {
			return icon.External.URL
		}
	case "file":
		if icon.File != nil {
			return icon.File.URL
		}
	}
	return ""
}

// coverText renders a cover as its URL.
func coverText(cover *Cover) string {
	if cover == nil {
		return ""
	}
	switch cover.Type {
	case "external":
		if cover.External != nil {
			return cover.External.URL
		}
	case "file":
		if cover.File != nil {
			return cover.File.URL
		}
	}
	return ""
}

// CommentText extracts the plain text of a comment.
func CommentText(comment Comment) string {
	return richTextString(comment.RichText)
}

// PageTitle extracts a page's title, trying the conventional property names.
func PageTitle(page *Page) string {
	if page == nil {
		return ""
	}
	if prop, ok := page.Properties["Name"]; ok && len(prop.Title) > 0 {
		return richTextString(prop.Title)
	}
	for _, name := range []string{"title", "Title", "Name"} {
		if prop, ok := page.Properties[name]; ok && len(prop.Title) > 0 {
			return richTextString(prop.Title)
		}
	}
	return ""
}

// PlainText renders a block as readable text. Text-bearing blocks return
// their rich text; media and embeds return their caption or URL; structural
// blocks return "". Unknown types are logged and skipped.
func PlainText(block Block) string {
	switch block.Type {
	case "paragraph":
		return bodyText(block.Paragraph)
	case "heading_1":
		return bodyText(block.Heading1)
	case "heading_2":
		return bodyText(block.Heading2)
	case "heading_3":
		return bodyText(block.Heading3)
	case "bulleted_list_item":
		return bodyText(block.BulletedListItem)
	case "numbered_list_item":
		return bodyText(block.NumberedListItem)
	case "quote":
		return bodyText(block.Quote)
	case "toggle":
		if block.Toggle != nil {
			return richTextString(block.Toggle.RichText)
		}
		return ""
	case "to_do":
		if block.ToDo != nil {
			return richTextString(block.ToDo.RichText)
		}
		return ""
	case "callout":
		if block.Callout == nil {
			return ""
		}
		text := richTextString(block.Callout.RichText)
		return strings.TrimSpace(iconText(block.Callout.Icon) + " " + text)
	case "code":
		if block.Code != nil {
			return richTextString(block.Code.RichText)
		}
		return ""
	case "child_page":
		if block.ChildPage != nil {
			return block.ChildPage.Title
		}
		return ""
	case "child_database":
		if block.ChildDatabase != nil {
			return block.ChildDatabase.Title
		}
		return ""
	case "table_row":
		if block.TableRow == nil {
			return ""
		}
		cells := make([]string, 0, len(block.TableRow.Cells))
		for _, cell := range block.TableRow.Cells {
			cells = append(cells, richTextString(cell))
		}
		return strings.Join(cells, " | ")
	case "image":
		return mediaText(block.Image)
	case "video":
		return mediaText(block.Video)
	case "file":
		return mediaText(block.File)
	case "pdf":
		return mediaText(block.PDF)
	case "embed":
		return linkText(block.Embed)
	case "bookmark":
		return linkText(block.Bookmark)
	case "link_preview":
		return linkText(block.LinkPreview)
	case "link_to_page":
		if block.LinkToPage == nil {
			return ""
		}
		switch block.LinkToPage.Type {
		case "page_id":
			return block.LinkToPage.PageID
		case "database_id":
			return block.LinkToPage.DatabaseID
		}
		return ""
	case "equation":
		if block.Equation != nil {
			return block.Equation.Expression
		}
		return ""
	case "divider", "breadcrumb", "table", "synced_block", "column_list", "column", "template":
		return ""
	case "":
		return ""
	}

	slog.Warn("Unsupported block type", "type", block.Type)
	return ""
}

func bodyText(body *RichTextBody) string {
	if body == nil {
		return ""
	}
	return richTextString(body.RichText)
}

func mediaText(media *MediaBody) string {
	if media == nil {
		return ""
	}
	if caption := richTextString(media.Caption); caption != "" {
		return caption
	}
	if media.File != nil && media.File.URL != "" {
		return media.File.URL
	}
	if media.External != nil {
		return media.External.URL
	}
	return ""
}

func linkText(link *LinkBody) string {
	if link == nil {
		return ""
	}
	if caption := richTextString(link.Caption); caption != "" {
		return caption
	}
	return link.URL
}

// PropertyValue extracts a property's value in plain form: strings for text
// and selects, float64 for numbers, slices for multi-valued kinds, nil when
// empty or unrecognized.
func PropertyValue(prop Property) any {
	switch prop.Type {
	case "title":
		return richTextString(prop.Title)
	case "rich_text":
		return richTextString(prop.RichText)
	case "number":
		if prop.Number == nil {
			return nil
		}
		return *prop.Number
	case "select":
		if prop.Select == nil {
			return nil
		}
		return prop.Select.Name
	case "multi_select":
		names := make([]string, 0, len(prop.MultiSelect))
		for _, option := range prop.MultiSelect {
			names = append(names, option.Name)
		}
		return names
	case "status":
		if prop.Status == nil {
			return nil
		}
		return prop.Status.Name
	case "date":
		if prop.Date == nil {
			return nil
		}
		if prop.Date.End != "" {
			return *prop.Date
		}
		return prop.Date.Start
	case "people":
		names := make([]string, 0, len(prop.People))
		for _, person := range prop.People {
			if person.Name != "" {
				names = append(names, person.Name)
			} else {
				names = append(names, person.ID)
			}
		}
		return names
	case "files":
		names := make([]string, 0, len(prop.Files))
		for _, file := range prop.Files {
			switch {
			case file.Name != "":
				names = append(names, file.Name)
			case file.File != nil:
				names = append(names, file.File.URL)
			default:
				names = append(names, "")
			}
		}
		return names
	case "checkbox":
		if prop.Checkbox == nil {
			return false
		}
		return *prop.Checkbox
	case "url":
		if prop.URL == nil {
			return nil
		}
		return *prop.URL
	case "email":
		if prop.Email == nil {
			return nil
		}
		return *prop.Email
	case "phone_number":
		if prop.PhoneNumber == nil {
			return nil
		}
		return *prop.PhoneNumber
	case "formula":
		return formulaValue(prop.Formula)
	case "relation":
		ids := make([]string, 0, len(prop.Relation))
		for _, ref := range prop.Relation {
			ids = append(ids, ref.ID)
		}
		return ids
	case "rollup":
		return rollupValue(prop.Rollup)
	case "created_time":
		return prop.CreatedTime
	case "created_by":
		return userName(prop.CreatedBy)
	case "last_edited_time":
		return prop.LastEditedTime
	case "last_edited_by":
		return userName(prop.LastEditedBy)
	}
	return nil
}

func formulaValue(formula *Formula) any {
	if formula == nil {
		return nil
	}
	switch formula.Type {
	case "string":
		if formula.String != nil {
			return *formula.String
		}
	case "number":
		if formula.Number != nil {
			return *formula.Number
		}
	case "boolean":
		if formula.Boolean != nil {
			return *formula.Boolean
		}
	case "date":
		if formula.Date != nil {
			return *formula.Date
		}
	}
	return nil
}

func rollupValue(rollup *Rollup) any {
	if rollup == nil {
		return nil
	}
	switch rollup.Type {
	case "number":
		if rollup.Number != nil {
			return *rollup.Number
		}
	case "date":
		if rollup.Date != nil {
			return *rollup.Date
		}
	case "array":
		values := make([]any, 0, len(rollup.Array))
		for _, item := range rollup.Array {
			values = append(values, PropertyValue(item))
		}
		return values
	}
	return nil
}

func userName(user *User) any {
	if user == nil {
		return nil
	}
	if user.Name != "" {
		return user.Name
	}
	return user.ID
}
