package notion

import (
	"context"
	"log/slog"
)

// PageInfo is the human-readable header of a page report.
type PageInfo struct {
	Title string `json:"title"`
	Cover string `json:"cover"`
	Icon  string `json:"icon"`
}

// PropertyReport pairs a property's extracted value with its raw form.
type PropertyReport struct {
	Type  string    `json:"type"`
	Value any       `json:"value"`
	Raw   *Property `json:"raw"`
}

// ReportMetadata carries a page's identity and extracted properties.
type ReportMetadata struct {
	ID             string                    `json:"id"`
	CreatedTime    string                    `json:"created_time"`
	LastEditedTime string                    `json:"last_edited_time"`
	Parent         *Parent                   `json:"parent"`
	Properties     map[string]PropertyReport `json:"properties"`
}

// BlockSummary is one block rendered to text, with one level of nesting.
type BlockSummary struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Text        string         `json:"text"`
	HasChildren bool           `json:"has_children"`
	Children    []BlockSummary `json:"children,omitempty"`
}

// PageReport is a full snapshot of a page: header, metadata, comments and
// content rendered to text.
type PageReport struct {
	PageInfo PageInfo       `json:"page_info"`
	Metadata ReportMetadata `json:"metadata"`
	Comments []string       `json:"comments"`
	Children []BlockSummary `json:"children"`
}

// GetPageReport assembles a page report from the page record, its comments
// and its child blocks. Nested children are fetched one level deep; a failed
// nested fetch logs a warning and leaves that branch empty.
func (c *Client) GetPageReport(ctx context.Context, pageID string) (*PageReport, error) {
	page, err := c.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}

	properties := make(map[string]PropertyReport, len(page.Properties))
	for name, prop := range page.Properties {
		properties[name] = PropertyReport{
			Type:  prop.Type,
			Value: PropertyValue(prop),
			Raw:   &prop,
		}
	}

	comments, err := c.ListComments(ctx, pageID)
	if err != nil {
		return nil, err
	}
	commentTexts := make([]string, 0, len(comments))
	for _, comment := range comments {
		commentTexts = append(commentTexts, CommentText(comment))
	}

	blocks, err := c.GetChildBlocks(ctx, pageID)
	if err != nil {
		return nil, err
	}

	children := make([]BlockSummary, 0, len(blocks))
	for _, block := range blocks {
		summary := BlockSummary{
			ID:          block.ID,
			Type:        block.Type,
			Text:        PlainText(block),
			HasChildren: block.HasChildren,
		}

		if block.HasChildren {
			nested, err := c.GetChildBlocks(ctx, block.ID)
			if err != nil {
				slog.Warn("Failed to fetch children", "block_id", block.ID, "error", err)
			} else {
				summary.Children = make([]BlockSummary, 0, len(nested))
				for _, n := range nested {
					summary.Children = append(summary.Children, BlockSummary{
						ID:          n.ID,
						Type:        n.Type,
						Text:        PlainText(n),
						HasChildren: n.HasChildren,
					})
				}
			}
		}

		children = append(children, summary)
	}

	return &PageReport{
		PageInfo: PageInfo{
			Title: PageTitle(page),
			Cover: coverText(page.Cover),
			Icon:  iconText(page.Icon),
		},
		Metadata: ReportMetadata{
			ID:             page.ID,
			CreatedTime:    page.CreatedTime,
			LastEditedTime: page.LastEditedTime,
			Parent:         page.Parent,
			Properties:     properties,
		},
		Comments: commentTexts,
		Children: children,
	}, nil
}
