package notion

// Wire types for the subset of the Notion API this pipeline touches. Fields
// are pointers or omitempty so the same structs serve both reads and the
// minimal payloads we write.

// RichText is one span of formatted text.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
}

// TextContent is the writable payload of a text span.
type TextContent struct {
	Content string `json:"content"`
}

// SelectOption names one select or status choice.
type SelectOption struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// DateValue is a date or date range.
type DateValue struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// User identifies a workspace member.
type User struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// FileRef carries a resolved file URL.
type FileRef struct {
	URL string `json:"url,omitempty"`
}

// FileEntry is one attachment in a files property.
type FileEntry struct {
	Name     string   `json:"name,omitempty"`
	Type     string   `json:"type,omitempty"`
	File     *FileRef `json:"file,omitempty"`
	External *FileRef `json:"external,omitempty"`
}

// PageRef points at another page, as in relation properties.
type PageRef struct {
	ID string `json:"id"`
}

// Formula is the computed value of a formula property.
type Formula struct {
	Type    string     `json:"type,omitempty"`
	String  *string    `json:"string,omitempty"`
	Number  *float64   `json:"number,omitempty"`
	Boolean *bool      `json:"boolean,omitempty"`
	Date    *DateValue `json:"date,omitempty"`
}

// Rollup is the computed value of a rollup property.
type Rollup struct {
	Type   string     `json:"type,omitempty"`
	Number *float64   `json:"number,omitempty"`
	Date   *DateValue `json:"date,omitempty"`
	Array  []Property `json:"array,omitempty"`
}

// Property is one page property, readable and writable. Exactly one payload
// field is set, matching Type.
type Property struct {
	Type           string         `json:"type,omitempty"`
	Title          []RichText     `json:"title,omitempty"`
	RichText       []RichText     `json:"rich_text,omitempty"`
	Number         *float64       `json:"number,omitempty"`
	Select         *SelectOption  `json:"select,omitempty"`
	MultiSelect    []SelectOption `json:"multi_select,omitempty"`
	Status         *SelectOption  `json:"status,omitempty"`
	Date           *DateValue     `json:"date,omitempty"`
	People         []User         `json:"people,omitempty"`
	Files          []FileEntry    `json:"files,omitempty"`
	Checkbox       *bool          `json:"checkbox,omitempty"`
	URL            *string        `json:"url,omitempty"`
	Email          *string        `json:"email,omitempty"`
	PhoneNumber    *string        `json:"phone_number,omitempty"`
	Formula        *Formula       `json:"formula,omitempty"`
	Relation       []PageRef      `json:"relation,omitempty"`
	Rollup         *Rollup        `json:"rollup,omitempty"`
	CreatedTime    string         `json:"created_time,omitempty"`
	CreatedBy      *User          `json:"created_by,omitempty"`
	LastEditedTime string         `json:"last_edited_time,omitempty"`
	LastEditedBy   *User          `json:"last_edited_by,omitempty"`
}

// Icon is a page or callout icon.
type Icon struct {
	Type     string   `json:"type,omitempty"`
	Emoji    string   `json:"emoji,omitempty"`
	External *FileRef `json:"external,omitempty"`
	File     *FileRef `json:"file,omitempty"`
}

// Cover is a page cover image.
type Cover struct {
	Type     string   `json:"type,omitempty"`
	External *FileRef `json:"external,omitempty"`
	File     *FileRef `json:"file,omitempty"`
}

// Parent locates where a page lives.
type Parent struct {
	Type         string `json:"type,omitempty"`
	DataSourceID string `json:"data_source_id,omitempty"`
	DatabaseID   string `json:"database_id,omitempty"`
	PageID       string `json:"page_id,omitempty"`
}

// Page is a Notion page with its property bag.
type Page struct {
	Object         string              `json:"object,omitempty"`
	ID             string              `json:"id,omitempty"`
	CreatedTime    string              `json:"created_time,omitempty"`
	LastEditedTime string              `json:"last_edited_time,omitempty"`
	Parent         *Parent             `json:"parent,omitempty"`
	Icon           *Icon               `json:"icon,omitempty"`
	Cover          *Cover              `json:"cover,omitempty"`
	Properties     map[string]Property `json:"properties,omitempty"`
	URL            string              `json:"url,omitempty"`
}

// RichTextBody is the shared shape of text-bearing blocks.
type RichTextBody struct {
	RichText []RichText `json:"rich_text"`
}

// ToDoBody is a to_do block payload.
type ToDoBody struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked,omitempty"`
}

// CodeBody is a code block payload.
type CodeBody struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language,omitempty"`
}

// CalloutBody is a callout block payload.
type CalloutBody struct {
	RichText []RichText `json:"rich_text"`
	Icon     *Icon      `json:"icon,omitempty"`
}

// ToggleBody is a toggle block payload. Children are only sent on writes;
// reads require a separate children fetch.
type ToggleBody struct {
	RichText []RichText `json:"rich_text"`
	Children []Block    `json:"children,omitempty"`
}

// ChildTitle is the payload of child_page and child_database blocks.
type ChildTitle struct {
	Title string `json:"title,omitempty"`
}

// TableRowBody holds one table row's cells.
type TableRowBody struct {
	Cells [][]RichText `json:"cells"`
}

// MediaBody is the shared shape of file-backed blocks.
type MediaBody struct {
	Caption  []RichText `json:"caption,omitempty"`
	File     *FileRef   `json:"file,omitempty"`
	External *FileRef   `json:"external,omitempty"`
}

// LinkBody is the shared shape of embed-style blocks.
type LinkBody struct {
	URL     string     `json:"url,omitempty"`
	Caption []RichText `json:"caption,omitempty"`
}

// LinkToPage references another page or database.
type LinkToPage struct {
	Type       string `json:"type,omitempty"`
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
}

// EquationBody holds a LaTeX expression.
type EquationBody struct {
	Expression string `json:"expression,omitempty"`
}

// Block is a Notion block. Type names the populated payload field.
type Block struct {
	Object           string        `json:"object,omitempty"`
	ID               string        `json:"id,omitempty"`
	Type             string        `json:"type,omitempty"`
	HasChildren      bool          `json:"has_children,omitempty"`
	Paragraph        *RichTextBody `json:"paragraph,omitempty"`
	Heading1         *RichTextBody `json:"heading_1,omitempty"`
	Heading2         *RichTextBody `json:"heading_2,omitempty"`
	Heading3         *RichTextBody `json:"heading_3,omitempty"`
	BulletedListItem *RichTextBody `json:"bulleted_list_item,omitempty"`
	NumberedListItem *RichTextBody `json:"numbered_list_item,omitempty"`
	Quote            *RichTextBody `json:"quote,omitempty"`
	Toggle           *ToggleBody   `json:"toggle,omitempty"`
	ToDo             *ToDoBody     `json:"to_do,omitempty"`
	Callout          *CalloutBody  `json:"callout,omitempty"`
	Code             *CodeBody     `json:"code,omitempty"`
	ChildPage        *ChildTitle   `json:"child_page,omitempty"`
	ChildDatabase    *ChildTitle   `json:"child_database,omitempty"`
	TableRow         *TableRowBody `json:"table_row,omitempty"`
	Image            *MediaBody    `json:"image,omitempty"`
	Video            *MediaBody    `json:"video,omitempty"`
	File             *MediaBody    `json:"file,omitempty"`
	PDF              *MediaBody    `json:"pdf,omitempty"`
	Embed            *LinkBody     `json:"embed,omitempty"`
	Bookmark         *LinkBody     `json:"bookmark,omitempty"`
	LinkPreview      *LinkBody     `json:"link_preview,omitempty"`
	LinkToPage       *LinkToPage   `json:"link_to_page,omitempty"`
	Equation         *EquationBody `json:"equation,omitempty"`
}

// Comment is one page comment.
type Comment struct {
	Object      string     `json:"object,omitempty"`
	ID          string     `json:"id,omitempty"`
	RichText    []RichText `json:"rich_text,omitempty"`
	CreatedTime string     `json:"created_time,omitempty"`
}

// QueryResult is one page of data source query results.
type QueryResult struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// CreatePageRequest is the payload for creating a page.
type CreatePageRequest struct {
	Parent     Parent              `json:"parent"`
	Properties map[string]Property `json:"properties"`
	Children   []Block             `json:"children,omitempty"`
	Icon       *Icon               `json:"icon,omitempty"`
}
