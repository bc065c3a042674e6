package history

// Block Kit layout model. Blocks and elements are tagged variants keyed by
// their type string: known variants populate the matching payload fields,
// unknown variants keep the tag and whatever best-effort fields decoded.

// Known block type tags.
const (
	BlockSection  = "section"
	BlockDivider  = "divider"
	BlockImage    = "image"
	BlockActions  = "actions"
	BlockContext  = "context"
	BlockHeader   = "header"
	BlockRichText = "rich_text"
)

// Known element type tags (interactive components and rich-text leaves).
const (
	ElementButton      = "button"
	ElementImage       = "image"
	ElementText        = "text"
	ElementEmoji       = "emoji"
	ElementLink        = "link"
	ElementUser        = "user"
	ElementChannel     = "channel"
	ElementUserGroup   = "usergroup"
	ElementBroadcast   = "broadcast"
	ElementRichSection = "rich_text_section"
	ElementRichList    = "rich_text_list"
	ElementRichQuote   = "rich_text_quote"
	ElementRichPre     = "rich_text_preformatted"
)

// Composition is an inline text or option object inside a block. Leaf node.
type Composition struct {
	Type  string `json:"type"` // plain_text or mrkdwn
	Text  string `json:"text,omitempty"`
	Emoji bool   `json:"emoji,omitempty"`
}

// Element is a component inside a block: a button, a rich-text leaf, a
// mention, a link. The Type tag selects which payload fields are meaningful.
type Element struct {
	Type      string       `json:"type"`
	Text      *Composition `json:"text,omitempty"`     // button label
	RawText   string       `json:"raw_text,omitempty"` // rich-text text leaf
	Name      string       `json:"name,omitempty"`     // emoji leaf
	URL       string       `json:"url,omitempty"`       // link, image
	UserID    string       `json:"user_id,omitempty"`   // user mention
	ChannelID string       `json:"channel_id,omitempty"` // channel mention
	GroupID   string       `json:"usergroup_id,omitempty"`
	Range     string       `json:"range,omitempty"` // broadcast: here, channel, everyone
	Value     string       `json:"value,omitempty"`
	ActionID  string       `json:"action_id,omitempty"`
	Elements  []Element    `json:"elements,omitempty"` // rich_text_* containers nest
}

// Block is a layout block. One of the closed variant set above, or an
// unrecognized type carrying only its tag and best-effort fields.
type Block struct {
	Type      string        `json:"type"`
	Text      *Composition  `json:"text,omitempty"`     // section, header
	Fields    []Composition `json:"fields,omitempty"`   // section
	Accessory *Element      `json:"accessory,omitempty"` // section
	ImageURL  string        `json:"image_url,omitempty"` // image
	AltText   string        `json:"alt_text,omitempty"` // image
	Elements  []Element     `json:"elements,omitempty"` // actions, context, rich_text
}
