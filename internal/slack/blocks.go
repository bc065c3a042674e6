package slack

import "encoding/json"

// Block Kit wire decoding. Block and element payloads vary by their type
// tag, and the API reuses the "text" key for both a composition object
// (section blocks, button labels) and a bare string (rich-text leaves), so
// elements carry a custom unmarshaler. Unrecognized types are not an error:
// the tag and whatever fields decode are kept.

// TextObject is a Block Kit composition object (plain_text or mrkdwn).
type TextObject struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Emoji bool   `json:"emoji,omitempty"`
}

// Element is a block element or rich-text node. Which fields are populated
// depends on Type.
type Element struct {
	Type        string       `json:"type"`
	Text        *TextObject  `json:"-"` // object form: button labels
	RawText     string       `json:"-"` // string form: rich-text text leaves
	Name        string       `json:"name,omitempty"` // emoji leaves
	URL         string       `json:"url,omitempty"`
	UserID      string       `json:"user_id,omitempty"`
	ChannelID   string       `json:"channel_id,omitempty"`
	UsergroupID string       `json:"usergroup_id,omitempty"`
	Range       string       `json:"range,omitempty"` // broadcast: here, channel, everyone
	Value       string       `json:"value,omitempty"`
	ActionID    string       `json:"action_id,omitempty"`
	Elements    []Element    `json:"elements,omitempty"` // rich_text_* containers nest
}

// elementAlias avoids recursing into Element.UnmarshalJSON while giving the
// ambiguous text field a raw home.
type elementAlias struct {
	Type        string          `json:"type"`
	Text        json.RawMessage `json:"text,omitempty"`
	Name        string          `json:"name,omitempty"`
	URL         string          `json:"url,omitempty"`
	UserID      string          `json:"user_id,omitempty"`
	ChannelID   string          `json:"channel_id,omitempty"`
	UsergroupID string          `json:"usergroup_id,omitempty"`
	Range       string          `json:"range,omitempty"`
	Value       string          `json:"value,omitempty"`
	ActionID    string          `json:"action_id,omitempty"`
	Elements    []Element       `json:"elements,omitempty"`
}

// UnmarshalJSON decodes an element, accepting "text" as either a string or
// a composition object. A malformed text payload is dropped, not fatal.
func (e *Element) UnmarshalJSON(data []byte) error {
	var a elementAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*e = Element{
		Type:        a.Type,
		Name:        a.Name,
		URL:         a.URL,
		UserID:      a.UserID,
		ChannelID:   a.ChannelID,
		UsergroupID: a.UsergroupID,
		Range:       a.Range,
		Value:       a.Value,
		ActionID:    a.ActionID,
		Elements:    a.Elements,
	}
	if len(a.Text) == 0 {
		return nil
	}
	if a.Text[0] == '"' {
		var s string
		if err := json.Unmarshal(a.Text, &s); err == nil {
			e.RawText = s
		}
		return nil
	}
	var obj TextObject
	if err := json.Unmarshal(a.Text, &obj); err == nil {
		e.Text = &obj
	}
	return nil
}

// Block is one layout block from a message. Unknown block types decode with
// just the tag populated.
type Block struct {
	Type      string       `json:"type"`
	Text      *TextObject  `json:"text,omitempty"`
	Fields    []TextObject `json:"fields,omitempty"`
	Accessory *Element     `json:"accessory,omitempty"`
	ImageURL  string       `json:"image_url,omitempty"`
	AltText   string       `json:"alt_text,omitempty"`
	Elements  []Element    `json:"elements,omitempty"`
}
