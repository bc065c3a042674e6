// Package history defines the intermediate representation of an exported
// Slack channel: a flat channel record plus a tree of messages with their
// reactions, files, attachments, and layout blocks. Values are built once
// by the export orchestrator and read-only afterwards; only a message's
// Replies slice is appended to, during thread reconstruction.
package history

// User is a channel participant, human or bot.
type User struct {
	ID   string `json:"id"`   // stable Slack ID (U..., W..., B...)
	Name string `json:"name"` // resolved display name, or a deterministic fallback
}

// Channel identifies the exported conversation.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Reaction is an emoji reaction aggregate on a message.
// Count is authoritative for display; UserIDs is not reconciled against it.
type Reaction struct {
	Name    string   `json:"name"`
	Count   int      `json:"count"`
	UserIDs []string `json:"user_ids"`
}

// File is a reference to a shared file. URL is opaque and never fetched.
type File struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Name      string `json:"name"`
	Filetype  string `json:"filetype"`
	Title     string `json:"title,omitempty"`
	Mimetype  string `json:"mimetype,omitempty"`
	Size      int64  `json:"size,omitempty"`
	Timestamp string `json:"timestamp,omitempty"` // raw epoch-seconds string, if supplied
}

// Attachment is Slack's legacy secondary content block.
// Text has already been through the markup converter when the source
// flagged it as mrkdwn.
type Attachment struct {
	Fallback   string `json:"fallback"`
	Text       string `json:"text"`
	Pretext    string `json:"pretext,omitempty"`
	Title      string `json:"title,omitempty"`
	TitleLink  string `json:"title_link,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
	Footer     string `json:"footer,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	Color      string `json:"color,omitempty"`
}

// Message is a single chat message. A message is a thread parent iff
// ThreadTS equals its own TS; only thread parents carry replies, in the
// chronological order the source supplied them.
type Message struct {
	User            *User        `json:"user,omitempty"` // nil for system messages
	TS              string       `json:"ts"`             // raw source timestamp, opaque
	ThreadTS        string       `json:"thread_ts,omitempty"`
	TSDisplay       string       `json:"ts_display"` // fixed-format UTC, computed once
	ThreadTSDisplay string       `json:"thread_ts_display,omitempty"`
	Text            string       `json:"text"` // markup-converted
	Reactions       []Reaction   `json:"reactions,omitempty"`
	Files           []File       `json:"files,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	Blocks          []Block      `json:"blocks,omitempty"`
	IsBot           bool         `json:"is_bot,omitempty"`
	Replies         []*Message   `json:"replies,omitempty"`
}

// IsThreadParent reports whether the message is the root of a reply thread.
func (m *Message) IsThreadParent() bool {
	return m.ThreadTS != "" && m.ThreadTS == m.TS
}

// ChannelExportData is the complete result of one export run and the sole
// value crossing the boundary to a renderer. Each top-level message is the
// root of a (possibly empty) reply tree.
type ChannelExportData struct {
	Channel          Channel    `json:"channel"`
	TopLevelMessages []*Message `json:"top_level_messages"`
}
