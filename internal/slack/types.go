package slack

import "encoding/json"

// Wire types for the Slack Web API endpoints this tool calls. Every field is
// decoded permissively: anything the API omits stays at its zero value and is
// treated as absent by the callers.

// apiResponse is embedded in every endpoint response for ok/error handling.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (r apiResponse) status() (bool, string) { return r.OK, r.Error }

// response lets the client check any endpoint response for an API error.
type response interface {
	status() (ok bool, apiError string)
}

// responseMetadata carries the pagination cursor. An empty next_cursor means
// the final page was reached.
type responseMetadata struct {
	NextCursor string `json:"next_cursor"`
}

// AuthInfo is the auth.test response: workspace and caller identity.
type AuthInfo struct {
	apiResponse
	URL    string `json:"url"`
	Team   string `json:"team"`
	User   string `json:"user"`
	TeamID string `json:"team_id"`
	UserID string `json:"user_id"`
}

// User is a workspace member from users.list.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RealName string `json:"real_name,omitempty"`
	Deleted  bool   `json:"deleted,omitempty"`
	IsBot    bool   `json:"is_bot,omitempty"`
}

// Channel is a conversation from conversations.list.
type Channel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsChannel  bool   `json:"is_channel,omitempty"`
	IsGroup    bool   `json:"is_group,omitempty"`
	IsPrivate  bool   `json:"is_private,omitempty"`
	IsArchived bool   `json:"is_archived,omitempty"`
	IsMember   bool   `json:"is_member,omitempty"`
}

// UserGroup is a usergroup from usergroups.list. Handle is the @-mentionable
// short name.
type UserGroup struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Name   string `json:"name,omitempty"`
}

// Bot is the bots.info payload for a single bot id.
type Bot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Reaction is an emoji reaction aggregate on a message.
type Reaction struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Users []string `json:"users"`
}

// File is a file share reference attached to a message.
type File struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Title      string      `json:"title,omitempty"`
	Mimetype   string      `json:"mimetype,omitempty"`
	Filetype   string      `json:"filetype,omitempty"`
	URLPrivate string      `json:"url_private,omitempty"`
	Size       int64       `json:"size,omitempty"`
	Timestamp  json.Number `json:"timestamp,omitempty"`
}

// Attachment is a legacy secondary content block. MrkdwnIn names the fields
// the API flagged as mrkdwn; fields not named there are plain text.
type Attachment struct {
	Fallback   string   `json:"fallback,omitempty"`
	Text       string   `json:"text,omitempty"`
	Pretext    string   `json:"pretext,omitempty"`
	Title      string   `json:"title,omitempty"`
	TitleLink  string   `json:"title_link,omitempty"`
	AuthorName string   `json:"author_name,omitempty"`
	Footer     string   `json:"footer,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
	Color      string   `json:"color,omitempty"`
	MrkdwnIn   []string `json:"mrkdwn_in,omitempty"`
}

// Message is one entry from conversations.history or conversations.replies.
type Message struct {
	Type        string       `json:"type,omitempty"`
	Subtype     string       `json:"subtype,omitempty"`
	TS          string       `json:"ts"`
	ThreadTS    string       `json:"thread_ts,omitempty"`
	User        string       `json:"user,omitempty"`
	BotID       string       `json:"bot_id,omitempty"`
	Username    string       `json:"username,omitempty"`
	Text        string       `json:"text,omitempty"`
	Reactions   []Reaction   `json:"reactions,omitempty"`
	Files       []File       `json:"files,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Blocks      []Block      `json:"blocks,omitempty"`
}

// MessagePage is one page of messages plus the cursor for the next one.
type MessagePage struct {
	Messages   []Message
	NextCursor string
}

type usersListResponse struct {
	apiResponse
	Members          []User           `json:"members"`
	ResponseMetadata responseMetadata `json:"response_metadata"`
}

type conversationsListResponse struct {
	apiResponse
	Channels         []Channel        `json:"channels"`
	ResponseMetadata responseMetadata `json:"response_metadata"`
}

type usergroupsListResponse struct {
	apiResponse
	Usergroups []UserGroup `json:"usergroups"`
}

type historyResponse struct {
	apiResponse
	Messages         []Message        `json:"messages"`
	HasMore          bool             `json:"has_more,omitempty"`
	ResponseMetadata responseMetadata `json:"response_metadata"`
}

type botsInfoResponse struct {
	apiResponse
	Bot Bot `json:"bot"`
}
