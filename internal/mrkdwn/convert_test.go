package mrkdwn

import "testing"

// mapNames implements NameSource over plain maps for testing.
type mapNames struct {
	users      map[string]string
	channels   map[string]string
	usergroups map[string]string
}

func (m *mapNames) UserName(id string) (string, bool) {
	name, ok := m.users[id]
	return name, ok
}

func (m *mapNames) ChannelName(id string) (string, bool) {
	name, ok := m.channels[id]
	return name, ok
}

func (m *mapNames) UsergroupName(id string) (string, bool) {
	name, ok := m.usergroups[id]
	return name, ok
}

func newTestConverter() *Converter {
	return NewConverter(&mapNames{
		users:      map[string]string{"U1": "Alice", "W2": "Wanda"},
		channels:   map[string]string{"C1": "general"},
		usergroups: map[string]string{"S1": "oncall"},
	})
}

func TestConvert_PlainTextUnchanged(t *testing.T) {
	c := newTestConverter()

	inputs := []string{
		"just plain text",
		"<@U1> would be a mention if this were markup",
		"*stars* and _underscores_ stay put",
		"",
	}
	for _, in := range inputs {
		if got := c.Convert(in, false); got != in {
			t.Errorf("Convert(%q, false) = %q, want unchanged", in, got)
		}
	}
}

func TestConvert_UserMention(t *testing.T) {
	c := newTestConverter()

	if got := c.Convert("<@U1> hello", true); got != "@Alice hello" {
		t.Errorf("Convert() = %q, want %q", got, "@Alice hello")
	}
	if got := c.Convert("ping <@W2>", true); got != "ping @Wanda" {
		t.Errorf("W-prefixed mention = %q, want %q", got, "ping @Wanda")
	}
}

func TestConvert_UnresolvedUserFallback(t *testing.T) {
	c := newTestConverter()

	// Deterministic across repeated calls, no side effect on other ids.
	for i := 0; i < 3; i++ {
		if got := c.Convert("<@U9>", true); got != "@user_U9" {
			t.Fatalf("Convert(<@U9>) = %q, want @user_U9", got)
		}
	}
	if got := c.Convert("<@U1>", true); got != "@Alice" {
		t.Errorf("known id after unknown = %q, want @Alice", got)
	}
}

func TestConvert_ChannelMention(t *testing.T) {
	c := newTestConverter()

	if got := c.Convert("see <#C1>", true); got != "see #general" {
		t.Errorf("Convert() = %q, want %q", got, "see #general")
	}
	if got := c.Convert("<#C9>", true); got != "#channel_C9" {
		t.Errorf("unresolved channel = %q, want #channel_C9", got)
	}
}

func TestConvert_UsergroupMention(t *testing.T) {
	c := newTestConverter()

	if got := c.Convert("<!subteam^S1>", true); got != "@oncall" {
		t.Errorf("Convert() = %q, want @oncall", got)
	}
	if got := c.Convert("<!subteam^S9>", true); got != "@usergroup_S9" {
		t.Errorf("unresolved usergroup = %q, want @usergroup_S9", got)
	}
}

func TestConvert_SpecialMentions(t *testing.T) {
	c := newTestConverter()

	cases := map[string]string{
		"<!here>":                 "@here",
		"<!channel>":              "@channel",
		"<!everyone>":             "@everyone",
		"<!date^1392734382^fell>": "1392734382",
		"<!something>":            "@!something",
	}
	for in, want := range cases {
		if got := c.Convert(in, true); got != want {
			t.Errorf("Convert(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConvert_LinkTokens(t *testing.T) {
	c := newTestConverter()

	if got := c.Convert("<https://x.test|Click>", true); got != "[Click](https://x.test)" {
		t.Errorf("labeled link = %q, want [Click](https://x.test)", got)
	}
	if got := c.Convert("<https://x.test>", true); got != "[https://x.test](https://x.test)" {
		t.Errorf("bare link = %q, want [https://x.test](https://x.test)", got)
	}
}

func TestConvert_MalformedBracketFallsThrough(t *testing.T) {
	c := newTestConverter()

	// No recognized prefix and not URL-shaped: emitted verbatim as a link,
	// never an error.
	if got := c.Convert("<garbage>", true); got != "[garbage](garbage)" {
		t.Errorf("Convert(<garbage>) = %q, want [garbage](garbage)", got)
	}
}

func TestConvert_Bold(t *testing.T) {
	c := newTestConverter()

	if got := c.Convert("this is *important* stuff", true); got != "this is **important** stuff" {
		t.Errorf("Convert() = %q", got)
	}
}

func TestConvert_ItalicPreserved(t *testing.T) {
	c := newTestConverter()

	if got := c.Convert("an _emphasized_ word", true); got != "an _emphasized_ word" {
		t.Errorf("Convert() = %q", got)
	}
}

func TestConvert_InlineCodeUnchanged(t *testing.T) {
	c := newTestConverter()

	if got := c.Convert("run `make all` now", true); got != "run `make all` now" {
		t.Errorf("Convert() = %q", got)
	}
}

func TestConvert_Blockquote(t *testing.T) {
	c := newTestConverter()

	in := ">quoted line\n> already spaced\nnot quoted"
	want := "> quoted line\n> already spaced\nnot quoted"
	if got := c.Convert(in, true); got != want {
		t.Errorf("Convert() = %q, want %q", got, want)
	}
}

func TestConvert_MentionInsideBold(t *testing.T) {
	c := newTestConverter()

	// Bracket pass runs before the emphasis pass.
	if got := c.Convert("*<@U1> says hi*", true); got != "**@Alice says hi**" {
		t.Errorf("Convert() = %q, want %q", got, "**@Alice says hi**")
	}
}
