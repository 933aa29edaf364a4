package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		name string
		args string
		ok   bool
	}{
		{"/embed https://github.com/a/b", "embed", "https://github.com/a/b", true},
		{"  /embed   https://github.com/a/b  ", "embed", "https://github.com/a/b", true},
		{"/embed@BunnyBot https://github.com/a/b", "embed", "https://github.com/a/b", true},
		{"/embed@bunnybot https://github.com/a/b", "embed", "https://github.com/a/b", true},
		{"/embed@OtherBot https://github.com/a/b", "", "", false},
		{"/embed\nhttps://github.com/a/b", "embed", "https://github.com/a/b", true},
		{"bb!embed https://www.reddit.com/r/x/", "embed", "https://www.reddit.com/r/x/", true},
		{"bb!HELP", "help", "", true},
		{"/start", "start", "", true},
		{"/", "", "", false},
		{"bb!", "", "", false},
		{"hello /embed", "", "", false},
		{"https://github.com/a/b", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			name, args, ok := parseCommand(tt.text, "BunnyBot", "bb!")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestParseCommandWithoutPrefix(t *testing.T) {
	_, _, ok := parseCommand("bb!embed x", "", "")
	assert.False(t, ok)

	name, _, ok := parseCommand("/embed@AnyBot x", "", "")
	assert.True(t, ok)
	assert.Equal(t, "embed", name)
}

func TestFirstArg(t *testing.T) {
	assert.Equal(t, "https://a", firstArg("https://a trailing words"))
	assert.Equal(t, "", firstArg("   "))
}
