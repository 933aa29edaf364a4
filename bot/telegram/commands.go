package telegram

import (
	"strings"
	"unicode"
)

// Command describes a registered chat command.
type Command struct {
	Name        string
	Description string
	Params      []string
}

// Commands is the command menu, in help order.
var Commands = []Command{
	{Name: "embed", Description: "Embeds a URL", Params: []string{"link"}},
	{Name: "help", Description: "Displays all commands"},
	{Name: "start", Description: "Introduces the bot"},
}

// parseCommand recognizes "/name[@bot] args" and "<prefix>name args". A
// slash command addressed to another bot is rejected.
func parseCommand(text, botName, prefix string) (name, args string, ok bool) {
	text = strings.TrimSpace(text)

	var rest string
	switch {
	case strings.HasPrefix(text, "/"):
		rest = strings.TrimPrefix(text, "/")
	case prefix != "" && strings.HasPrefix(text, prefix):
		rest = strings.TrimPrefix(text, prefix)
	default:
		return "", "", false
	}

	name = rest
	if sep := strings.IndexFunc(rest, unicode.IsSpace); sep >= 0 {
		name = rest[:sep]
		args = strings.TrimSpace(rest[sep:])
	}

	if at := strings.IndexByte(name, '@'); at >= 0 {
		target := name[at+1:]
		name = name[:at]
		if botName != "" && target != "" && !strings.EqualFold(target, botName) {
			return "", "", false
		}
	}

	name = strings.ToLower(name)
	if name == "" {
		return "", "", false
	}
	return name, args, true
}

// firstArg returns the first whitespace-separated argument.
func firstArg(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
