package telegram

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/TheBunnyMan123/bunny-bot/bot/preview"
	"github.com/mymmrac/telego"
)

// maxDescriptionRunes keeps long self posts inside Telegram's 4096 limit.
const maxDescriptionRunes = 3000

var markdownLink = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\s)]+)\)`)

// renderDocument renders doc as Telegram HTML plus the link preview that
// carries its image or thumbnail.
func renderDocument(doc *preview.Document) (string, *telego.LinkPreviewOptions) {
	var sb strings.Builder

	if doc.Author != nil && doc.Author.Name != "" {
		sb.WriteString("<i>")
		sb.WriteString(html.EscapeString(doc.Author.Name))
		sb.WriteString("</i>\n")
	}

	title := html.EscapeString(doc.Title)
	if doc.URL != "" {
		fmt.Fprintf(&sb, "<b><a href=\"%s\">%s</a></b>", html.EscapeString(doc.URL), title)
	} else {
		fmt.Fprintf(&sb, "<b>%s</b>", title)
	}

	if desc := strings.TrimSpace(doc.Description); desc != "" {
		sb.WriteString("\n\n")
		sb.WriteString(renderInline(truncateRunes(desc, maxDescriptionRunes)))
	}

	if len(doc.Fields) > 0 {
		sb.WriteString("\n")
		for _, field := range doc.Fields {
			sb.WriteString("\n")
			if field.Label != "" {
				sb.WriteString("<b>")
				sb.WriteString(html.EscapeString(field.Label))
				sb.WriteString(":</b> ")
			}
			sb.WriteString(html.EscapeString(field.Value))
		}
	}

	return sb.String(), linkPreview(doc)
}

func linkPreview(doc *preview.Document) *telego.LinkPreviewOptions {
	switch {
	case doc.ImageURL != "":
		return &telego.LinkPreviewOptions{URL: doc.ImageURL, PreferLargeMedia: true, ShowAboveText: true}
	case doc.ThumbnailURL != "":
		return &telego.LinkPreviewOptions{URL: doc.ThumbnailURL, PreferSmallMedia: true}
	case doc.URL != "":
		return &telego.LinkPreviewOptions{URL: doc.URL}
	default:
		return &telego.LinkPreviewOptions{IsDisabled: true}
	}
}

// renderInline escapes text and turns [label](url) links into anchors. Other
// markdown stays literal.
func renderInline(text string) string {
	var sb strings.Builder
	last := 0
	for _, m := range markdownLink.FindAllStringSubmatchIndex(text, -1) {
		sb.WriteString(html.EscapeString(text[last:m[0]]))
		label := text[m[2]:m[3]]
		href := text[m[4]:m[5]]
		fmt.Fprintf(&sb, "<a href=\"%s\">%s</a>", html.EscapeString(href), html.EscapeString(label))
		last = m[1]
	}
	sb.WriteString(html.EscapeString(text[last:]))
	return sb.String()
}

func renderError(title, description string) string {
	return fmt.Sprintf("<b>%s</b>\n%s", html.EscapeString(title), html.EscapeString(description))
}

func renderHelp(commands []Command, prefix string) string {
	var sb strings.Builder
	sb.WriteString("<b>")
	sb.WriteString(helpTitle)
	sb.WriteString("</b>\n")
	for _, cmd := range commands {
		usage := prefix + cmd.Name
		for _, param := range cmd.Params {
			usage += " <" + param + ">"
		}
		desc := cmd.Description
		if desc == "" {
			desc = noDescription
		}
		fmt.Fprintf(&sb, "\n<code>%s</code>\n%s", html.EscapeString(usage), html.EscapeString(desc))
	}
	sb.WriteString("\n\nSlash forms such as /embed work too.")
	return sb.String()
}

// renderStart greets the user and lists the sites kinds can preview.
func renderStart(kinds []preview.Kind) string {
	var sb strings.Builder
	sb.WriteString(startText)
	sb.WriteString("\n\n")
	if len(kinds) == 0 {
		sb.WriteString(noSitesText)
	} else {
		sb.WriteString(sitesTitle)
		for _, kind := range kinds {
			name, ok := siteNames[kind]
			if !ok {
				name = kind.String()
			}
			sb.WriteString("\n• ")
			sb.WriteString(html.EscapeString(name))
		}
	}
	sb.WriteString("\n\n")
	sb.WriteString(startFooter)
	return sb.String()
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
