package telegram

import "github.com/TheBunnyMan123/bunny-bot/bot/preview"

// siteNames describes what each provider kind previews.
var siteNames = map[preview.Kind]string{
	preview.KindGitHub: "GitHub repositories (github.com/owner/repo)",
	preview.KindReddit: "Reddit posts (www.reddit.com/r/.../comments/...)",
}

const (
	errorTitle        = "Error While Running Command"
	invalidInputTitle = "Invalid Input"
	helpTitle         = "Command List"

	invalidURLText  = "Invalid URL given"
	unsupportedText = "Got unsupported url: %s"
	missingArgText  = "Failed to parse argument: missing <%s>"
	noDescription   = "No description provided"

	startText   = "Hi! Send <code>/embed &lt;link&gt;</code> and I will reply with a preview."
	sitesTitle  = "Supported links:"
	noSitesText = "No sites are enabled right now, so every link will be reported as unsupported."
	startFooter = "Use /help for the full command list."
)
