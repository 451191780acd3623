package version

// Overridden at build time via -ldflags "-X ...".
var (
	AppName = "template-discord-bot"
	Version = "dev"
)
