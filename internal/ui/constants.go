package ui

// Window defaults
const (
	AppID        = "com.ytget.ytdownloader"
	WindowWidth  = 500
	WindowHeight = 320
)

// Progress bar scale, in percent like the controller
const (
	ProgressMax = 100.0
)

// Localization fallbacks
const (
	LangSystem  = "system"
	LangDefault = "en"
)
