package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler, description, and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// Public marks commands that bypass the user allowlist.
	Public bool
	Hidden bool
	Aliases []string
}
