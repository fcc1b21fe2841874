package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command is a slash command registered with the bot.
// AdminOnly commands answer only the operator; Hidden ones stay out of the command menu.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
}
