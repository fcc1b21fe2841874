package bot

import (
	"context"

	"github.com/m3rciful/portfoliobot/bot/intake"
	tghelpers "github.com/m3rciful/portfoliobot/core/telegram/helpers"
	"github.com/m3rciful/portfoliobot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// chatTransport delivers effects through the update being handled.
type chatTransport struct {
	c tele.Context
}

func (t chatTransport) Reply(_ context.Context, text string, kb intake.Keyboard) error {
	return tghelpers.SendText(t.c, text, markup(kb))
}

func (t chatTransport) Notify(_ context.Context, chatID int64, text string) error {
	return tghelpers.SendTo(t.c, chatID, text)
}

// markup converts a keyboard into telebot markup. An empty keyboard sends no markup.
func markup(kb intake.Keyboard) *tele.ReplyMarkup {
	if kb.Remove {
		return keyboard.RemoveKeyboard()
	}
	if kb.Empty() {
		return nil
	}
	rows := make([][]keyboard.Button, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		r := make([]keyboard.Button, 0, len(row))
		for _, b := range row {
			r = append(r, keyboard.Button{Text: b.Label, Data: b.Key, URL: b.URL})
		}
		rows = append(rows, r)
	}
	return keyboard.InlineRows(rows...)
}

func senderOf(c tele.Context) intake.Sender {
	u := c.Sender()
	if u == nil {
		return intake.Sender{}
	}
	return intake.Sender{ID: u.ID, Username: u.Username, FirstName: u.FirstName}
}

// chatOf returns the conversation key of the update: the chat, or the sender
// for updates that carry no chat.
func chatOf(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if u := c.Sender(); u != nil {
		return u.ID
	}
	return 0
}
