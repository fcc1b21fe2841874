package helpers

import (
	tele "gopkg.in/telebot.v4"
)

// SendText sends raw text (no parse mode) to the current chat.
func SendText(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if markup != nil {
		return c.Send(text, &tele.SendOptions{ReplyMarkup: markup, DisableWebPagePreview: true})
	}
	return c.Send(text, &tele.SendOptions{DisableWebPagePreview: true})
}

// SendTo sends raw text to an arbitrary chat, bypassing the update context.
func SendTo(c tele.Context, chatID int64, text string) error {
	_, err := c.Bot().Send(tele.ChatID(chatID), text, &tele.SendOptions{DisableWebPagePreview: true})
	return err
}
