package keyboard

import tele "gopkg.in/telebot.v4"

// Button is an inline button that either sends a callback key or opens a URL.
type Button struct {
	Text string
	Data string
	URL  string
}

// RemoveKeyboard returns a markup that hides the keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// InlineRows builds an inline keyboard from rows of buttons.
// Buttons with a URL become link buttons; the rest carry Data as plain callback data.
func InlineRows(rows ...[]Button) *tele.ReplyMarkup {
	inline := make([][]tele.InlineButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		r := make([]tele.InlineButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				r = append(r, tele.InlineButton{Text: b.Text, URL: b.URL})
				continue
			}
			r = append(r, tele.InlineButton{Text: b.Text, Data: b.Data})
		}
		inline = append(inline, r)
	}
	return &tele.ReplyMarkup{InlineKeyboard: inline}
}
