package router

import (
	"time"

	tg "github.com/m3rciful/portfoliobot/core/telegram"
	tghelpers "github.com/m3rciful/portfoliobot/core/telegram/helpers"
	"github.com/m3rciful/portfoliobot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Conversation is the part of a conversation controller the text router needs.
type Conversation interface {
	InProgress(c tele.Context) (bool, error)
	HandleText(c tele.Context) error
}

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	// UnknownText handles text from chats without an active conversation.
	// When nil such text is logged and dropped.
	UnknownText tele.HandlerFunc
}

// TextRoutes builds the handler for plain text messages.
func TextRoutes(conv Conversation, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		tghelpers.WithHandler(c, "conversation")

		if conv != nil {
			active, err := conv.InProgress(c)
			if err != nil {
				logHandlerSummary(c, "conversation", start, "", "", err)
				return err
			}
			if active {
				return handleWithSummary(c, "conversation", start, "", "", func() error {
					return conv.HandleText(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ignored", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}
}
