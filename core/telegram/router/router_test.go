package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/portfoliobot/core/telegram"
	"github.com/m3rciful/portfoliobot/core/telegram/commands"
)

// offlineCtx answers callbacks with an error, like a transient API failure.
type offlineCtx struct {
	tele.Context
	responded int
}

func (o *offlineCtx) Respond(...*tele.CallbackResponse) error {
	o.responded++
	return errors.New("answerCallbackQuery: network down")
}

func newCtx(t *testing.T, upd tele.Update) *offlineCtx {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return &offlineCtx{Context: b.NewContext(upd)}
}

func callbackUpdate(data string) tele.Update {
	user := &tele.User{ID: 3}
	return tele.Update{
		ID: 1,
		Callback: &tele.Callback{
			ID:      "cb",
			Sender:  user,
			Data:    data,
			Message: &tele.Message{Chat: &tele.Chat{ID: 3}},
		},
	}
}

func textUpdate(userID int64, text string) tele.Update {
	return tele.Update{
		ID: 2,
		Message: &tele.Message{
			Sender: &tele.User{ID: userID},
			Chat:   &tele.Chat{ID: userID},
			Text:   text,
		},
	}
}

func TestCallbackRouteDispatchesByKey(t *testing.T) {
	reg := tg.NewRegistry()
	var got string
	require.NoError(t, reg.RegisterCallback("order", func(tele.Context) error { got = "order"; return nil }))
	reg.SetCallbackNotFound(func(tele.Context) error { got = "fallback"; return nil })

	route := CallbackRoute(reg)
	assert.Equal(t, tele.OnCallback, route.Endpoint)

	c := newCtx(t, callbackUpdate("order"))
	require.NoError(t, route.Handler(c))
	assert.Equal(t, "order", got)
	assert.Equal(t, 1, c.responded, "callback is acknowledged even when the answer fails")

	c = newCtx(t, callbackUpdate("\fsomething|x"))
	require.NoError(t, route.Handler(c))
	assert.Equal(t, "fallback", got)
	assert.Equal(t, 1, c.responded)
}

func TestCallbackRoutePropagatesHandlerError(t *testing.T) {
	reg := tg.NewRegistry()
	boom := errors.New("send failed")
	require.NoError(t, reg.RegisterCallback("order", func(tele.Context) error { return boom }))

	err := CallbackRoute(reg).Handler(newCtx(t, callbackUpdate("order")))
	assert.ErrorIs(t, err, boom)
}

type fakeConversation struct {
	active  map[int64]bool
	handled int
	err     error
}

func (f *fakeConversation) InProgress(c tele.Context) (bool, error) {
	return f.active[c.Chat().ID], f.err
}

func (f *fakeConversation) HandleText(tele.Context) error {
	f.handled++
	return nil
}

func TestTextRoutes(t *testing.T) {
	conv := &fakeConversation{active: map[int64]bool{1: true}}
	var unknown int
	routes := TextRoutes(conv, TextOptions{})
	require.Len(t, routes, 1)
	h := routes[0].Handler

	require.NoError(t, h(newCtx(t, textUpdate(1, "Alice"))))
	require.NoError(t, h(newCtx(t, textUpdate(2, "hi"))))
	assert.Equal(t, 1, conv.handled)

	withFallback := TextRoutes(conv, TextOptions{UnknownText: func(tele.Context) error { unknown++; return nil }})[0].Handler
	require.NoError(t, withFallback(newCtx(t, textUpdate(2, "hi"))))
	assert.Equal(t, 1, unknown)

	conv.err = errors.New("redis down")
	assert.Error(t, h(newCtx(t, textUpdate(1, "Alice"))))
	assert.Equal(t, 1, conv.handled)
}

func TestCommandRoutesGuardOperatorCommands(t *testing.T) {
	reg := tg.NewRegistry()
	var calls []string
	reg.RegisterCommand("/start", commands.Command{Description: "Start", Handler: func(tele.Context) error {
		calls = append(calls, "start")
		return nil
	}})
	reg.RegisterCommand("/version", commands.Command{Description: "Build", AdminOnly: true, Hidden: true, Handler: func(tele.Context) error {
		calls = append(calls, "version")
		return nil
	}})

	routes := CommandRoutes(reg, CommandRouteOptions{AdminID: 99})
	require.Len(t, routes, 2)
	byEndpoint := map[any]tele.HandlerFunc{}
	for _, r := range routes {
		byEndpoint[r.Endpoint] = r.Handler
	}

	require.NoError(t, byEndpoint["/start"](newCtx(t, textUpdate(5, "/start"))))
	require.NoError(t, byEndpoint["/version"](newCtx(t, textUpdate(5, "/version"))))
	require.NoError(t, byEndpoint["/version"](newCtx(t, textUpdate(99, "/version"))))
	assert.Equal(t, []string{"start", "version"}, calls)
}

func TestDeriveErrorCode(t *testing.T) {
	assert.Empty(t, deriveErrorCode(nil))
	assert.Equal(t, "ERRORSTRING", deriveErrorCode(errors.New("x")))
	assert.Equal(t, "ERROR", deriveErrorCode(tele.ErrBlockedByUser))
}

func TestNormalizeHandlerName(t *testing.T) {
	assert.Equal(t, "unknown", normalizeHandlerName(" "))
	assert.Equal(t, "version", normalizeHandlerName("/Version"))
	assert.Equal(t, "confirm_order", normalizeHandlerName("confirm order"))
}
