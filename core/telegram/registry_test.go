package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/portfoliobot/core/telegram/commands"
)

func noop(tele.Context) error { return nil }

func TestRegistryCommands(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Start"})
	reg.RegisterCommand("/version", commands.Command{Handler: noop, Description: "Build", AdminOnly: true, Hidden: true})
	reg.RegisterCommand("help", commands.Command{Handler: noop, Description: "no slash"})
	reg.RegisterCommand("/empty", commands.Command{Handler: noop})
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "dup"})

	assert.Len(t, reg.Commands(), 2)
	assert.Equal(t, "Start", reg.Commands()["/start"].Description)
	assert.Equal(t, []tele.Command{{Text: "/start", Description: "Start"}}, reg.ListCommands(true))
	assert.Len(t, reg.ListCommands(false), 2)
}

func TestRegistryCallbacks(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCallback("order", noop))
	require.NoError(t, reg.RegisterCallback("about", noop))
	assert.Error(t, reg.RegisterCallback("order", noop))
	assert.Error(t, reg.RegisterCallback("", noop))
	assert.Error(t, reg.RegisterCallback("x", nil))

	_, ok := reg.GetCallback("order")
	assert.True(t, ok)
	_, ok = reg.GetCallback("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"about", "order"}, reg.ListCallbacks())

	require.NotNil(t, reg.CallbackNotFound())
	called := false
	reg.SetCallbackNotFound(func(tele.Context) error { called = true; return nil })
	require.NoError(t, reg.CallbackNotFound()(nil))
	assert.True(t, called)
}

func TestPollerSelection(t *testing.T) {
	lp, ok := BuildPoller(PollerOptions{}).(*tele.LongPoller)
	require.True(t, ok)
	assert.Equal(t, defaultLongPollTimeout, lp.Timeout)

	wh, ok := BuildPoller(PollerOptions{
		RunMode: "Webhook",
		Webhook: WebhookOptions{Listen: "0.0.0.0", Port: 8443, URL: "https://example.org/hook"},
	}).(*tele.Webhook)
	require.True(t, ok)
	assert.Equal(t, "0.0.0.0:8443", wh.Listen)
	assert.Equal(t, "https://example.org/hook", wh.Endpoint.PublicURL)
}

func TestHTTPClientOutlivesLongPoll(t *testing.T) {
	poll := PollerOptions{LongPollTimeoutSeconds: 30}.Timeout()
	client := BuildHTTPClient(poll)
	assert.Greater(t, client.Timeout, poll)
}
