// Package netutil classifies Telegram API failures for logs.
package netutil

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"sync"

	tele "gopkg.in/telebot.v4"
)

// Error kinds reported in the error_kind log field.
const (
	KindTimeout  = "timeout"
	KindNetwork  = "network"
	KindAPI      = "api"
	KindCanceled = "canceled"
	KindInternal = "internal"
)

// ClassifyError maps err to a coarse kind.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return KindAPI
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindNetwork
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindNetwork
	}
	return KindInternal
}

var (
	secretsMu sync.RWMutex
	secrets   []string
)

// RegisterSecret makes Redact hide value from log output.
func RegisterSecret(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	secretsMu.Lock()
	defer secretsMu.Unlock()
	for _, s := range secrets {
		if s == value {
			return
		}
	}
	secrets = append(secrets, value)
}

// Redact removes every registered secret from s. API URLs embed the bot token in the path.
func Redact(s string) string {
	secretsMu.RLock()
	defer secretsMu.RUnlock()
	for _, secret := range secrets {
		s = strings.ReplaceAll(s, secret, "<redacted>")
	}
	return s
}
