package callbacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		cb      *tele.Callback
		key     string
		payload string
	}{
		{"nil", nil, "", ""},
		{"plain", &tele.Callback{Data: "order"}, "order", ""},
		{"unique", &tele.Callback{Unique: "order", Data: "x"}, "order", "x"},
		{"encoded", &tele.Callback{Data: "\fconfirm_order|42"}, "confirm_order", "42"},
		{"padded", &tele.Callback{Data: " help "}, "help", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, payload := Parse(tc.cb)
			assert.Equal(t, tc.key, key)
			assert.Equal(t, tc.payload, payload)
		})
	}
}
