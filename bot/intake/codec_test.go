package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	for _, c := range allConversations[1:] {
		t.Run(string(c.Step()), func(t *testing.T) {
			data, err := Codec{}.Encode(c)
			require.NoError(t, err)
			got, err := Codec{}.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, c, got)
		})
	}
}

func TestCodecWireFormat(t *testing.T) {
	data, err := Codec{}.Encode(AwaitingDeadline{Name: "Alice", Tasks: "bot"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"step":"awaiting_deadline","name":"Alice","tasks":"bot"}`, string(data))
}

func TestCodecRejects(t *testing.T) {
	_, err := Codec{}.Decode([]byte(`{"step":"awaiting_payment"}`))
	assert.ErrorIs(t, err, ErrUnknownStep)

	_, err = Codec{}.Decode([]byte(`not json`))
	assert.Error(t, err)

	_, err = Codec{}.Encode(nil)
	assert.Error(t, err)
}
