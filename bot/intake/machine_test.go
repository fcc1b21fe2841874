package intake

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allConversations = []Conversation{
	nil,
	AwaitingName{},
	AwaitingTasks{Name: "n"},
	AwaitingDeadline{Name: "n", Tasks: "t"},
	AwaitingConfirmation{Submission: Submission{Name: "n", Tasks: "t", Deadline: "d"}},
	AwaitingHelpMessage{},
}

func allEvents() []Event {
	evs := []Event{Start{}, Text{Body: "x"}, Text{Body: " "}, Select{Key: "bogus"}}
	for _, k := range Keys() {
		evs = append(evs, Select{Key: k})
	}
	return evs
}

func TestNextIsTotal(t *testing.T) {
	m := NewMachine(Content{})
	for _, cur := range allConversations {
		for _, ev := range allEvents() {
			t.Run(fmt.Sprintf("%s/%T", StepOf(cur), ev), func(t *testing.T) {
				out := m.Next(cur, ev)
				assert.NotEmpty(t, out.Reason)
				if out.Change == Put {
					assert.NotNil(t, out.Next)
				} else {
					assert.Nil(t, out.Next)
				}
				for _, eff := range out.Effects {
					assert.NotEmpty(t, eff.Text)
				}
			})
		}
	}
}

func TestOnlyConfirmationNotifiesFromSelection(t *testing.T) {
	m := NewMachine(Content{})
	for _, cur := range allConversations {
		for _, k := range append(Keys(), "bogus") {
			out := m.Next(cur, Select{Key: k})
			notifies := 0
			for _, eff := range out.Effects {
				if eff.Kind == EffectNotify {
					notifies++
				}
			}
			_, pending := cur.(AwaitingConfirmation)
			if k == KeyConfirm && pending {
				assert.Equal(t, 1, notifies)
				assert.Equal(t, Drop, out.Change)
			} else {
				assert.Zero(t, notifies, "%s in %s", k, StepOf(cur))
			}
		}
	}
}

func TestNextDoesNotMutateInput(t *testing.T) {
	m := NewMachine(Content{}, WithRefGenerator(func() string { return "R" }))
	cur := AwaitingConfirmation{Submission: Submission{Name: "n", Tasks: "t", Deadline: "d"}}
	out := m.Next(cur, Select{Key: KeyConfirm})
	require.NotEmpty(t, out.Effects)
	assert.Empty(t, cur.Submission.Ref)
	assert.Contains(t, out.Effects[0].Text, "🔖 Номер: R")
}

func TestStepAfter(t *testing.T) {
	assert.Equal(t, StepAwaitingTasks, Outcome{Change: Put, Next: AwaitingTasks{}}.StepAfter(AwaitingName{}))
	assert.Equal(t, StepIdle, Outcome{Change: Drop}.StepAfter(AwaitingHelpMessage{}))
	assert.Equal(t, StepAwaitingName, Outcome{}.StepAfter(AwaitingName{}))
	assert.Equal(t, StepIdle, Outcome{}.StepAfter(nil))
}

func TestAboutAndSupportLinks(t *testing.T) {
	m := NewMachine(Content{BoostyURL: "https://example.org/boosty"})

	about := m.Next(nil, Select{Key: KeyAbout})
	require.Len(t, about.Effects, 1)
	rows := about.Effects[0].Keyboard.Rows
	require.Len(t, rows, 4)
	assert.Equal(t, "https://github.com/bledtwit", rows[0][0].URL)
	assert.Equal(t, KeyMainMenu, rows[3][0].Key)

	support := m.Next(nil, Select{Key: KeySupport})
	require.Len(t, support.Effects, 1)
	assert.Equal(t, "https://example.org/boosty", support.Effects[0].Keyboard.Rows[0][0].URL)
}

func TestSenderHandle(t *testing.T) {
	assert.Equal(t, "@alice", Sender{Username: "alice", FirstName: "Alice"}.Handle())
	assert.Equal(t, "Alice", Sender{FirstName: " Alice "}.Handle())
	assert.Equal(t, "id42", Sender{ID: 42}.Handle())
	assert.Empty(t, Sender{}.Handle())
}

func TestContentWithDefaults(t *testing.T) {
	c := Content{Welcome: "hi"}.WithDefaults()
	assert.Equal(t, "hi", c.Welcome)
	assert.Equal(t, DefaultContent().AskName, c.AskName)
	assert.Equal(t, DefaultContent().SiteURL, c.SiteURL)
}

func TestShortRef(t *testing.T) {
	a, b := shortRef(), shortRef()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}
