package intake

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m3rciful/portfoliobot/core/telegram/state"
)

// ErrUnknownStep is returned when a stored conversation names a step this version does not know.
var ErrUnknownStep = errors.New("intake: unknown step")

type wireConversation struct {
	Step     Step   `json:"step"`
	Name     string `json:"name,omitempty"`
	Tasks    string `json:"tasks,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

// Codec stores conversations as flat JSON objects keyed by step.
type Codec struct{}

var _ state.Codec[Conversation] = Codec{}

// Encode implements state.Codec.
func (Codec) Encode(c Conversation) ([]byte, error) {
	var w wireConversation
	switch v := c.(type) {
	case AwaitingName:
		w = wireConversation{Step: StepAwaitingName}
	case AwaitingTasks:
		w = wireConversation{Step: StepAwaitingTasks, Name: v.Name}
	case AwaitingDeadline:
		w = wireConversation{Step: StepAwaitingDeadline, Name: v.Name, Tasks: v.Tasks}
	case AwaitingConfirmation:
		w = wireConversation{
			Step:     StepAwaitingConfirmation,
			Name:     v.Submission.Name,
			Tasks:    v.Submission.Tasks,
			Deadline: v.Submission.Deadline,
		}
	case AwaitingHelpMessage:
		w = wireConversation{Step: StepAwaitingHelpMessage}
	case nil:
		return nil, fmt.Errorf("intake: cannot encode idle conversation")
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownStep, c)
	}
	return json.Marshal(w)
}

// Decode implements state.Codec.
func (Codec) Decode(data []byte) (Conversation, error) {
	var w wireConversation
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("intake: decode conversation: %w", err)
	}
	switch w.Step {
	case StepAwaitingName:
		return AwaitingName{}, nil
	case StepAwaitingTasks:
		return AwaitingTasks{Name: w.Name}, nil
	case StepAwaitingDeadline:
		return AwaitingDeadline{Name: w.Name, Tasks: w.Tasks}, nil
	case StepAwaitingConfirmation:
		return AwaitingConfirmation{Submission: Submission{Name: w.Name, Tasks: w.Tasks, Deadline: w.Deadline}}, nil
	case StepAwaitingHelpMessage:
		return AwaitingHelpMessage{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStep, w.Step)
}
