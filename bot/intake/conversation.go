// Package intake implements the order intake conversation: a short linear
// form (name, tasks, deadline) confirmed by the user and forwarded to the
// operator, plus a one-shot help question.
//
// The decision logic lives in Machine.Next, a pure function of the current
// conversation and an incoming event. Controller loads the conversation from
// a state.Store, runs the resulting effects through a Transport and only then
// commits the state change.
package intake

import (
	"strconv"
	"strings"
)

// Step names a conversation variant. The values are stored by the redis and SQL backends.
type Step string

const (
	StepAwaitingName         Step = "awaiting_name"
	StepAwaitingTasks        Step = "awaiting_tasks"
	StepAwaitingDeadline     Step = "awaiting_deadline"
	StepAwaitingConfirmation Step = "awaiting_confirmation"
	StepAwaitingHelpMessage  Step = "awaiting_help_message"
)

// StepIdle is logged for chats without a conversation. It is never stored.
const StepIdle Step = "idle"

// Conversation is the state of one chat. Each variant carries exactly the
// fields collected so far; a nil Conversation means the chat is idle.
type Conversation interface {
	Step() Step
	conversation()
}

// AwaitingName waits for the customer's name.
type AwaitingName struct{}

// AwaitingTasks waits for the task description.
type AwaitingTasks struct {
	Name string
}

// AwaitingDeadline waits for the deadline.
type AwaitingDeadline struct {
	Name  string
	Tasks string
}

// AwaitingConfirmation holds a complete submission until the user confirms or cancels it.
type AwaitingConfirmation struct {
	Submission Submission
}

// AwaitingHelpMessage waits for a free-text question to forward to the operator.
type AwaitingHelpMessage struct{}

func (AwaitingName) Step() Step         { return StepAwaitingName }
func (AwaitingTasks) Step() Step        { return StepAwaitingTasks }
func (AwaitingDeadline) Step() Step     { return StepAwaitingDeadline }
func (AwaitingConfirmation) Step() Step { return StepAwaitingConfirmation }
func (AwaitingHelpMessage) Step() Step  { return StepAwaitingHelpMessage }

func (AwaitingName) conversation()         {}
func (AwaitingTasks) conversation()        {}
func (AwaitingDeadline) conversation()     {}
func (AwaitingConfirmation) conversation() {}
func (AwaitingHelpMessage) conversation()  {}

// StepOf returns the step of c, or StepIdle for nil.
func StepOf(c Conversation) Step {
	if c == nil {
		return StepIdle
	}
	return c.Step()
}

// Submission is a completed order form. Ref is stamped when it is forwarded.
type Submission struct {
	Name     string
	Tasks    string
	Deadline string
	Ref      string
}

// Sender describes the author of an update.
type Sender struct {
	ID        int64
	Username  string
	FirstName string
}

// Handle renders the sender for the operator: @username, the first name
// when there is no username, or the numeric id as a last resort.
func (s Sender) Handle() string {
	if u := strings.TrimSpace(s.Username); u != "" {
		return "@" + u
	}
	if n := strings.TrimSpace(s.FirstName); n != "" {
		return n
	}
	if s.ID != 0 {
		return "id" + strconv.FormatInt(s.ID, 10)
	}
	return ""
}
