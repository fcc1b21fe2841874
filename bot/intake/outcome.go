package intake

// Button is an inline button that either sends Key back or opens URL.
type Button struct {
	Label string
	Key   string
	URL   string
}

// Keyboard is the markup attached to a reply.
type Keyboard struct {
	Rows [][]Button
	// Remove hides a previously shown reply keyboard.
	Remove bool
}

// Empty reports whether the keyboard renders nothing.
func (k Keyboard) Empty() bool {
	return len(k.Rows) == 0 && !k.Remove
}

// EffectKind selects the destination of an effect.
type EffectKind int

const (
	// EffectReply sends a message to the chat the event came from.
	EffectReply EffectKind = iota + 1
	// EffectNotify sends a message to the operator.
	EffectNotify
)

// Effect is one outbound message.
type Effect struct {
	Kind     EffectKind
	Text     string
	Keyboard Keyboard
}

func reply(text string, kb Keyboard) Effect {
	return Effect{Kind: EffectReply, Text: text, Keyboard: kb}
}

func notify(text string) Effect {
	return Effect{Kind: EffectNotify, Text: text}
}

// ChangeKind says what happens to the stored conversation.
type ChangeKind int

const (
	// Keep leaves the stored conversation as it is.
	Keep ChangeKind = iota
	// Put replaces it with Outcome.Next.
	Put
	// Drop deletes it, making the chat idle.
	Drop
)

func (k ChangeKind) String() string {
	switch k {
	case Put:
		return "put"
	case Drop:
		return "drop"
	default:
		return "keep"
	}
}

// Outcome is the result of one transition.
type Outcome struct {
	Effects []Effect
	Change  ChangeKind
	Next    Conversation
	// Reason labels the transition in logs.
	Reason string
}

func ignore(reason string) Outcome {
	return Outcome{Change: Keep, Reason: reason}
}

// StepAfter returns the step the chat is in once the outcome is committed.
func (o Outcome) StepAfter(current Conversation) Step {
	switch o.Change {
	case Put:
		return StepOf(o.Next)
	case Drop:
		return StepIdle
	default:
		return StepOf(current)
	}
}
