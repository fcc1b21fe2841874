package intake

// Selection keys carried by inline buttons.
const (
	KeyOrder    = "order"
	KeyAbout    = "about"
	KeySupport  = "support"
	KeyHelp     = "help"
	KeyMainMenu = "main_menu"
	KeyConfirm  = "confirm_order"
	KeyCancel   = "cancel_order"
)

// Keys lists every selection key the machine recognizes.
func Keys() []string {
	return []string{KeyOrder, KeyAbout, KeySupport, KeyHelp, KeyMainMenu, KeyConfirm, KeyCancel}
}

// Event is an inbound update relevant to the conversation.
type Event interface {
	event()
}

// Start is the /start command.
type Start struct{}

// Select is a tap on an inline button.
type Select struct {
	Key    string
	Sender Sender
}

// Text is a plain text message. Body is untrimmed.
type Text struct {
	Body   string
	Sender Sender
}

func (Start) event()  {}
func (Select) event() {}
func (Text) event()   {}

func eventName(ev Event) string {
	switch ev.(type) {
	case Start:
		return "start"
	case Select:
		return "select"
	case Text:
		return "text"
	}
	return "unknown"
}
