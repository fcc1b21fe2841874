package intake

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Machine computes conversation transitions. It holds no per-chat state.
type Machine struct {
	content Content
	newRef  func() string
}

// MachineOption customizes a Machine.
type MachineOption func(*Machine)

// WithRefGenerator replaces the submission reference generator.
func WithRefGenerator(fn func() string) MachineOption {
	return func(m *Machine) {
		if fn != nil {
			m.newRef = fn
		}
	}
}

// NewMachine builds a Machine rendering content.
func NewMachine(content Content, opts ...MachineOption) *Machine {
	m := &Machine{content: content.WithDefaults(), newRef: shortRef}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func shortRef() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// Next returns the outcome of ev for a chat currently in cur (nil when idle).
// It is total: every pair of conversation and event has an explicit result.
func (m *Machine) Next(cur Conversation, ev Event) Outcome {
	switch e := ev.(type) {
	case Start:
		return m.start()
	case Select:
		return m.selection(cur, e)
	case Text:
		return m.text(cur, e)
	}
	return ignore("unsupported_event")
}

func (m *Machine) start() Outcome {
	return Outcome{
		Effects: []Effect{
			reply(m.content.Welcome, Keyboard{Remove: true}),
			reply(m.content.MenuPrompt, m.MainMenu()),
		},
		Reason: "start",
	}
}

func (m *Machine) selection(cur Conversation, e Select) Outcome {
	switch e.Key {
	case KeyOrder:
		return Outcome{
			Effects: []Effect{reply(m.content.AskName, Keyboard{})},
			Change:  Put,
			Next:    AwaitingName{},
			Reason:  "order_started",
		}

	case KeyConfirm:
		pending, ok := cur.(AwaitingConfirmation)
		if !ok {
			return Outcome{
				Effects: []Effect{reply(m.content.NothingToConfirm, m.MainMenu())},
				Reason:  "nothing_to_confirm",
			}
		}
		sub := pending.Submission
		sub.Ref = m.newRef()
		return Outcome{
			Effects: []Effect{
				notify(m.orderNotice(sub, e.Sender)),
				reply(m.content.Submitted, m.MainMenu()),
			},
			Change: Drop,
			Reason: "confirmed",
		}

	case KeyCancel:
		return Outcome{
			Effects: []Effect{reply(m.content.Cancelled, m.MainMenu())},
			Change:  Drop,
			Reason:  "cancelled",
		}

	case KeyHelp:
		return Outcome{
			Effects: []Effect{reply(m.content.HelpPrompt, Keyboard{})},
			Change:  Put,
			Next:    AwaitingHelpMessage{},
			Reason:  "help_started",
		}

	case KeyAbout:
		return Outcome{Effects: []Effect{reply(m.content.About, m.aboutMenu())}, Reason: "about"}

	case KeySupport:
		return Outcome{Effects: []Effect{reply(m.content.Support, m.supportMenu())}, Reason: "support"}

	case KeyMainMenu:
		return Outcome{Effects: []Effect{reply(m.content.Welcome, m.MainMenu())}, Reason: "main_menu"}
	}

	return Outcome{
		Effects: []Effect{reply(m.content.UnknownButton, m.MainMenu())},
		Reason:  "unknown_key",
	}
}

func (m *Machine) text(cur Conversation, e Text) Outcome {
	if cur == nil {
		return ignore("idle")
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return ignore("empty_text")
	}

	switch c := cur.(type) {
	case AwaitingHelpMessage:
		return Outcome{
			Effects: []Effect{
				notify(fmt.Sprintf("📩 Вопрос от %s:\n\n%s", e.Sender.Handle(), body)),
				reply(m.content.HelpSent, Keyboard{}),
			},
			Change: Drop,
			Reason: "help_forwarded",
		}

	case AwaitingName:
		return Outcome{
			Effects: []Effect{reply(m.content.AskTasks, Keyboard{})},
			Change:  Put,
			Next:    AwaitingTasks{Name: body},
			Reason:  "name_set",
		}

	case AwaitingTasks:
		return Outcome{
			Effects: []Effect{reply(m.content.AskDeadline, Keyboard{})},
			Change:  Put,
			Next:    AwaitingDeadline{Name: c.Name, Tasks: body},
			Reason:  "tasks_set",
		}

	case AwaitingDeadline:
		sub := Submission{Name: c.Name, Tasks: c.Tasks, Deadline: body}
		return Outcome{
			Effects: []Effect{reply(summary(sub), m.confirmMenu())},
			Change:  Put,
			Next:    AwaitingConfirmation{Submission: sub},
			Reason:  "deadline_set",
		}

	case AwaitingConfirmation:
		return ignore("awaiting_confirmation")
	}
	return ignore("unsupported_step")
}

// MainMenu is the navigation keyboard shown after most replies.
func (m *Machine) MainMenu() Keyboard {
	return Keyboard{Rows: [][]Button{
		{{Label: "🤖 Заказать бота", Key: KeyOrder}},
		{{Label: "👨‍💻 Узнать обо мне", Key: KeyAbout}},
		{{Label: "💰 Поддержать меня", Key: KeySupport}},
		{{Label: "❓ Помощь", Key: KeyHelp}},
	}}
}

func (m *Machine) aboutMenu() Keyboard {
	return Keyboard{Rows: [][]Button{
		{{Label: "🌐 GitHub", URL: m.content.GitHubURL}},
		{{Label: "💱 FinanceBot", URL: m.content.ProjectURL}},
		{{Label: "🖥 Мой сайт", URL: m.content.SiteURL}},
		{backButton},
	}}
}

func (m *Machine) supportMenu() Keyboard {
	return Keyboard{Rows: [][]Button{
		{{Label: "🚀 Boosty", URL: m.content.BoostyURL}},
		{backButton},
	}}
}

func (m *Machine) confirmMenu() Keyboard {
	return Keyboard{Rows: [][]Button{
		{{Label: "✅ Да", Key: KeyConfirm}},
		{{Label: "❌ Отмена", Key: KeyCancel}},
	}}
}

var backButton = Button{Label: "⬅️ В меню", Key: KeyMainMenu}

func summary(s Submission) string {
	return fmt.Sprintf("📩 Ваша заявка:\n\n👤 Имя: %s\n📝 Задачи: %s\n⏰ Срок: %s\n\nВсе верно?",
		s.Name, s.Tasks, s.Deadline)
}

func (m *Machine) orderNotice(s Submission, from Sender) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📢 Новая заявка на бота!\n\n👤 Имя: %s\n📝 Задачи: %s\n⏰ Срок: %s", s.Name, s.Tasks, s.Deadline)
	if h := from.Handle(); h != "" {
		fmt.Fprintf(&b, "\n💬 Контакт: %s", h)
	}
	if s.Ref != "" {
		fmt.Fprintf(&b, "\n🔖 Номер: %s", s.Ref)
	}
	return b.String()
}
