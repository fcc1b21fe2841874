package intake

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/m3rciful/portfoliobot/core/logger"
	"github.com/m3rciful/portfoliobot/core/telegram/state"
)

// Transport delivers the effects of a transition.
type Transport interface {
	// Reply sends text to the chat the event came from.
	Reply(ctx context.Context, text string, kb Keyboard) error
	// Notify sends text to another chat.
	Notify(ctx context.Context, chatID int64, text string) error
}

// Controller drives conversations for all chats.
type Controller struct {
	store      state.Store[Conversation]
	machine    *Machine
	operatorID int64
}

// NewController wires a controller. operatorID receives submissions and questions.
func NewController(store state.Store[Conversation], machine *Machine, operatorID int64) *Controller {
	return &Controller{store: store, machine: machine, operatorID: operatorID}
}

// InProgress reports whether chatID has an active conversation.
func (c *Controller) InProgress(ctx context.Context, chatID int64) (bool, error) {
	_, ok, err := c.store.Get(ctx, chatID)
	if err != nil {
		return false, fmt.Errorf("intake: load conversation: %w", err)
	}
	return ok, nil
}

// Handle applies ev to the conversation of chatID.
// Effects run in order; the state change is committed only after all of them
// succeed, so a failed send leaves the chat at its current step.
func (c *Controller) Handle(ctx context.Context, chatID int64, tr Transport, ev Event) error {
	start := time.Now()

	var cur Conversation
	if _, isStart := ev.(Start); !isStart {
		loaded, ok, err := c.store.Get(ctx, chatID)
		if err != nil {
			return fmt.Errorf("intake: load conversation: %w", err)
		}
		if ok {
			cur = loaded
		}
	}

	out := c.machine.Next(cur, ev)

	for i, eff := range out.Effects {
		if err := c.deliver(ctx, tr, eff); err != nil {
			c.logTransition(ctx, chatID, cur, ev, out, start, fmt.Errorf("effect %d: %w", i, err))
			return err
		}
	}

	if err := c.commit(ctx, chatID, out); err != nil {
		c.logTransition(ctx, chatID, cur, ev, out, start, err)
		return err
	}
	c.logTransition(ctx, chatID, cur, ev, out, start, nil)
	return nil
}

func (c *Controller) deliver(ctx context.Context, tr Transport, eff Effect) error {
	switch eff.Kind {
	case EffectReply:
		if err := tr.Reply(ctx, eff.Text, eff.Keyboard); err != nil {
			return fmt.Errorf("intake: reply: %w", err)
		}
	case EffectNotify:
		if err := tr.Notify(ctx, c.operatorID, eff.Text); err != nil {
			return fmt.Errorf("intake: notify operator: %w", err)
		}
	default:
		return fmt.Errorf("intake: unknown effect kind %d", eff.Kind)
	}
	return nil
}

func (c *Controller) commit(ctx context.Context, chatID int64, out Outcome) error {
	switch out.Change {
	case Put:
		if err := c.store.Set(ctx, chatID, out.Next); err != nil {
			return fmt.Errorf("intake: save conversation: %w", err)
		}
	case Drop:
		if err := c.store.Delete(ctx, chatID); err != nil {
			return fmt.Errorf("intake: drop conversation: %w", err)
		}
	}
	return nil
}

func (c *Controller) logTransition(ctx context.Context, chatID int64, cur Conversation, ev Event, out Outcome, start time.Time, err error) {
	level := slog.LevelDebug
	if out.Change != Keep {
		level = slog.LevelInfo
	}
	attrs := []slog.Attr{
		slog.String("event", "intake.transition"),
		slog.Int64("chat_id", chatID),
		slog.String("step_from", string(StepOf(cur))),
		slog.String("step_to", string(out.StepAfter(cur))),
		slog.String("input", eventName(ev)),
		slog.String("change", out.Change.String()),
		slog.String("reason", out.Reason),
		slog.Int("effects", len(out.Effects)),
		slog.Duration("duration", logger.Took(start)),
	}
	if sel, ok := ev.(Select); ok {
		attrs = append(attrs, slog.String("selection", sel.Key))
	}
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("status", "fail"),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	} else {
		attrs = append(attrs, slog.String("status", "ok"))
	}
	logger.Intake.LogAttrs(ctx, level, "", attrs...)
}
