package bot

import (
	"context"
	"fmt"

	"github.com/m3rciful/portfoliobot/bot/intake"
	"github.com/m3rciful/portfoliobot/core/bootstrap"
	"github.com/m3rciful/portfoliobot/core/buildinfo"
	"github.com/m3rciful/portfoliobot/core/cmd"
	coretelegram "github.com/m3rciful/portfoliobot/core/telegram"
	"github.com/m3rciful/portfoliobot/core/telegram/callbacks"
	"github.com/m3rciful/portfoliobot/core/telegram/commands"
	tghelpers "github.com/m3rciful/portfoliobot/core/telegram/helpers"
	"github.com/m3rciful/portfoliobot/core/telegram/router"

	tele "gopkg.in/telebot.v4"
)

// App wires the intake conversation into the Telegram runtime.
type App struct {
	cfg  *Config
	res  *bootstrap.Result[intake.Conversation]
	ctrl *intake.Controller
}

// Bootstrap initializes logging and the session store and returns the bot.
func Bootstrap(ctx context.Context, carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("bot: unexpected config type %T", carrier)
	}
	return newApp(ctx, cfg, bootstrap.Options[intake.Conversation]{})
}

func newApp(ctx context.Context, cfg *Config, opts bootstrap.Options[intake.Conversation], machineOpts ...intake.MachineOption) (*App, error) {
	opts.Config = &cfg.Config
	opts.Database = cfg.Database
	opts.Codec = intake.Codec{}

	res, err := bootstrap.Run(ctx, opts)
	if err != nil {
		return nil, err
	}
	machine := intake.NewMachine(cfg.Content, machineOpts...)
	return &App{
		cfg:  cfg,
		res:  res,
		ctrl: intake.NewController(res.Store, machine, cfg.Telegram.OperatorID),
	}, nil
}

// TelegramRunOptions registers the commands, menu callbacks and text routes.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.onStart,
		Description: "Главное меню",
	})
	reg.RegisterCommand("/version", commands.Command{
		Handler:     onVersion,
		Description: "Build version",
		AdminOnly:   true,
		Hidden:      true,
	})
	for _, key := range intake.Keys() {
		if err := reg.RegisterCallback(key, a.onSelect); err != nil {
			return coretelegram.RunOptions{}, fmt.Errorf("bot: %w", err)
		}
	}
	// Unknown keys still reach the machine, which answers with the main menu.
	reg.SetCallbackNotFound(a.onSelect)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{AdminID: a.cfg.Telegram.OperatorID})
	routes = append(routes, router.CallbackRoute(reg))
	routes = append(routes, router.TextRoutes(a, router.TextOptions{})...)

	return coretelegram.RunOptions{
		Config:      &a.cfg.Config,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(),
		Routes:      routes,
	}, nil
}

// Close releases the session store connections.
func (a *App) Close() error {
	return a.res.Close()
}

// InProgress reports whether the chat of the update is inside the form or the help flow.
func (a *App) InProgress(c tele.Context) (bool, error) {
	return a.ctrl.InProgress(tghelpers.BuildContext(c), chatOf(c))
}

// HandleText feeds a text message to the conversation.
func (a *App) HandleText(c tele.Context) error {
	return a.handle(c, intake.Text{Body: c.Text(), Sender: senderOf(c)})
}

func (a *App) onStart(c tele.Context) error {
	return a.handle(c, intake.Start{})
}

func (a *App) onSelect(c tele.Context) error {
	return a.handle(c, intake.Select{Key: callbacks.Key(c), Sender: senderOf(c)})
}

func (a *App) handle(c tele.Context, ev intake.Event) error {
	return a.ctrl.Handle(tghelpers.BuildContext(c), chatOf(c), chatTransport{c: c}, ev)
}

func onVersion(c tele.Context) error {
	return tghelpers.SendText(c, buildinfo.Summary(), nil)
}
