package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/atomicstack/viewmenu/internal/format/table"
	"github.com/atomicstack/viewmenu/internal/i18n"
	"github.com/atomicstack/viewmenu/internal/logging/events"
	"github.com/atomicstack/viewmenu/internal/menu"
	"github.com/atomicstack/viewmenu/internal/metrics"
	"github.com/atomicstack/viewmenu/internal/navigator"
	"github.com/atomicstack/viewmenu/internal/server"
	"github.com/atomicstack/viewmenu/internal/ui"
	"github.com/atomicstack/viewmenu/internal/views"
)

// Config describes user-provided application options.
type Config struct {
	Locale     string
	BundleDir  string
	Allowed    []string
	Title      string
	User       string
	Width      int
	Height     int
	ShowFooter bool
	Listen     string
	Headless   bool
	List       bool
}

// Stack is the wired menu: the demo views, the navigator they are bound to
// and the builder over both.
type Stack struct {
	Registry  *menu.ViewRegistry
	Navigator *navigator.Navigator
	Builder   *menu.Builder
	Metrics   *metrics.Menu
	Locale    language.Tag
}

// Wire builds the stack for cfg. signOut, when set, backs a custom "sign
// out" entry appended after the views.
func Wire(cfg Config, signOut func()) (*Stack, error) {
	tag := language.AmericanEnglish
	if cfg.Locale != "" {
		parsed, err := language.Parse(cfg.Locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", cfg.Locale, err)
		}
		tag = parsed
	}
	tr, err := i18n.Default()
	if err != nil {
		return nil, fmt.Errorf("load default bundles: %w", err)
	}
	if cfg.BundleDir != "" {
		if err := tr.LoadDir(cfg.BundleDir); err != nil {
			return nil, fmt.Errorf("load bundles: %w", err)
		}
	}

	reg := views.Registry()
	nav := navigator.New()
	routes := navigator.Bind(nav, reg)
	m := metrics.NewMenu()

	opts := []menu.Option{
		menu.WithTranslator(tr),
		menu.WithLocale(tag),
		menu.WithObserver(m),
	}
	if cfg.Allowed != nil {
		opts = append(opts, menu.WithAllowedViews(cfg.Allowed))
	}
	b := menu.New(reg, nav, opts...)
	if cfg.Title != "" {
		b.SetMenuTitle(cfg.Title)
	}
	if cfg.User != "" {
		b.SetSecondaryComponent(&views.UserBadge{User: cfg.User})
	}
	b.Init()
	if signOut != nil {
		b.AddMenuItem(menu.NewEntry(b.Caption("menu.signout", tag), menu.IconLock, signOut))
	}
	events.App.Wired(len(reg.Views()), routes)

	return &Stack{Registry: reg, Navigator: nav, Builder: b, Metrics: m, Locale: tag}, nil
}

// Run bootstraps the stack and runs the mode cfg selects: the table listing,
// the headless HTTP server, or the Bubble Tea program with an optional
// server alongside.
func Run(cfg Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stack, err := Wire(cfg, cancel)
	if err != nil {
		return err
	}
	if cfg.List {
		return WriteList(os.Stdout, stack.Builder)
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Listen != "" {
		srv := server.New(stack.Builder,
			server.WithAddr(cfg.Listen),
			server.WithMetrics(stack.Metrics.Handler()),
			server.WithRecorder(stack.Metrics),
		)
		g.Go(func() error { return srv.Serve(gctx) })
	}
	if cfg.Headless {
		err := g.Wait()
		events.App.Stop(err)
		return err
	}

	g.Go(func() error {
		defer cancel()
		return runProgram(gctx, cfg, stack)
	})
	err = g.Wait()
	events.App.Stop(err)
	return err
}

func runProgram(ctx context.Context, cfg Config, stack *Stack) error {
	model := ui.NewModel(stack.Builder, ui.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		Host:        &views.BackOfficeUI{},
		ToggleLabel: stack.Builder.Caption("ui.toggle", stack.Locale),
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	fwd := &forwarder{send: program.Send}
	stack.Navigator.AddViewChangeListener(fwd)
	defer stack.Navigator.RemoveViewChangeListener(fwd)

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// forwarder tells the program about navigations made elsewhere, such as over
// HTTP. Navigations started by the program itself arrive while Update is
// running, so the message is sent from its own goroutine.
type forwarder struct {
	send func(tea.Msg)
}

func (*forwarder) BeforeViewChange(menu.ViewChangeEvent) bool { return true }

func (f *forwarder) AfterViewChange(evt menu.ViewChangeEvent) {
	msg := ui.ViewChangedMsg{Route: evt.Route, View: evt.NewView}
	go f.send(msg)
}

// WriteList prints the menu as an aligned table.
func WriteList(w io.Writer, b *menu.Builder) error {
	rows := [][]string{{"ORDER", "ROUTE", "LABEL", "ICON"}}
	for _, vt := range b.AvailableViews() {
		route, _ := menu.RouteFor(vt)
		icon := b.IconFor(vt)
		rows = append(rows, []string{orderText(vt), route, b.NameFor(vt), icon.Glyph() + " " + string(icon)})
	}
	for _, e := range b.Entries() {
		if e.ID == "" {
			rows = append(rows, []string{"-", "-", e.Label, e.Icon.Glyph() + " " + string(e.Icon)})
		}
	}
	for _, line := range table.Format(rows, []table.Alignment{table.AlignRight}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write list: %w", err)
		}
	}
	return nil
}

func orderText(vt menu.ViewType) string {
	d, ok := vt.Prototype().(menu.Described)
	if !ok {
		return "0"
	}
	switch order := d.MenuItem().Order; order {
	case menu.OrderBeginning:
		return "first"
	case menu.OrderEnd:
		return "last"
	default:
		return strconv.Itoa(order)
	}
}
