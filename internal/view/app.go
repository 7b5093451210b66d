// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package view

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/coffeelab/coffeelab/internal/config"
	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/model"
	"github.com/coffeelab/coffeelab/internal/slogs"
	"github.com/coffeelab/coffeelab/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"go.uber.org/zap"
)

const mainPage = "main"

// App represents the coffeelab terminal application.
type App struct {
	*tview.Application

	Main    *tview.Pages
	Content *ui.Pages

	version  string
	cfg      *config.Config
	factory  dao.Factory
	log      *zap.Logger
	stack    *model.Stack
	command  *Command
	aliases  *config.Aliases
	hotKeys  *config.HotKeys
	watcher  *config.Watcher
	cmdBar   *ui.CmdBar
	menu     *ui.Menu
	crumbs   *ui.Crumbs
	flash    *ui.Flash
	info     *ShopInfo
	cancelFn context.CancelFunc
	running  bool
	mx       sync.RWMutex
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, f dao.Factory, log *zap.Logger, version string) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := App{
		Application: tview.NewApplication(),
		Main:        tview.NewPages(),
		Content:     ui.NewPages(),
		version:     version,
		cfg:         cfg,
		factory:     f,
		log:         log.Named("view"),
		stack:       model.NewStack(),
		aliases:     config.NewAliases(),
		hotKeys:     config.NewHotKeys(),
		cmdBar:      ui.NewCmdBar(),
		menu:        ui.NewMenu(),
		flash:       ui.NewFlash(),
	}
	a.crumbs = ui.NewCrumbs(a.stack)
	a.info = NewShopInfo(&a)
	a.command = NewCommand(&a)
	a.flash.SetQueueFn(a.QueueUpdateDraw)

	a.cmdBar.SetActiveFn(func(active bool) {
		if active {
			a.SetFocus(a.cmdBar)
			return
		}
		a.focusTop()
	})
	a.cmdBar.SetCommandFn(func(cmd string) {
		if err := a.command.Run(cmd); err != nil {
			a.flash.Err(err)
		}
	})
	a.cmdBar.SetFilterFn(a.applyFilter)
	a.cmdBar.SetCancelFn(func() { a.applyFilter("") })

	return &a
}

// Init loads aliases and hotkeys, starts the config watcher and builds the layout.
func (a *App) Init(ctx context.Context) error {
	if err := a.aliases.Load(); err != nil {
		a.log.Warn("aliases load failed", zap.Error(err))
	}
	a.aliases.MergeMap(a.Settings().Aliases)
	if err := a.hotKeys.Load(); err != nil {
		a.log.Warn("hotkeys load failed", zap.Error(err))
	}
	a.cmdBar.AddCommands(a.commandNames())

	a.stack.AddListener(a)
	a.stack.AddListener(a.menu)
	if !a.Settings().UI.Crumbsless {
		a.stack.AddListener(a.crumbs)
	}

	ctx, cancel := context.WithCancel(ctx)
	a.mx.Lock()
	a.cancelFn = cancel
	a.mx.Unlock()

	if w, err := config.NewWatcher(a.cfg, a.log); err != nil {
		a.log.Warn("config watcher disabled", zap.Error(err))
	} else {
		a.watcher = w
		w.AddListener(a)
		if err := w.Start(ctx); err != nil {
			a.log.Warn("config watcher start failed", zap.Error(err))
		}
	}

	if err := a.info.Init(ctx); err != nil {
		return fmt.Errorf("shop info init failed: %w", err)
	}
	a.EnableMouse(a.Settings().UI.EnableMouse)
	a.SetInputCapture(a.keyboard)
	a.Main.AddPage(mainPage, a.layout(), true, true)
	a.SetRoot(a.Main, true)

	return nil
}

// Run shows the startup view and runs the event loop.
func (a *App) Run() error {
	a.mx.Lock()
	a.running = true
	a.mx.Unlock()

	if a.IsReadOnly() {
		a.flash.Warn("Read-only mode, mutations are disabled")
	}
	if err := a.command.Run(a.Settings().ActiveView()); err != nil {
		a.log.Warn("startup view failed", zap.String(slogs.Command, a.Settings().ActiveView()), zap.Error(err))
		a.flash.Err(err)
		if err := a.command.Run(config.DefaultView); err != nil {
			return err
		}
	}

	return a.Application.Run()
}

// Stop stops the active view, persists the settings and terminates the app.
func (a *App) Stop() {
	a.mx.Lock()
	a.running = false
	cancel := a.cancelFn
	a.cancelFn = nil
	a.mx.Unlock()

	if top := a.stack.Top(); top != nil {
		top.Stop()
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if cancel != nil {
		cancel()
	}
	if err := a.cfg.Save(false); err != nil {
		a.log.Warn("config save failed", zap.Error(err))
	}
	a.Application.Stop()
}

// IsRunning returns whether the application is currently running.
func (a *App) IsRunning() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return a.running
}

// Settings returns the active settings.
func (a *App) Settings() *config.Coffeelab {
	return a.cfg.Settings()
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// IsReadOnly returns true when mutations are disabled.
func (a *App) IsReadOnly() bool {
	return a.Settings().IsReadOnly()
}

// Factory returns the data access factory.
func (a *App) Factory() dao.Factory {
	return a.factory
}

// Logger returns the view logger.
func (a *App) Logger() *zap.Logger {
	return a.log
}

// Flash returns the flash message handler.
func (a *App) Flash() *ui.Flash {
	return a.flash
}

// Aliases returns the command aliases.
func (a *App) Aliases() *config.Aliases {
	return a.aliases
}

// HotKeys returns the custom hotkeys.
func (a *App) HotKeys() *config.HotKeys {
	return a.hotKeys
}

// Version returns the application version.
func (a *App) Version() string {
	return a.version
}

// QueueUpdateDraw queues a function to be executed on the UI thread.
func (a *App) QueueUpdateDraw(fn func()) {
	go a.Application.QueueUpdateDraw(fn)
}

// inject replaces the views with c.
func (a *App) inject(c ui.Component) error {
	if err := c.Init(context.Background()); err != nil {
		return fmt.Errorf("%s init failed: %w", c.Name(), err)
	}
	a.stack.Clear()
	a.stack.Push(c)

	return nil
}

// push stacks c on top of the current view.
func (a *App) push(c ui.Component) error {
	if err := c.Init(context.Background()); err != nil {
		return fmt.Errorf("%s init failed: %w", c.Name(), err)
	}
	a.stack.Push(c)

	return nil
}

// back returns to the previous view. The last view stays put.
func (a *App) back() {
	if a.stack.IsLast() || a.stack.Empty() {
		return
	}
	a.stack.Pop()
}

// StackPushed implements model.StackListener.
func (a *App) StackPushed(c model.Component) {
	comp, ok := c.(ui.Component)
	if !ok {
		return
	}
	a.Content.Push(c.Name(), comp)
	a.SetFocus(comp)
}

// StackPopped implements model.StackListener.
func (a *App) StackPopped(_, top model.Component) {
	a.Content.Pop()
	if top != nil {
		a.focusTop()
	}
}

// StackTop implements model.StackListener.
func (*App) StackTop(model.Component) {}

// ConfigChanged implements config.ConfigListener.
func (a *App) ConfigChanged(s *config.Coffeelab) {
	a.aliases.MergeMap(s.Aliases)
	a.cmdBar.AddCommands(a.commandNames())
	a.flash.Info("Configuration reloaded")
	a.QueueUpdateDraw(func() { a.info.refresh() })
}

// ConfigFailed implements config.ConfigListener.
func (a *App) ConfigFailed(err error) {
	a.log.Warn("config reload failed", zap.Error(err))
	a.QueueUpdateDraw(func() {
		ui.ErrorDialog(a.Content, "Config reload failed\n\n"+err.Error()).Show()
	})
}

func (a *App) focusTop() {
	if top, ok := a.stack.Top().(tview.Primitive); ok {
		a.SetFocus(top)
		return
	}
	a.SetFocus(a.Content)
}

// commandNames lists what the command bar can complete.
func (a *App) commandNames() []string {
	ss := append([]string{}, builtinCommands...)
	for _, aa := range a.aliases.ShortNames() {
		ss = append(ss, aa...)
	}
	sort.Strings(ss)

	return ss
}

func (a *App) layout() *tview.Flex {
	bottom := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.flash, 1, 0, false).
		AddItem(a.menu, 2, 0, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow)
	opts := a.Settings().UI
	if !opts.Headless {
		main.AddItem(a.info, 3, 0, false)
	}
	main.AddItem(a.cmdBar, 3, 0, false)
	main.AddItem(a.Content, 0, 1, true)
	if !opts.Crumbsless {
		main.AddItem(a.crumbs, 1, 0, false)
	}
	main.AddItem(bottom, 3, 0, false)

	return main
}

func (a *App) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if a.cmdBar.IsActive() || a.Content.HasModal() {
		return evt
	}

	if evt.Key() == tcell.KeyRune {
		switch evt.Rune() {
		case ':':
			a.cmdBar.Activate(ui.ModeCommand)
			return nil
		case '?':
			if err := a.command.Run("help"); err != nil {
				a.flash.Err(err)
			}
			return nil
		}
	}
	if evt.Key() == tcell.KeyCtrlC {
		a.Stop()
		return nil
	}
	if hk, ok := a.hotKey(evt); ok {
		if err := a.command.Run(hk.Command); err != nil {
			a.flash.Err(err)
		}
		return nil
	}

	return evt
}

// hotKey finds the custom hotkey bound to evt.
func (a *App) hotKey(evt *tcell.EventKey) (*config.HotKey, bool) {
	return a.hotKeys.Lookup(ui.KeyName(ui.AsKey(evt)))
}

// activateSearch opens the search prompt with the current term.
func (a *App) activateSearch(term string) {
	a.cmdBar.ActivateWith(ui.ModeFilter, term)
}

// applyFilter searches the top view when it supports it.
func (a *App) applyFilter(term string) {
	f, ok := a.stack.Top().(interface{ SetFilter(string) })
	if !ok {
		return
	}
	a.QueueUpdateDraw(func() { f.SetFilter(term) })
}
