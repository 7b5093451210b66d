// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package view

import (
	"fmt"
	"strings"

	"github.com/coffeelab/coffeelab/internal/config"
	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/slogs"
	"github.com/coffeelab/coffeelab/internal/ui"
	"go.uber.org/zap"
)

// Built-in commands, matched before aliases.
const (
	cmdHelp    = "help"
	cmdAliases = "aliases"
	cmdConfig  = "config"
	cmdQuit    = "quit"
	cmdQ       = "q"
)

var builtinCommands = []string{cmdHelp, cmdAliases, cmdConfig, cmdQuit}

// Command handles user command interpretation and execution.
type Command struct {
	app *App
}

// NewCommand creates a new command interpreter.
func NewCommand(app *App) *Command {
	return &Command{app: app}
}

// Run parses and executes a command.
func (c *Command) Run(cmd string) error {
	cmd = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), ":")))
	if cmd == "" {
		return c.Run(config.DefaultView)
	}
	c.app.Logger().Debug("running command", zap.String(slogs.Command, cmd))

	switch cmd {
	case cmdHelp, "?", "h":
		return c.helpCmd()
	case cmdAliases, "alias":
		return c.app.push(NewAliasView(c.app))
	case cmdConfig:
		return c.configCmd()
	case cmdQuit, cmdQ, "q!":
		c.app.Stop()
		return nil
	}

	target, ok := c.app.Aliases().Resolve(cmd)
	if !ok {
		return fmt.Errorf("unknown command %q", cmd)
	}

	return c.gotoCmd(target)
}

// gotoCmd replaces the view stack with the target screen.
func (c *Command) gotoCmd(target string) error {
	if target == config.DefaultView {
		return c.app.inject(NewDashboard(c.app))
	}

	var rid dao.ResourceID
	if err := rid.Parse(target); err != nil {
		return err
	}
	if _, err := dao.AccessorFor(c.app.Factory(), &rid); err != nil {
		return fmt.Errorf("unknown resource %q", target)
	}
	if err := c.app.inject(NewBrowser(c.app, &rid)); err != nil {
		return fmt.Errorf("failed to open %s: %w", rid, err)
	}

	return nil
}

func (c *Command) helpCmd() error {
	top := c.app.stack.Top()
	if _, ok := top.(*Help); ok {
		return nil
	}
	var hints ui.MenuHints
	if h, ok := top.(ui.Hinter); ok {
		hints = h.Hints()
	}

	return c.app.push(NewHelp(c.app, hints))
}

func (c *Command) configCmd() error {
	path := c.app.Config().Path()
	if err := EditFile(c.app.Application, path); err != nil {
		return fmt.Errorf("config edit failed: %w", err)
	}
	c.app.Flash().Infof("Saved %s", path)

	return nil
}
