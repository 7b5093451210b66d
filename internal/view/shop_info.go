// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 coffeelab Authors

package view

import (
	"context"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"go.uber.org/zap"
)

const infoTimeout = 5 * time.Second

// ShopInfo displays the API endpoint and server details in the header.
type ShopInfo struct {
	*tview.Table

	app     *App
	server  string
	version string
	mx      sync.RWMutex
}

// NewShopInfo creates a new shop info display component.
func NewShopInfo(app *App) *ShopInfo {
	s := ShopInfo{
		Table: tview.NewTable(),
		app:   app,
	}

	s.SetBorder(true)
	s.SetBorderColor(tcell.ColorDarkCyan)
	s.SetBorderPadding(0, 0, 1, 1)
	s.SetBackgroundColor(tcell.ColorDefault)

	return &s
}

// Init renders the header then fetches the server details.
func (s *ShopInfo) Init(ctx context.Context) error {
	s.SetSelectable(false, false)
	s.refresh()
	go s.load(ctx)

	return nil
}

func (s *ShopInfo) load(ctx context.Context) {
	f := s.app.Factory()
	if f == nil || f.Client() == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, infoTimeout)
	defer cancel()

	env, err := f.Client().Info(ctx)
	if err != nil {
		s.app.Logger().Debug("server info unavailable", zap.Error(err))
		s.app.QueueUpdateDraw(s.refresh)
		return
	}
	s.mx.Lock()
	s.server, s.version = env.Get("name").String(), env.Get("version").String()
	s.mx.Unlock()
	s.app.QueueUpdateDraw(s.refresh)
}

// refresh rebuilds the table display.
func (s *ShopInfo) refresh() {
	s.Clear()

	s.mx.RLock()
	server, version := s.server, s.version
	s.mx.RUnlock()

	url, state, color := "n/a", "offline", "red"
	if f := s.app.Factory(); f != nil && f.Client() != nil {
		url = f.Client().Config().BaseURL
		if f.Client().ConnectionOK() {
			state, color = "online", "green"
		}
	}
	if server == "" {
		server = "..."
	}
	if version != "" {
		server += " " + version
	}

	line1 := "[::b]" + url + "[-::-] [" + color + "::]" + state + "[-::]"
	s.SetCell(0, 0, tview.NewTableCell(line1).
		SetTextColor(tcell.ColorDarkCyan).
		SetAlign(tview.AlignLeft).
		SetSelectable(false))

	line2 := server + " [gray](coffeelab v" + s.app.Version() + ")[-]"
	s.SetCell(1, 0, tview.NewTableCell(line2).
		SetTextColor(tcell.ColorWhite).
		SetAlign(tview.AlignLeft).
		SetSelectable(false))
}
