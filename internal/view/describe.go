// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package view

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coffeelab/coffeelab/internal/config"
	"github.com/coffeelab/coffeelab/internal/config/data"
	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/wI2L/jsondiff"
	"gopkg.in/yaml.v3"
)

// Describe output formats.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatDelta = "delta"
)

const describeTimeout = 10 * time.Second

// DeltaFunc returns the changes of a row since the previous refresh.
type DeltaFunc func(id string) (jsondiff.Patch, error)

// Describe displays the document of one resource.
type Describe struct {
	*tview.TextView

	app     *App
	rid     *dao.ResourceID
	id      string
	label   string
	format  string
	raw     string
	acc     dao.Accessor
	deltaFn DeltaFunc
	actions *ui.KeyActions
	mx      sync.RWMutex
}

// NewDescribe returns a new detail view of resource id.
func NewDescribe(app *App, rid *dao.ResourceID, id string) *Describe {
	d := Describe{
		TextView: tview.NewTextView(),
		app:      app,
		rid:      rid,
		id:       id,
		label:    id,
		format:   FormatJSON,
		actions:  ui.NewKeyActions(),
	}
	d.SetDynamicColors(true)
	d.SetWrap(false)
	d.SetScrollable(true)
	d.SetBorder(true)
	d.SetBorderPadding(0, 0, 1, 1)
	d.SetBorderColor(tcell.ColorAqua)
	d.SetBackgroundColor(tcell.ColorDefault)

	return &d
}

// Init initializes the view.
func (d *Describe) Init(context.Context) error {
	d.actions.Bulk(ui.KeyMap{
		ui.KeyY:        ui.NewKeyAction("YAML/JSON", d.toggleFormatCmd, true),
		ui.KeyX:        ui.NewKeyAction("Changes", d.deltaCmd, true),
		ui.KeyS:        ui.NewKeyAction("Save", d.saveCmd, true),
		tcell.KeyCtrlR: ui.NewKeyAction("Reload", d.reloadCmd, true),
		tcell.KeyEsc:   ui.NewKeyAction("Back", d.backCmd, true),
		ui.KeyQ:        ui.NewKeyAction("Back", d.backCmd, false),
	})
	d.SetInputCapture(d.keyboard)
	d.updateTitle()

	return nil
}

// Name returns the view name.
func (d *Describe) Name() string {
	return "describe:" + d.label
}

// Hints returns the menu hints.
func (d *Describe) Hints() ui.MenuHints {
	return d.actions.Hints()
}

// SetAccessor sets where the document is read from.
func (d *Describe) SetAccessor(a dao.Accessor) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.acc = a
}

// SetDeltaFn sets how row changes are computed.
func (d *Describe) SetDeltaFn(f DeltaFunc) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.deltaFn = f
}

// SetLabel sets the resource name shown in the title.
func (d *Describe) SetLabel(s string) {
	d.mx.Lock()
	defer d.mx.Unlock()
	if s != "" {
		d.label = s
	}
}

// SetFormat sets the output format.
func (d *Describe) SetFormat(f string) {
	d.mx.Lock()
	d.format = f
	d.mx.Unlock()
	d.updateTitle()
}

// Format returns the output format.
func (d *Describe) Format() string {
	d.mx.RLock()
	defer d.mx.RUnlock()
	return d.format
}

// Start loads the document.
func (d *Describe) Start() {
	d.SetText("[gray::]Loading...")
	go d.load()
}

// Stop is a no-op, the document is loaded once.
func (*Describe) Stop() {}

func (d *Describe) load() {
	d.mx.RLock()
	acc := d.acc
	d.mx.RUnlock()

	desc, ok := acc.(dao.Describer)
	if !ok {
		d.app.QueueUpdateDraw(func() {
			d.SetText(fmt.Sprintf("[red::]%s cannot be described", d.rid))
		})
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), describeTimeout)
	defer cancel()

	raw, err := desc.ToJSON(ctx, d.id)
	d.app.QueueUpdateDraw(func() {
		if err != nil {
			d.SetText("[red::]" + tview.Escape(err.Error()))
			return
		}
		d.mx.Lock()
		d.raw = raw
		d.mx.Unlock()
		d.render()
	})
}

func (d *Describe) render() {
	d.mx.RLock()
	raw, format, deltaFn := d.raw, d.format, d.deltaFn
	d.mx.RUnlock()

	var (
		text string
		err  error
	)
	switch format {
	case FormatYAML:
		text, err = toYAML(raw)
		if err == nil {
			text = highlightYAML(text)
		}
	case FormatDelta:
		if deltaFn == nil {
			err = errors.New("no change tracking for this view")
			break
		}
		var patch jsondiff.Patch
		if patch, err = deltaFn(d.id); err == nil {
			text = renderPatch(patch)
		}
	default:
		text = highlightJSON(raw)
	}
	if err != nil {
		text = "[red::]" + tview.Escape(err.Error())
	}

	d.SetText(text)
	d.updateTitle()
	d.ScrollToBeginning()
}

func (d *Describe) updateTitle() {
	d.mx.RLock()
	defer d.mx.RUnlock()
	d.SetTitle(fmt.Sprintf(" %s/%s [%s] ", d.rid, d.label, strings.ToUpper(d.format)))
}

func (d *Describe) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, _ := d.GetScrollOffset()
	if evt.Key() == tcell.KeyRune {
		switch evt.Rune() {
		case 'j':
			d.ScrollTo(row+1, 0)
			return nil
		case 'k':
			d.ScrollTo(max(row-1, 0), 0)
			return nil
		case 'g':
			d.ScrollToBeginning()
			return nil
		case 'G':
			d.ScrollToEnd()
			return nil
		}
	}
	if a, ok := d.actions.Get(ui.AsKey(evt)); ok {
		return a.Action(evt)
	}

	return evt
}

func (d *Describe) toggleFormatCmd(*tcell.EventKey) *tcell.EventKey {
	f := FormatYAML
	if d.Format() == FormatYAML {
		f = FormatJSON
	}
	d.SetFormat(f)
	d.render()

	return nil
}

func (d *Describe) deltaCmd(*tcell.EventKey) *tcell.EventKey {
	f := FormatDelta
	if d.Format() == FormatDelta {
		f = FormatJSON
	}
	d.SetFormat(f)
	d.render()

	return nil
}

func (d *Describe) reloadCmd(*tcell.EventKey) *tcell.EventKey {
	go d.load()
	return nil
}

func (d *Describe) saveCmd(*tcell.EventKey) *tcell.EventKey {
	d.mx.RLock()
	raw, label := d.raw, d.label
	d.mx.RUnlock()

	path, err := saveDump(config.AppDumpsDir, d.rid, label, raw, time.Now())
	if err != nil {
		d.app.Flash().Err(err)
		return nil
	}
	d.app.Flash().Infof("Saved %s", path)

	return nil
}

func (d *Describe) backCmd(*tcell.EventKey) *tcell.EventKey {
	d.app.back()
	return nil
}

// saveDump writes a resource document into dir and returns the file path.
func saveDump(dir string, rid *dao.ResourceID, name, raw string, at time.Time) (string, error) {
	if raw == "" {
		return "", errors.New("nothing to save")
	}
	file := fmt.Sprintf("%s-%s-%d.json", data.SanitizeFileName(rid.String()), data.SanitizeFileName(name), at.Unix())
	path := filepath.Join(dir, file)
	if err := data.EnsureFullPath(path, 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(raw+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}

	return path, nil
}

// toYAML converts a JSON document to YAML, keeping the key order.
func toYAML(raw string) (string, error) {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &n); err != nil {
		return "", fmt.Errorf("invalid document: %w", err)
	}
	clearStyle(&n)
	bb, err := yaml.Marshal(&n)
	if err != nil {
		return "", fmt.Errorf("yaml encoding failed: %w", err)
	}

	return string(bb), nil
}

// clearStyle drops the JSON flow style so the output reads as block YAML.
func clearStyle(n *yaml.Node) {
	if n.Kind != yaml.ScalarNode {
		n.Style = 0
	} else if n.Style == yaml.DoubleQuotedStyle {
		n.Style = 0
	}
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// renderPatch lists the operations of a row delta.
func renderPatch(p jsondiff.Patch) string {
	if len(p) == 0 {
		return "[gray::]No changes since the last refresh"
	}

	var b strings.Builder
	for _, op := range p {
		color := "yellow"
		switch op.Type {
		case jsondiff.OperationAdd:
			color = "green"
		case jsondiff.OperationRemove:
			color = "red"
		}
		fmt.Fprintf(&b, "[%s::b]%-8s[-::-] [aqua::]%s[-::]", color, op.Type, tview.Escape(op.Path))
		if op.Type != jsondiff.OperationRemove {
			fmt.Fprintf(&b, " %s", colorizeValue(tview.Escape(fmt.Sprint(op.Value))))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// highlightJSON colors the keys of an indented JSON document.
func highlightJSON(raw string) string {
	var b strings.Builder
	for _, line := range strings.Split(tview.Escape(raw), "\n") {
		trimmed := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(trimmed)]
		key, value, ok := strings.Cut(trimmed, `": `)
		if !ok || !strings.HasPrefix(key, `"`) {
			b.WriteString(line + "\n")
			continue
		}
		comma := ""
		if strings.HasSuffix(value, ",") {
			value, comma = strings.TrimSuffix(value, ","), ","
		}
		fmt.Fprintf(&b, "%s[aqua::]%s\"[-::]: %s%s\n", indent, key, colorizeValue(value), comma)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// highlightYAML colors the keys of a YAML document.
func highlightYAML(raw string) string {
	var b strings.Builder
	for _, line := range strings.Split(tview.Escape(raw), "\n") {
		if line == "" {
			continue
		}
		trimmed := strings.TrimLeft(line, " -")
		indent := line[:len(line)-len(trimmed)]
		key, value, ok := strings.Cut(trimmed, ":")
		if !ok || strings.ContainsAny(key, " \"") {
			b.WriteString(line + "\n")
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			fmt.Fprintf(&b, "%s[aqua::]%s:[-::]\n", indent, key)
			continue
		}
		fmt.Fprintf(&b, "%s[aqua::]%s:[-::] %s\n", indent, key, colorizeValue(value))
	}

	return b.String()
}

// colorizeValue colors a scalar by kind.
func colorizeValue(v string) string {
	s := strings.Trim(v, `"'`)
	switch {
	case s == "true":
		return "[green::]" + v + "[-::]"
	case s == "false":
		return "[red::]" + v + "[-::]"
	case s == "null" || s == "<nil>" || s == "~":
		return "[gray::]" + v + "[-::]"
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return "[fuchsia::]" + v + "[-::]"
	}
	switch strings.ToLower(s) {
	case "pending", "preparing", "low_stock":
		return "[yellow::]" + v + "[-::]"
	case "ready", "completed", "paid", "available":
		return "[green::]" + v + "[-::]"
	case "refunded", "out_of_stock", "expired":
		return "[red::]" + v + "[-::]"
	}

	return v
}
