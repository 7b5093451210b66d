// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of coffeelab

package view

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/coffeelab/coffeelab/internal/dao"
	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/derailed/tview"
	"github.com/wI2L/jsondiff"
	"gopkg.in/yaml.v3"
)

// Editor errors
var (
	ErrEditorCancelled = errors.New("editor cancelled")
	ErrNoChanges       = errors.New("no changes detected")
)

const updateTimeout = 30 * time.Second

// readOnlyFields are managed by the server and never sent back.
var readOnlyFields = []string{"_id", "id", "createdAt", "updatedAt", "__v"}

// Suspender runs a function with the terminal released.
type Suspender interface {
	Suspend(func()) bool
}

var _ Suspender = (*tview.Application)(nil)

// EditSession tracks one round of editing a resource in $EDITOR.
type EditSession struct {
	ID       string
	Original map[string]any
	TempFile string
	ErrorMsg string
}

// NewEditSession prepares the editable fields of row.
func NewEditSession(row model1.Row) *EditSession {
	return &EditSession{
		ID:       row.ID(),
		Original: EditableFields(row),
	}
}

// EditableFields returns the row without its server managed fields.
func EditableFields(row model1.Row) map[string]any {
	mm := make(map[string]any, len(row))
	for k, v := range row {
		mm[k] = v
	}
	for _, k := range readOnlyFields {
		delete(mm, k)
	}

	return mm
}

// StartEdit writes the fields to a temp file, opens the editor and returns the edited fields.
func (e *EditSession) StartEdit(s Suspender) (map[string]any, error) {
	f, err := os.CreateTemp("", "coffeelab-edit-*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	e.TempFile = f.Name()
	if err := e.write(f); err != nil {
		f.Close()
		return nil, err
	}
	f.Close()

	if err := spawnEditor(s, e.TempFile); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(e.TempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	var modified map[string]any
	if err := yaml.Unmarshal(stripErrorComment(content), &modified); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	return modified, nil
}

func (e *EditSession) write(f *os.File) error {
	var buf bytes.Buffer
	if e.ErrorMsg != "" {
		buf.WriteString("# ERROR: " + strings.ReplaceAll(e.ErrorMsg, "\n", " ") + "\n")
		buf.WriteString("# Fix the issue below and save, or quit without saving to cancel.\n")
		buf.WriteString("# ---\n\n")
	}
	bb, err := yaml.Marshal(e.Original)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	buf.Write(bb)
	_, err = f.Write(buf.Bytes())

	return err
}

// Cleanup removes the temporary file.
func (e *EditSession) Cleanup() {
	if e.TempFile != "" {
		_ = os.Remove(e.TempFile)
		e.TempFile = ""
	}
}

// SetError sets the error message shown on retry.
func (e *EditSession) SetError(msg string) {
	e.ErrorMsg = msg
}

// ChangedFields returns the top level fields that differ between original and modified.
// Removed fields are sent as null.
func ChangedFields(original, modified map[string]any) (map[string]any, error) {
	patch, err := jsondiff.Compare(original, modified)
	if err != nil {
		return nil, fmt.Errorf("failed to compare: %w", err)
	}
	if len(patch) == 0 {
		return nil, ErrNoChanges
	}

	fields := make(map[string]any)
	for _, op := range patch {
		key := topLevelKey(op.Path)
		if key == "" {
			continue
		}
		fields[key] = modified[key]
	}
	if len(fields) == 0 {
		return nil, ErrNoChanges
	}

	return fields, nil
}

// topLevelKey returns the first segment of a JSON pointer.
func topLevelKey(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	key, _, _ := strings.Cut(ptr, "/")
	key = strings.ReplaceAll(key, "~1", "/")

	return strings.ReplaceAll(key, "~0", "~")
}

// EditRow edits a resource in $EDITOR and sends the changed fields.
// A rejected update reopens the editor with the error on top.
func EditRow(ctx context.Context, s Suspender, u dao.Updater, row model1.Row) error {
	session := NewEditSession(row)
	defer session.Cleanup()

	for {
		modified, err := session.StartEdit(s)
		if err != nil {
			return err
		}
		fields, err := ChangedFields(session.Original, modified)
		if errors.Is(err, ErrNoChanges) && session.ErrorMsg != "" {
			return ErrEditorCancelled
		}
		if err != nil {
			return err
		}

		uctx, cancel := context.WithTimeout(ctx, updateTimeout)
		err = u.Update(uctx, session.ID, fields)
		cancel()
		if err == nil {
			return nil
		}
		session.SetError(err.Error())
		session.Original = modified
	}
}

// EditFile opens path in the editor.
func EditFile(s Suspender, path string) error {
	return spawnEditor(s, path)
}

func spawnEditor(s Suspender, path string) error {
	var runErr error
	ok := s.Suspend(func() {
		cmd := exec.Command(editorCmd(), path)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		runErr = cmd.Run()
	})
	if !ok {
		return errors.New("failed to suspend application")
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(runErr, &exitErr):
		return ErrEditorCancelled
	case runErr != nil:
		return fmt.Errorf("editor failed: %w", runErr)
	}

	return nil
}

// editorCmd checks $EDITOR, $VISUAL then falls back to vim or nano.
func editorCmd() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	if _, err := exec.LookPath("vim"); err == nil {
		return "vim"
	}

	return "nano"
}

// stripErrorComment removes the leading comment block.
func stripErrorComment(content []byte) []byte {
	lines := bytes.Split(content, []byte("\n"))
	start := 0
	for i, line := range lines {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 || bytes.HasPrefix(trimmed, []byte("#")) {
			start = i + 1
			continue
		}
		break
	}
	if start >= len(lines) {
		return nil
	}

	return bytes.Join(lines[start:], []byte("\n"))
}
