package config_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/coffeelab/coffeelab/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type configListener struct {
	changed chan *config.Coffeelab
	failed  chan error
}

func newConfigListener() *configListener {
	return &configListener{
		changed: make(chan *config.Coffeelab, 10),
		failed:  make(chan error, 10),
	}
}

func (l *configListener) ConfigChanged(c *config.Coffeelab) { l.changed <- c }
func (l *configListener) ConfigFailed(err error)            { l.failed <- err }

func TestWatcherReload(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	cfg := config.NewConfig()
	require.NoError(t, cfg.Load(path, true))

	w, err := config.NewWatcher(cfg, nil)
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)
	l := newConfigListener()
	w.AddListener(l)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("coffeelab:\n  pageSize: 42\n"), 0600))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-l.changed:
			if c.PageSize != 42 {
				continue
			}
			assert.Equal(t, 42, cfg.Settings().PageSize)
			return
		case err := <-l.failed:
			t.Fatalf("unexpected reload failure: %v", err)
		case <-timeout:
			t.Fatal("no reload")
		}
	}
}

func TestWatcherReloadKeepsFlags(t *testing.T) {
	path := writeConfig(t, "coffeelab:\n  apiURL: http://file/api\n")
	cfg := config.NewConfig()
	require.NoError(t, cfg.Load(path, true))
	ff := config.NewFlags()
	*ff.APIURL = "http://flag/api"
	*ff.ReadOnly = true
	require.NoError(t, cfg.Refine(ff))

	w, err := config.NewWatcher(cfg, nil)
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)
	l := newConfigListener()
	w.AddListener(l)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("coffeelab:\n  apiURL: http://file/api\n  pageSize: 42\n"), 0600))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-l.changed:
			if c.PageSize != 42 {
				continue
			}
			assert.Equal(t, "http://flag/api", c.APIURL)
			assert.True(t, c.IsReadOnly())
			assert.True(t, cfg.Settings().IsReadOnly())
			return
		case err := <-l.failed:
			t.Fatalf("unexpected reload failure: %v", err)
		case <-timeout:
			t.Fatal("no reload")
		}
	}
}

func TestWatcherReloadFailure(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	cfg := config.NewConfig()
	require.NoError(t, cfg.Load(path, true))

	w, err := config.NewWatcher(cfg, nil)
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)
	l := newConfigListener()
	w.AddListener(l)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("coffeelab:\n  apiTimeout: later\n"), 0600))

	select {
	case err := <-l.failed:
		assert.ErrorIs(t, err, config.ErrConfig)
	case <-time.After(5 * time.Second):
		t.Fatal("no failure reported")
	}
}

func TestWatcherStopOnCancel(t *testing.T) {
	cfg := config.NewConfig()
	require.NoError(t, cfg.Load(writeConfig(t, sampleConfig), true))

	w, err := config.NewWatcher(cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()
	w.Stop()
}
