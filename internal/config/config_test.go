package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coffeelab/coffeelab/internal/client"
	"github.com/coffeelab/coffeelab/internal/config"
	"github.com/coffeelab/coffeelab/internal/config/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `coffeelab:
  apiURL: http://cafe:8080/api
  apiTimeout: 3s
  refreshRate: 2
  pageSize: 25
  readOnly: true
  naturalSort: true
  ui:
    timezone: UTC
  logger:
    level: debug
  views:
    sales/orders:
      pageSize: 5
      sortColumn: orderDate
      sortDesc: true
  aliases:
    cmd: sales/orders
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coffeelab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestConfigDefaults(t *testing.T) {
	cfg := config.NewConfig()
	s := cfg.Settings()

	assert.Equal(t, client.DefaultBaseURL, s.APIURL)
	assert.Equal(t, 10, s.PageSize)
	assert.Equal(t, config.DefaultView, s.ActiveView())
	assert.Equal(t, 5*time.Second, s.RefreshDuration())
	assert.False(t, s.IsReadOnly())
	assert.Equal(t, "info", s.Logger.Level)

	timeout, err := s.GetAPITimeout()
	require.NoError(t, err)
	assert.Equal(t, client.DefaultTimeout, timeout)
}

func TestConfigLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	cfg := config.NewConfig()
	require.NoError(t, cfg.Load(path, false))
	assert.Equal(t, client.DefaultBaseURL, cfg.Settings().APIURL)

	assert.Error(t, cfg.Load(path, true))
}

func TestConfigLoad(t *testing.T) {
	cfg := config.NewConfig()
	require.NoError(t, cfg.Load(writeConfig(t, sampleConfig), true))

	s := cfg.Settings()
	assert.Equal(t, "http://cafe:8080/api", s.APIURL)
	assert.Equal(t, 25, s.PageSize)
	assert.True(t, s.IsReadOnly())
	assert.True(t, s.NaturalSort)
	assert.Equal(t, "debug", s.Logger.Level)
	assert.Equal(t, "json", s.Logger.Format)
	assert.Equal(t, time.UTC, s.Location())
	assert.Equal(t, "sales/orders", s.Aliases["cmd"])

	cc, err := s.ClientConfig()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cc.Timeout)
	assert.Equal(t, "http://cafe:8080/api", cc.BaseURL)
}

func TestConfigLoadBadYAML(t *testing.T) {
	cfg := config.NewConfig()
	err := cfg.Load(writeConfig(t, "coffeelab: [\n"), true)

	assert.Error(t, err)
	assert.Equal(t, client.DefaultBaseURL, cfg.Settings().APIURL)
}

func TestConfigViewSettings(t *testing.T) {
	cfg := config.NewConfig()
	require.NoError(t, cfg.Load(writeConfig(t, sampleConfig), true))
	s := cfg.Settings()

	v := s.ViewSettings("sales/orders")
	assert.Equal(t, data.View{PageSize: 5, SortColumn: "orderDate", SortDesc: true}, v)

	v = s.ViewSettings("sales/bills")
	assert.Equal(t, data.View{PageSize: 25}, v)

	s.SetViewSettings("sales/bills", data.View{SortColumn: "billDate"})
	assert.Equal(t, data.View{PageSize: 25, SortColumn: "billDate"}, s.ViewSettings("sales/bills"))

	assert.Len(t, s.TableOptions("sales/orders"), 2)
}

func TestConfigRefine(t *testing.T) {
	uu := map[string]struct {
		flags    func(*data.Flags)
		pageSize int
		refresh  time.Duration
		readOnly bool
		view     string
	}{
		"file-wins": {
			flags:    func(*data.Flags) {},
			pageSize: 25,
			refresh:  2 * time.Second,
			readOnly: true,
			view:     config.DefaultView,
		},
		"flags-win": {
			flags: func(f *data.Flags) {
				*f.PageSize = 50
				*f.RefreshRate = 0.5
				*f.Command = "orders"
			},
			pageSize: 50,
			refresh:  500 * time.Millisecond,
			readOnly: true,
			view:     "orders",
		},
		"write-beats-read-only": {
			flags: func(f *data.Flags) {
				*f.ReadOnly = true
				*f.Write = true
			},
			pageSize: 25,
			refresh:  2 * time.Second,
			view:     config.DefaultView,
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			cfg := config.NewConfig()
			require.NoError(t, cfg.Load(writeConfig(t, sampleConfig), true))

			ff := config.NewFlags()
			u.flags(ff)
			require.NoError(t, cfg.Refine(ff))

			s := cfg.Settings()
			assert.Equal(t, u.pageSize, s.PageSize)
			assert.Equal(t, u.refresh, s.RefreshDuration())
			assert.Equal(t, u.readOnly, s.IsReadOnly())
			assert.Equal(t, u.view, s.ActiveView())
		})
	}
}

func TestConfigRefineBadTimeout(t *testing.T) {
	cfg := config.NewConfig()
	ff := config.NewFlags()
	*ff.APITimeout = "soon"

	err := cfg.Refine(ff)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfig)

	var cerr *config.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "apiTimeout", cerr.Field)
}

func TestConfigSave(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	cfg := config.NewConfig()
	require.NoError(t, cfg.Load(path, true))
	cfg.Settings().SetViewSettings("inventory/stock", data.View{PageSize: 7})
	require.NoError(t, cfg.Save(false))

	again := config.NewConfig()
	require.NoError(t, again.Load(path, true))
	assert.Equal(t, 7, again.Settings().ViewSettings("inventory/stock").PageSize)
	assert.Equal(t, 25, again.Settings().PageSize)
}

func TestConfigSaveSkipsFlags(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	cfg := config.NewConfig()
	require.NoError(t, cfg.Load(path, true))

	ff := config.NewFlags()
	*ff.APIURL = "http://flag/api"
	*ff.PageSize = 50
	*ff.Write = true
	require.NoError(t, cfg.Refine(ff))
	cfg.Settings().SetViewSettings("inventory/stock", data.View{PageSize: 7})
	require.NoError(t, cfg.Save(false))

	s := cfg.Settings()
	assert.Equal(t, "http://flag/api", s.APIURL)
	assert.Equal(t, 50, s.PageSize)
	assert.False(t, s.IsReadOnly())

	again := config.NewConfig()
	require.NoError(t, again.Load(path, true))
	saved := again.Settings()
	assert.Equal(t, "http://cafe:8080/api", saved.APIURL)
	assert.Equal(t, 25, saved.PageSize)
	assert.True(t, saved.IsReadOnly())
	assert.Equal(t, 7, saved.ViewSettings("inventory/stock").PageSize)
}

func TestConfigReload(t *testing.T) {
	path := writeConfig(t, "coffeelab:\n  apiURL: http://file/api\n")
	cfg := config.NewConfig()
	require.NoError(t, cfg.Load(path, true))

	ff := config.NewFlags()
	*ff.APIURL = "http://flag/api"
	*ff.ReadOnly = true
	require.NoError(t, cfg.Refine(ff))

	require.NoError(t, os.WriteFile(path, []byte("coffeelab:\n  apiURL: http://other/api\n  pageSize: 42\n"), 0600))
	require.NoError(t, cfg.Reload())
	s := cfg.Settings()
	assert.Equal(t, "http://flag/api", s.APIURL)
	assert.True(t, s.IsReadOnly())
	assert.Equal(t, 42, s.PageSize)

	require.NoError(t, os.WriteFile(path, []byte("coffeelab:\n  apiTimeout: later\n"), 0600))
	assert.ErrorIs(t, cfg.Reload(), config.ErrConfig)
	assert.Same(t, s, cfg.Settings())
}
