package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/showcase/internal/calendar"
	"github.com/2389/showcase/internal/config"
	"github.com/2389/showcase/internal/settings"
	"github.com/2389/showcase/internal/store"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("SHOWCASE_CONFIG", "/etc/showcase.yaml")
	assert.Equal(t, "/etc/showcase.yaml", getConfigPath())

	t.Setenv("SHOWCASE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "showcase", "config.yaml"), getConfigPath())
}

func TestGetDataPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	assert.Equal(t, filepath.Join("/tmp/data", "showcase"), getDataPath())
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    map[string]string
		wantErr string
	}{
		{"separate value", []string{"--profile", "abc"}, map[string]string{"profile": "abc"}, ""},
		{"equals value", []string{"--profile=abc"}, map[string]string{"profile": "abc"}, ""},
		{"bare switch", []string{"--profile", "abc", "--reset"}, map[string]string{"profile": "abc", "reset": "true"}, ""},
		{"switch before flag", []string{"--reset", "--profile", "abc"}, map[string]string{"profile": "abc", "reset": "true"}, ""},
		{"unknown flag", []string{"--color", "red"}, nil, "unknown flag"},
		{"positional", []string{"abc"}, nil, "unexpected argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args, "profile", "reset")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintCalendar(t *testing.T) {
	var out bytes.Buffer
	today := time.Date(2024, time.February, 15, 9, 0, 0, 0, time.UTC)
	printCalendar(&out, calendar.New(time.February, 2024, today))

	want := strings.Join([]string{
		"    February 2024",
		"  S  M  T  W  T  F  S",
		"              1  2  3",
		"  4  5  6  7  8  9 10",
		" 11 12 13 14 15 16 17",
		" 18 19 20 21 22 23 24",
		" 25 26 27 28 29",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestPrintSettings(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()

	_, err := settings.New(kv, "p1").SetTheme(ctx, settings.ThemeDark)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printSettings(ctx, kv, settingsOptions{Profile: "p1"}, &out))
	assert.Contains(t, out.String(), "Theme:         dark\n")
	assert.Contains(t, out.String(), "Primary color: #4361ee\n")
	assert.Regexp(t, `(?m)^  theme\s+dark\s+updated \d{4}-\d{2}-\d{2} `, out.String())

	out.Reset()
	require.NoError(t, printSettings(ctx, kv, settingsOptions{Profile: "p1", Reset: true}, &out))
	assert.Contains(t, out.String(), settings.ResetNotice)
	assert.Contains(t, out.String(), "Theme:         light\n")
	assert.Contains(t, out.String(), "(nothing, all defaults)")
	assert.Equal(t, settings.Defaults(), settings.New(kv, "p1").Load(ctx))
}

func TestPrintSettingsUnset(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()

	s := settings.New(kv, "p1")
	_, err := s.SetTheme(ctx, settings.ThemeDark)
	require.NoError(t, err)
	_, err = s.SetFontSize(ctx, 22)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printSettings(ctx, kv, settingsOptions{Profile: "p1", Unset: settings.KeyTheme}, &out))
	assert.Contains(t, out.String(), "Removed theme.\n")
	assert.Contains(t, out.String(), "Theme:         light\n")
	assert.Contains(t, out.String(), "Font size:     22px\n")
	assert.NotRegexp(t, `(?m)^  theme\s`, out.String())
	assert.Regexp(t, `(?m)^  fontSize\s+22\s+updated `, out.String())

	err = printSettings(ctx, kv, settingsOptions{Profile: "p1", Unset: "fontFamily"}, &out)
	assert.ErrorIs(t, err, settings.ErrInvalidValue)
}

func TestRunInitWritesValidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("SHOWCASE_CONFIG", "")

	// Accept every default except the backend and log format.
	answers := strings.Join([]string{"", "", "toml", "", "", "UTC", "debug", "json"}, "\n") + "\n"

	var out bytes.Buffer
	require.NoError(t, runInit(strings.NewReader(answers), &out))

	path := filepath.Join(dir, "config", "showcase", "config.yaml")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, store.BackendTOML, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(dir, "data", "showcase", "settings.toml"), cfg.Storage.Path)
	assert.Equal(t, "UTC", cfg.Clock.Timezone)
	assert.Equal(t, time.Second, cfg.Clock.TickInterval)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.DirExists(t, filepath.Join(dir, "data", "showcase"))
}

func TestRunInitKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))
	t.Setenv("SHOWCASE_CONFIG", path)

	var out bytes.Buffer
	require.NoError(t, runInit(strings.NewReader("\nno\n"), &out))
	assert.Contains(t, out.String(), "Aborted.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestColorHandler(t *testing.T) {
	var out bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "warn", Format: "text"}, &out)

	logger.Info("hidden")
	logger.With("component", "web").WithGroup("req").Warn("slow", "ms", 250)

	line := out.String()
	assert.NotContains(t, line, "hidden")
	assert.Contains(t, line, "WRN slow component=web req.ms=250")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestJSONLogger(t *testing.T) {
	var out bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "debug", Format: "json"}, &out)

	logger.Debug("hello", "k", "v")
	assert.Contains(t, out.String(), `"msg":"hello"`)
	assert.Contains(t, out.String(), `"level":"DEBUG"`)
	_, isJSON := logger.Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)
}
