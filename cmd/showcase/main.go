// ABOUTME: Entry point for the showcase page server
// ABOUTME: Serves the demo page and offers config, settings and calendar helpers

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/2389/showcase/internal/calendar"
	"github.com/2389/showcase/internal/clock"
	"github.com/2389/showcase/internal/config"
	"github.com/2389/showcase/internal/settings"
	"github.com/2389/showcase/internal/store"
	"github.com/2389/showcase/internal/web"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
     _
 ___| |__   _____      _____ __ _ ___  ___ 
/ __| '_ \ / _ \ \ /\ / / __/ _' / __|/ _ \
\__ \ | | | (_) \ V  V / (_| (_| \__ \  __/
|___/_| |_|\___/ \_/\_/ \___\__,_|___/\___|
`

// getConfigPath returns the path to the showcase config file.
// Priority: SHOWCASE_CONFIG env var > XDG_CONFIG_HOME/showcase/config.yaml > ~/.config/showcase/config.yaml
func getConfigPath() string {
	if envPath := os.Getenv("SHOWCASE_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "showcase", "config.yaml")
}

// getDataPath returns the path to the showcase data directory.
// Priority: XDG_DATA_HOME/showcase > ~/.local/share/showcase
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "showcase")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: showcase <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve                              Start the page server")
		fmt.Println("  init                               Create a new config file interactively")
		fmt.Println("  health                             Check server health")
		fmt.Println("  settings --profile ID [--reset]    Show (or reset) a profile's styles")
		fmt.Println("           [--unset KEY]             Remove one stored style")
		fmt.Println("  calendar [--month M] [--year Y]    Print a month grid")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit(os.Stdin, os.Stdout)
	case "health":
		err = runHealth(ctx)
	case "settings":
		err = runSettings(ctx, os.Args[2:], os.Stdout)
	case "calendar":
		err = runCalendar(os.Args[2:], os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	// Print banner
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)

	locale, err := clock.ParseLocale(cfg.Clock.Locale)
	if err != nil {
		return fmt.Errorf("clock.locale: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      http://%s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Storage:   %s", cfg.Storage.Backend)
	if cfg.Storage.Backend != store.BackendMemory {
		gray.Printf(" (%s)", cfg.Storage.Path)
	}
	fmt.Println()
	green.Print("    ▶ ")
	fmt.Printf("Clock:     %s, %s\n", locale, cfg.Clock.Location)
	fmt.Println()

	kv, err := store.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer kv.Close()

	logger.Info("starting showcase",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"storage", cfg.Storage.Backend,
	)

	srv, err := web.New(kv, web.Options{
		Locale:       locale,
		Location:     cfg.Clock.Location,
		TickInterval: cfg.Clock.TickInterval,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return srv.Run(ctx, cfg.Server.HTTPAddr)
}

func runHealth(ctx context.Context) error {
	cfg, err := config.LoadOrDefault(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	url := fmt.Sprintf("http://%s/health", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

// runSettings prints the effective styles of one profile, optionally
// resetting them or removing one stored key first. The profile ID is the
// value of the browser's showcase_profile cookie.
func runSettings(ctx context.Context, args []string, out io.Writer) error {
	flags, err := parseFlags(args, "profile", "reset", "unset")
	if err != nil {
		return err
	}
	profile := flags["profile"]
	if profile == "" {
		return fmt.Errorf("--profile flag is required")
	}
	if flags["unset"] == "true" {
		return fmt.Errorf("--unset needs a key")
	}

	cfg, err := config.LoadOrDefault(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	kv, err := store.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer kv.Close()

	return printSettings(ctx, kv, settingsOptions{
		Profile: profile,
		Reset:   flags["reset"] == "true",
		Unset:   flags["unset"],
	}, out)
}

type settingsOptions struct {
	Profile string
	Reset   bool
	Unset   string
}

func printSettings(ctx context.Context, kv store.KV, opts settingsOptions, out io.Writer) error {
	s := settings.New(kv, opts.Profile)

	var (
		st  settings.StyleSettings
		err error
	)
	switch {
	case opts.Reset:
		if st, err = s.Reset(ctx); err != nil {
			return fmt.Errorf("resetting settings: %w", err)
		}
		fmt.Fprintln(out, settings.ResetNotice)
	case opts.Unset != "":
		if st, err = s.Unset(ctx, opts.Unset); err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %s.\n", opts.Unset)
	default:
		st = s.Load(ctx)
	}

	fmt.Fprintf(out, "Profile:       %s\n", opts.Profile)
	fmt.Fprintf(out, "Primary color: %s\n", st.PrimaryColor)
	fmt.Fprintf(out, "Font size:     %dpx\n", st.FontSizePx)
	fmt.Fprintf(out, "Border radius: %dpx\n", st.BorderRadiusPx)
	fmt.Fprintf(out, "Theme:         %s\n", st.Theme)

	entries, err := s.Stored(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Stored:")
	if len(entries) == 0 {
		fmt.Fprintln(out, "  (nothing, all defaults)")
	}
	for _, e := range entries {
		fmt.Fprintf(out, "  %-13s %-10s updated %s\n", e.Key, e.Value, e.UpdatedAt.Local().Format(time.DateTime))
	}
	return nil
}

// runCalendar prints a month grid in the style of cal(1).
func runCalendar(args []string, out io.Writer) error {
	flags, err := parseFlags(args, "month", "year")
	if err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	now := time.Now().In(cfg.Clock.Location)

	month, year := now.Month(), now.Year()
	if v := flags["month"]; v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return fmt.Errorf("--month must be 1-12 (got %q)", v)
		}
		month = time.Month(m)
	}
	if v := flags["year"]; v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 || y > 9999 {
			return fmt.Errorf("--year must be 1-9999 (got %q)", v)
		}
		year = y
	}

	printCalendar(out, calendar.New(month, year, now))
	return nil
}

func printCalendar(out io.Writer, g calendar.Grid) {
	const width = 3 * 7

	pad := max((width-len(g.Label))/2, 0)
	fmt.Fprintf(out, "%s%s\n", strings.Repeat(" ", pad), g.Label)

	for _, label := range g.Weekdays {
		fmt.Fprintf(out, "%3s", label)
	}
	fmt.Fprintln(out)

	today := color.New(color.ReverseVideo)
	for _, week := range g.Weeks() {
		for _, c := range week {
			switch {
			case c.Blank():
				fmt.Fprint(out, "   ")
			case c.IsToday:
				fmt.Fprint(out, " "+today.Sprintf("%2d", c.Day))
			default:
				fmt.Fprintf(out, "%3d", c.Day)
			}
		}
		fmt.Fprintln(out)
	}
}

// parseFlags reads "--name value", "--name=value" and bare "--name" (as
// "true") for the allowed names.
func parseFlags(args []string, allowed ...string) (map[string]string, error) {
	isAllowed := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		isAllowed[name] = true
	}

	flags := make(map[string]string)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			return nil, fmt.Errorf("unexpected argument: %s", arg)
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if !isAllowed[name] {
			return nil, fmt.Errorf("unknown flag: %s", arg)
		}
		if !hasValue {
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
				value = args[i+1]
				i++
			} else {
				value = "true"
			}
		}
		flags[name] = value
	}
	return flags, nil
}

func runInit(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "showcase configuration setup")
	fmt.Fprintln(out, "============================")
	fmt.Fprintln(out)

	outputFile := prompt(reader, out, "Config file path", getConfigPath())

	if _, err := os.Stat(outputFile); err == nil {
		overwrite := strings.ToLower(prompt(reader, out, "File exists. Overwrite?", "no"))
		if overwrite != "yes" && overwrite != "y" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	fmt.Fprintln(out, "\n--- Server Configuration ---")
	httpAddr := prompt(reader, out, "HTTP address", "127.0.0.1:8080")

	fmt.Fprintln(out, "\n--- Storage Configuration ---")
	backend := prompt(reader, out, "Backend (sqlite/sqlite3/toml/memory)", store.BackendSQLite)
	defaultPath := filepath.Join(getDataPath(), "showcase.db")
	if backend == store.BackendTOML {
		defaultPath = filepath.Join(getDataPath(), "settings.toml")
	}
	storagePath := prompt(reader, out, "Storage path", defaultPath)

	fmt.Fprintln(out, "\n--- Clock Configuration ---")
	locale := prompt(reader, out, "Fallback locale (en-US/en-GB/de-DE/fr-FR/es-ES/nl-NL)", "en-US")
	timezone := prompt(reader, out, "Time zone", "Local")

	fmt.Fprintln(out, "\n--- Logging Configuration ---")
	logLevel := prompt(reader, out, "Log level (debug/info/warn/error)", "info")
	logFormat := prompt(reader, out, "Log format (text/json)", "text")

	var cfg strings.Builder
	cfg.WriteString("# showcase configuration\n")
	cfg.WriteString("# Generated by showcase init\n\n")

	cfg.WriteString("server:\n")
	cfg.WriteString(fmt.Sprintf("  http_addr: %q\n", httpAddr))
	cfg.WriteString("\n")

	cfg.WriteString("storage:\n")
	cfg.WriteString(fmt.Sprintf("  backend: %q\n", backend))
	cfg.WriteString(fmt.Sprintf("  path: %q\n", storagePath))
	cfg.WriteString("\n")

	cfg.WriteString("clock:\n")
	cfg.WriteString(fmt.Sprintf("  locale: %q\n", locale))
	cfg.WriteString(fmt.Sprintf("  timezone: %q\n", timezone))
	cfg.WriteString("  tick_interval: \"1s\"\n")
	cfg.WriteString("\n")

	cfg.WriteString("logging:\n")
	cfg.WriteString(fmt.Sprintf("  level: %q\n", logLevel))
	cfg.WriteString(fmt.Sprintf("  format: %q\n", logFormat))

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(outputFile, []byte(cfg.String()), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	// Validate what we wrote so a typo shows up now, not at serve time.
	if _, err := config.Load(outputFile); err != nil {
		return fmt.Errorf("config written to %s is invalid: %w", outputFile, err)
	}

	if backend != store.BackendMemory {
		if err := os.MkdirAll(filepath.Dir(storagePath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	fmt.Fprintf(out, "\nConfig written to %s\n", outputFile)
	fmt.Fprintln(out, "\nTo start the server:")
	fmt.Fprintln(out, "  showcase serve")

	return nil
}

func prompt(reader *bufio.Reader, out io.Writer, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(out, "%s [%s]: ", question, defaultVal)
	} else {
		fmt.Fprintf(out, "%s: ", question)
	}

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		// On EOF or error, return default
		fmt.Fprintln(out)
		return defaultVal
	}
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}
