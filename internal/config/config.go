package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/atomicstack/viewmenu/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envLocale   = "VIEWMENU_LOCALE"
	envBundles  = "VIEWMENU_BUNDLES"
	envAllow    = "VIEWMENU_ALLOW"
	envTitle    = "VIEWMENU_TITLE"
	envUser     = "VIEWMENU_USER"
	envWidth    = "VIEWMENU_WIDTH"
	envHeight   = "VIEWMENU_HEIGHT"
	envFooter   = "VIEWMENU_FOOTER"
	envListen   = "VIEWMENU_LISTEN"
	envHeadless = "VIEWMENU_HEADLESS"
	envList     = "VIEWMENU_LIST"
	envTrace    = "VIEWMENU_TRACE"
	envLogFile  = "VIEWMENU_LOG_FILE"

	defaultLocale = "en-US"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("viewmenu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	locale := fs.String("locale", envOrDefault(env, envLocale, defaultLocale), "locale used for menu captions (BCP 47, e.g. de-AT)")
	bundles := fs.String("bundles", envOrDefault(env, envBundles, ""), "directory of extra TOML caption bundles")
	allow := fs.String("allow", envOrDefault(env, envAllow, ""), "comma separated routes to list (empty lists every view)")
	title := fs.String("title", envOrDefault(env, envTitle, ""), "menu title (empty detects it from the host)")
	user := fs.String("user", envOrDefault(env, envUser, envOrDefault(env, "USER", "")), "user shown under the title")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envFooter, false), "enable footer hint row (disabled by default)")
	listen := fs.String("listen", envOrDefault(env, envListen, ""), "serve the menu over HTTP on this address")
	headless := fs.Bool("headless", envOrBool(env, envHeadless, false), "run the HTTP server without the terminal UI")
	list := fs.Bool("list", envOrBool(env, envList, false), "print the menu as a table and exit")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			Locale:     strings.TrimSpace(*locale),
			BundleDir:  *bundles,
			Allowed:    splitList(*allow),
			Title:      *title,
			User:       *user,
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			Listen:     *listen,
			Headless:   *headless,
			List:       *list,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"locale":   *locale,
			"bundles":  *bundles,
			"allow":    *allow,
			"title":    *title,
			"user":     *user,
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"listen":   *listen,
			"headless": strconv.FormatBool(*headless),
			"list":     strconv.FormatBool(*list),
			"trace":    strconv.FormatBool(*trace),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// splitList turns a comma separated flag into routes. An empty flag means no
// restriction and yields nil.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks combinations the flag parser cannot.
func Validate(cfg Config) error {
	if _, err := language.Parse(cfg.App.Locale); err != nil {
		return fmt.Errorf("locale %q: %w", cfg.App.Locale, err)
	}
	if cfg.App.Headless && cfg.App.Listen == "" {
		return errors.New("-headless requires -listen")
	}
	return nil
}
