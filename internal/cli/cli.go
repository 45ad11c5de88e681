// Package cli implements the roomml command-line interface.
//
// The CLI runs RoomML documents through [pipeline.Runner]: parsing,
// validation, layout and rendering. Results are cached locally so repeated
// runs over an unchanged document are instant.
//
// # Commands
//
//   - validate: report errors and warnings for one or more documents
//   - layout: write the computed box tree as JSON
//   - render: write SVG floor plans, DOT or graphviz box trees, and meshes
//   - fmt: rewrite a document in canonical form
//   - sample: print a two-room example document
//   - watch: re-render a document whenever it changes
//   - inspect: browse issues and boxes interactively
//   - serve: run the HTTP API with a live websocket feed
//   - cache: manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every pipeline and cache event.
//
// # Configuration
//
// Defaults are read from $XDG_CONFIG_HOME/roomml/config.toml, or the file
// named by --config. Flags override the file.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/roomml/roomml/pkg/buildinfo"
	"github.com/roomml/roomml/pkg/cache"
	apperr "github.com/roomml/roomml/pkg/errors"
	"github.com/roomml/roomml/pkg/observability"
	"github.com/roomml/roomml/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "roomml"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrValidationFailed is returned when a document has validation errors.
// The issues have already been printed; main exits with status 1 without
// printing the error again.
var ErrValidationFailed = errors.New("validation failed")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the pipeline,
// cache and HTTP events are logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Install()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "RoomML lays out and checks declarative floor plans",
		Long: `RoomML describes houses as a tree of containers, rooms, openings and
furniture. roomml measures and lays out the tree, reports geometric problems,
and renders floor plans, box trees and 3D meshes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/roomml/config.toml)")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	for _, cmd := range root.Commands() {
		if takesDocuments[cmd.Name()] {
			cmd.ValidArgsFunction = completeDocuments
		}
	}

	return root
}

// cfg returns the loaded configuration, or the defaults before loading.
func (c *CLI) cfg() *Config {
	if c.config == nil {
		return defaultConfig()
	}
	return c.config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if prefix := c.cfg().Cache.Prefix; prefix != "" {
		keyer = cache.NewScopedKeyer(nil, prefix)
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.cfg().Cache
	switch cfg.Backend {
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendRedis:
		c.Logger.Debug("using redis cache", "addr", cfg.RedisAddr)
		return cache.NewRedisCache(ctx, cfg.RedisAddr)
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/roomml/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/roomml/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Input & Output Helpers
// =============================================================================

// readSource reads a document from path, or from stdin when path is "-".
func readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields def.
func parseFormats(s string, def []string) []string {
	if s == "" {
		return def
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// formatSuffix is the file suffix written for each format. JSON outputs get
// a compound suffix so they never overwrite a .json input.
var formatSuffix = map[string]string{
	pipeline.FormatJSON: ".layout.json",
	pipeline.FormatSVG:  ".svg",
	pipeline.FormatDOT:  ".dot",
	pipeline.FormatTree: ".tree.svg",
	pipeline.FormatMesh: ".mesh.json",
}

// basePath strips the longest known output suffix from path, or else its
// extension.
func basePath(path string) string {
	longest := filepath.Ext(path)
	for _, suffix := range formatSuffix {
		if len(suffix) > len(longest) && strings.HasSuffix(path, suffix) {
			longest = suffix
		}
	}
	return strings.TrimSuffix(path, longest)
}

// outputPath derives the file written for format. A single format written
// with an explicit output goes exactly there; otherwise the output (or the
// input, for "-" the name "roomml") is used as a base path.
func outputPath(input, output, format string, single bool) string {
	if output != "" && single {
		return output
	}
	base := output
	if base == "" {
		base = input
		if base == "-" {
			base = appName
		}
	}
	return basePath(base) + formatSuffix[format]
}
