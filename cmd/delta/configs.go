package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

const (
	envOutput = "DELTA_OUTPUT"
	envColor  = "DELTA_COLOR"
	envDebug  = "DELTA_DEBUG"
)

type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`
	V bool `cli:"name=v aliases=verbose desc='log debug information to stderr'"`

	Color string `cli:"name=color desc='colorize output: auto, always or never'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// loadEnv fills in settings not given on the command line from the
// environment.
func (cfg *MainConfig) loadEnv() error {
	if !cfg.J && !cfg.Y {
		switch out := strings.ToLower(os.Getenv(envOutput)); out {
		case "", "json", "j":
		case "yaml", "y":
			cfg.Y = true
		default:
			return fmt.Errorf("%w: %s=%q, want json or yaml", cli.ErrUsage, envOutput, out)
		}
	}
	if cfg.Color == "" {
		cfg.Color = os.Getenv(envColor)
	}
	switch cfg.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("%w: color %q, want auto, always or never", cli.ErrUsage, cfg.Color)
	}
	if !cfg.V {
		if d := os.Getenv(envDebug); d != "" {
			v, err := strconv.ParseBool(d)
			if err != nil {
				return fmt.Errorf("%w: %s=%q: %w", cli.ErrUsage, envDebug, d, err)
			}
			cfg.V = v
		}
	}
	return nil
}

// useColor reports whether output written to w is colorized.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	switch cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type DiffConfig struct {
	*MainConfig
	Ignore    []string
	JSONPatch bool `cli:"name=jsonpatch aliases=p desc='output an RFC 6902 JSON Patch'"`

	Diff *cli.Command
}

func (cfg *DiffConfig) ignoreOpt(_ *cli.Context, a string) (any, error) {
	cfg.Ignore = append(cfg.Ignore, a)
	return a, nil
}

type ApplyConfig struct {
	*MainConfig
	Strict bool `cli:"name=strict aliases=s desc='reject changes that do not fit the document'"`

	Apply *cli.Command
}

type RebaseConfig struct {
	*MainConfig
	Conflicts bool `cli:"name=conflicts aliases=c desc='print the conflict bundle'"`
	Show      bool `cli:"name=show desc='show a line diff of the conflicting states'"`

	Rebase *cli.Command
}

type PathsConfig struct {
	*MainConfig

	Paths *cli.Command
}

type ExcludeConfig struct {
	*MainConfig

	Exclude *cli.Command
}
