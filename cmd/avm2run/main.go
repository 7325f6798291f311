// Command avm2run is the reference host: it bootstraps a playerglobals
// system domain, loads an ABC translation unit into a user domain via
// do_abc, and runs every script's initializer through the interpreter.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/flashcore/avm2/domain"
	"github.com/flashcore/avm2/internal/logx"
	"github.com/flashcore/avm2/interp"
	"github.com/flashcore/avm2/runtime"
)

// playerConfig is the optional YAML config accepted by --config: the
// subset of player flags spec'd out for the reference host, as opposed
// to the many SWF/stage settings a real player would also read.
type playerConfig struct {
	LazyInitialize   bool `yaml:"lazyInitialize"`
	InstructionBudget int `yaml:"instructionBudget"`
	Debug            bool `yaml:"debug"`
}

func loadConfig(path string) (playerConfig, error) {
	var cfg playerConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	app := &cli.Command{
		Name:  "avm2run",
		Usage: "Run an ABC translation unit against the AVM2 interpreter",
		Commands: []*cli.Command{
			runCommand,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "avm2run: %v\n", err)
		os.Exit(1)
	}
}

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "Load and execute an ABC (or bare ABC-carrying SWF) file",
	ArgsUsage: "<file.abc>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "lazy-init",
			Usage: "Load with LazyInitialize, then run every script initializer after loading completes",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to a YAML player-flags config file",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug-level logging to stderr",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		path := cmd.Args().First()
		if path == "" {
			return fmt.Errorf("missing <file.abc> argument")
		}

		cfg, err := loadConfig(cmd.String("config"))
		if err != nil {
			return err
		}
		lazy := cmd.Bool("lazy-init") || cfg.LazyInitialize
		debug := cmd.Bool("debug") || cfg.Debug

		if debug {
			logx.SetDefaultLevel(logx.LevelDebug)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		sys := domain.NewSystemDomain()
		registry := runtime.Bootstrap(sys)
		machine := interp.NewMachine(sys, registry)

		user := domain.New(sys)

		var flags domain.Flags
		if lazy {
			flags |= domain.LazyInitialize
		}

		printBanner(path, len(data), debug)

		scripts, err := user.DoABC(data, flags, machine)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}

		if lazy {
			for _, s := range scripts {
				if err := s.EnsureInitialized(machine); err != nil {
					return fmt.Errorf("initializing script: %w", err)
				}
			}
		}

		logx.Debugf("loaded %d script(s) from %s", len(scripts), path)
		return nil
	},
}

// printBanner writes a one-line summary of what's about to run, in
// color only when stdout is an actual terminal — a CLI piped into a log
// file should never carry escape codes.
func printBanner(path string, size int, debug bool) {
	line := fmt.Sprintf("avm2run: %s (%s)", path, humanize.Bytes(uint64(size)))
	if debug && isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Printf("\x1b[36m%s\x1b[0m\n", line)
		return
	}
	fmt.Println(line)
}
