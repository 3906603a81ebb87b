package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"i3blk/block"
	"i3blk/core"
	"i3blk/sysinfo"
)

const logLevelEnv = "I3BLK_LOG_LEVEL"

// Constructors for the OS-facing collaborators, replaced in tests.
var (
	newNetkit = core.DefaultNetkit
	newReader = sysinfo.New
)

// errArgs marks command line errors that are shown as an ARGS ERROR block.
var errArgs = errors.New("invalid arguments")

type config struct {
	Padding  int
	LogLevel string

	log *logrus.Logger
}

// execute runs the command line and returns the process exit code.
// Environment failures are printed to stdout so they show up in the bar log.
func execute(args []string, stdout, stderr io.Writer) int {
	// cobra falls back to os.Args on a nil slice
	if args == nil {
		args = []string{}
	}
	cfg := &config{}
	root := newRootCmd(cfg)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if errors.Is(err, errArgs) {
		err = block.NewWriter(stdout, cfg.Padding).Error(block.ErrArgs)
	}
	if err != nil {
		fmt.Fprintf(stdout, "Error exit.\n%v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(cfg *config) *cobra.Command {
	root := &cobra.Command{
		Use:           "i3blk <block> [fg_color] [bg_color]",
		Short:         "Print one status block for i3blocks",
		Long:          "Print one colorized status block (bat, vol, eth, wl, date, time, scrbrt) as Pango markup for i3blocks.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.log = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := block.NewWriter(cmd.OutOrStdout(), cfg.Padding)
			if len(args) == 0 {
				return w.Error(block.ErrArgs)
			}
			cfg.log.WithField("block", args[0]).Debug("unknown block")
			return w.Error(block.ErrInvalid)
		},
	}
	// help and completion are not blocks; i3blocks would show their text raw
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetHelpCommand(&cobra.Command{
		Use:    "help",
		Hidden: true,
		Args:   cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return block.NewWriter(cmd.OutOrStdout(), cfg.Padding).Error(block.ErrInvalid)
		},
	})
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if err := block.NewWriter(cmd.OutOrStdout(), cfg.Padding).Error(block.ErrInvalid); err != nil {
			cmd.PrintErrln(err)
		}
	})
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Wrap(errArgs, err.Error())
	})

	flags := root.PersistentFlags()
	flags.IntVarP(&cfg.Padding, "padding", "p", block.DefaultPadding, "spaces around the block text, at most 10")
	flags.StringVar(&cfg.LogLevel, "log-level", envOr(logLevelEnv, "warn"), "log level written to stderr")

	root.AddCommand(
		newBlockCmd(cfg, "bat", "Battery charge and status", func() (string, error) {
			return newReader(cfg.log).Battery()
		}),
		newBlockCmd(cfg, "vol", "Master volume", func() (string, error) {
			return newReader(cfg.log).Volume()
		}),
		newBlockCmd(cfg, "scrbrt", "Screen brightness", func() (string, error) {
			return newReader(cfg.log).Brightness()
		}),
		newBlockCmd(cfg, "date", "Current date", func() (string, error) {
			return newReader(cfg.log).Date(), nil
		}),
		newBlockCmd(cfg, "time", "Current time", func() (string, error) {
			return newReader(cfg.log).Time(), nil
		}),
		newBlockCmd(cfg, "eth", "First wired interface, when up", func() (string, error) {
			return queryNetwork(cfg, core.CategoryWired)
		}),
		newBlockCmd(cfg, "wl", "Network name of the first wireless interface, when up", func() (string, error) {
			return queryNetwork(cfg, core.CategoryWireless)
		}),
		newIfacesCmd(cfg),
	)
	return root
}

// newBlockCmd builds a subcommand that writes the text returned by produce
// using the optional positional colors.
func newBlockCmd(cfg *config, name, short string, produce func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [fg_color] [bg_color]",
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, bg := colorArgs(args)
			w := block.NewWriter(cmd.OutOrStdout(), cfg.Padding)

			text, err := produce()
			if errors.Is(err, sysinfo.ErrVolumeParse) {
				cfg.log.WithError(err).Debug("volume parse failed")
				return w.Error(block.ErrVolParse)
			}
			if err != nil {
				return err
			}
			return w.Write(fg, bg, text)
		},
	}
}

func newIfacesCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:    "ifaces",
		Short:  "List IPv4 interfaces and their classification",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := newNetkit(cfg.log)
			if err != nil {
				return err
			}
			defer kit.Close()

			records, err := core.NewQuerier(kit, cfg.log).Survey()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, rec := range records {
				fmt.Fprintln(out, core.Describe(rec))
			}
			fmt.Fprintln(out, "--------------------------------")
			fmt.Fprintf(out, "Found %d interfaces.\n", len(records))
			return nil
		},
	}
}

func queryNetwork(cfg *config, category core.Category) (string, error) {
	kit, err := newNetkit(cfg.log)
	if err != nil {
		return "", err
	}
	defer kit.Close()
	return core.NewQuerier(kit, cfg.log).Query(category)
}

// colorArgs picks the foreground and background positionals. Validation
// happens in the block writer.
func colorArgs(args []string) (fg, bg string) {
	if len(args) > 0 {
		fg = args[0]
	}
	if len(args) > 1 {
		bg = args[1]
	}
	return fg, bg
}

func newLogger(out io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.SetLevel(logrus.WarnLevel)
		log.WithField("level", level).Warn("unknown log level, using warn")
		return log
	}
	log.SetLevel(lvl)
	return log
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
