package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jsvensson/chromakit/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var version = "dev" // Injected at build time via ldflags

// errCheckFailed makes the process exit non-zero without printing anything further.
var errCheckFailed = errors.New("check failed")

// cli carries the state shared by all subcommands.
type cli struct {
	v        *viper.Viper
	cfgFile  string
	settings config.Settings

	// bindings holds per-command flag bindings, applied only for the command
	// that runs so that two commands can share a config key.
	bindings map[*cobra.Command][]flagBinding
}

type flagBinding struct {
	key  string
	flag string
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, bindings []flagBinding) {
	for _, b := range bindings {
		if err := v.BindPFlag(b.key, flags.Lookup(b.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", b.flag, err))
		}
	}
}

// bind records flag bindings for cmd. They take effect when cmd runs.
func (c *cli) bind(cmd *cobra.Command, bindings ...flagBinding) {
	c.bindings[cmd] = append(c.bindings[cmd], bindings...)
}

func newRootCmd() *cobra.Command {
	c := &cli{
		v:        config.New(),
		bindings: make(map[*cobra.Command][]flagBinding),
	}

	root := &cobra.Command{
		Use:           "chromakit",
		Short:         "Parse, convert, mix and adjust colors, and render palettes into app themes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(c.v, cmd.Flags(), c.bindings[cmd])
			return c.initConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is ./chromakit.yaml if present)")
	flags.CountP("verbose", "v", "increase log verbosity (repeatable)")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	bindFlags(c.v, flags, []flagBinding{
		{config.KeyVerbosity, "verbose"},
		{config.KeyLogFile, "log-file"},
	})

	root.AddCommand(
		c.inspectCmd(),
		c.mixCmd(),
		c.adjustCmd("lighten", "Increase lightness by a fraction of the full range", adjustLighten),
		c.adjustCmd("darken", "Decrease lightness by a fraction of the full range", adjustDarken),
		c.adjustCmd("saturate", "Increase saturation by a fraction", adjustSaturate),
		c.adjustCmd("desaturate", "Decrease saturation by a fraction", adjustDesaturate),
		c.unaryCmd("grayscale", "Remove all saturation", unaryGrayscale),
		c.unaryCmd("invert", "Invert the red, green and blue channels", unaryInvert),
		c.paletteCmd(),
		c.generateCmd(),
		c.fmtCmd(),
		versionCmd(),
	)
	return root
}

// initConfig merges the config file, environment and flags into c.settings
// and sets up logging.
func (c *cli) initConfig() error {
	if err := config.Load(c.v, c.cfgFile); err != nil {
		return err
	}
	s, err := config.FromViper(c.v)
	if err != nil {
		return err
	}
	c.settings = s

	commonlog.Configure(s.Verbosity, s.LogPath())
	if used := c.v.ConfigFileUsed(); used != "" {
		log.Infof("using config file %s", used)
	}
	return nil
}

var log = commonlog.GetLogger("chromakit.cli")

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
