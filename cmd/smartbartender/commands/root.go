package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"smartbartender/internal/app"
)

var (
	configFile string
	v          *viper.Viper
	wire       *app.Wire
)

// Execute runs the CLI against os.Args.
func Execute() error {
	return newRootCmd(os.Stdin, os.Stdout).Execute()
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	v = viper.New()
	wire = nil

	root := &cobra.Command{
		Use:          "smartbartender",
		Short:        "Login gate for the Smart Bartender site",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(v, configFile)
			if err != nil {
				return err
			}
			logger, err := app.NewLogger(cfg.Log)
			if err != nil {
				return err
			}
			w, err := app.NewWire(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			wire = w
			return wire.Bootstrap(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			_ = wire.Logger.Sync()
			return wire.Close()
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	pf.String("home", "", "data directory (default ~/.smartbartender)")
	pf.String("store", "", "credential backend: file, memory or redis (default file)")
	pf.String("hash", "", "password hash for new digests: sha256 or bcrypt (default sha256)")
	pf.String("log-level", "", "debug, info, warn or error (default info)")
	bindFlag(root, "home", "home")
	bindFlag(root, "store.backend", "store")
	bindFlag(root, "hash.algorithm", "hash")
	bindFlag(root, "log.level", "log-level")

	root.AddCommand(serveCmd(), userCmd())
	return root
}

// bindFlag binds viper key to the named persistent or local flag of cmd.
func bindFlag(cmd *cobra.Command, key, name string) {
	f := cmd.PersistentFlags().Lookup(name)
	if f == nil {
		f = cmd.Flags().Lookup(name)
	}
	_ = v.BindPFlag(key, f)
}

func logger() *zap.Logger {
	if wire == nil {
		return zap.NewNop()
	}
	return wire.Logger
}
