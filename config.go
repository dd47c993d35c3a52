// config.go
//
// CLI and environment configuration for the lyricparty server.
// Flags are mirrored to LYRICPARTY_* environment variables through viper,
// so `lyricparty --port 9000` and `LYRICPARTY_PORT=9000 lyricparty` are
// equivalent. A .env file is honored in development (loaded in main).

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind     string
	port     int
	dbPath   string
	songbook string
	logLevel string
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	return nil
}

func (c *Config) addr() string {
	return fmt.Sprintf("%s:%d", c.bind, c.port)
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LYRICPARTY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "lyricparty",
		Short:         "Backend for the guess-the-hidden-lyrics party game.",
		Args:          cobra.ExactArgs(0),
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: LYRICPARTY_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8000, "port to listen on (env: LYRICPARTY_PORT)")
	fs.StringVar(&cfg.dbPath, "db", "./data/lyricparty.db", "path to the sqlite history database (env: LYRICPARTY_DB)")
	fs.StringVar(&cfg.songbook, "songbook", "", "path to a JSON songbook; empty uses the embedded default (env: LYRICPARTY_SONGBOOK)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "zerolog level: trace/debug/info/warn/error (env: LYRICPARTY_LOG_LEVEL)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("lyricparty v{{.Version}}\n")

	return cmd
}
