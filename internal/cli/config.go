package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/notexe/remind/internal/config"
)

// ConfigCmd returns the config command.
func ConfigCmd(app *App) *Command {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	force := fs.BoolP("force", "f", false, "Overwrite an existing config file")

	return &Command{
		Flags: fs,
		Usage: "config <show|init> [flags]",
		Short: "Show the effective configuration or write the defaults",
		Long: `config show   Print the effective configuration as YAML
config init   Write the default configuration to the config file`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			sub := "show"
			if len(args) > 0 {
				sub = args[0]
			}

			switch sub {
			case "show":
				data, err := app.cfg.YAML()
				if err != nil {
					return err
				}
				o.Printf("%s", data)
				return nil
			case "init":
				return execConfigInit(o, app.configPath, *force)
			}
			return fmt.Errorf("unknown config command: %s", sub)
		},
	}
}

func execConfigInit(o *IO, path string, force bool) error {
	if path == "" {
		path = config.GetDefaultConfigPath()
	}

	if _, err := os.Stat(config.ExpandPath(path)); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}
	o.Success("Wrote default config to %s", path)
	return nil
}
