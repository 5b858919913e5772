package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	flag "github.com/spf13/pflag"

	"github.com/notexe/remind/internal/config"
	"github.com/notexe/remind/internal/dateparse"
	"github.com/notexe/remind/internal/logging"
	"github.com/notexe/remind/internal/terminal"
	"github.com/notexe/remind/internal/ui"
)

const defaultCommand = "show"

type globalFlags struct {
	configPath    string
	noColor       bool
	noInteractive bool
	help          bool
	remaining     []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var g globalFlags

	fs := flag.NewFlagSet("remind", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(false)
	fs.StringVarP(&g.configPath, "config", "c", config.GetDefaultConfigPath(), "Use specified config file")
	fs.BoolVar(&g.noColor, "no-color", false, "Disable coloured output")
	fs.BoolVar(&g.noInteractive, "no-interactive", false, "Use line prompts instead of arrow-key pickers")
	fs.BoolVarP(&g.help, "help", "h", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return globalFlags{}, err
	}
	g.remaining = fs.Args()
	return g, nil
}

// Run is the main entry point. args include the program name. Command
// output goes to term's writer, failures to errOut. Returns the exit code.
func Run(ctx context.Context, term *terminal.Terminal, errOut io.Writer, args []string) int {
	out := term.Out()

	g, err := parseGlobalFlags(args[min(1, len(args)):])
	if err != nil {
		fmt.Fprintln(errOut, ui.NewFormatter(false).Error(err))
		printUsage(errOut, nil)
		return 1
	}

	cfg, err := config.Load(g.configPath)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(errOut, ui.NewFormatter(false).Error(err))
		return 1
	}
	if g.noColor {
		cfg.UI.ColoredOutput = false
	}

	log, closer, err := logging.Open(cfg.Log.File, cfg.Log.Verbosity)
	if err != nil {
		fmt.Fprintln(errOut, ui.NewFormatter(false).Error(err))
		return 1
	}
	defer closer.Close()
	ctx = logr.NewContext(ctx, log)

	interactive := term.IsTerminal() && cfg.UI.Interactive && !g.noInteractive
	app := newApp(cfg, g.configPath, term, interactive)
	defer app.Close()

	o := NewIO(out, errOut, app.fmt)
	commands := allCommands(app)

	if g.help {
		printUsage(out, commands)
		return 0
	}

	name, rest := defaultCommand, g.remaining
	if len(rest) > 0 {
		switch {
		case rest[0] == "help":
			printUsage(out, commands)
			return 0
		case isShowArg(rest[0]):
			// "remind overdue" is "remind show overdue"
		default:
			name, rest = rest[0], rest[1:]
		}
	}

	for _, cmd := range commands {
		if cmd.Matches(name) {
			log.V(1).Info("running command", "command", cmd.Name(), "args", len(rest))
			return cmd.Run(ctx, o, rest)
		}
	}

	o.Error(fmt.Errorf("unknown command: %s", name))
	printUsage(errOut, commands)
	return 1
}

func allCommands(app *App) []*Command {
	return []*Command{
		ShowCmd(app),
		LsCmd(app),
		AddCmd(app),
		CompleteCmd(app),
		DeleteCmd(app),
		InfoCmd(app),
		ListCmd(app),
		ListsCmd(app),
		NotifyCmd(app),
		ConfigCmd(app),
	}
}

// isShowArg reports whether s is a show filter rather than a command name.
func isShowArg(s string) bool {
	if _, ok := filterWords[strings.ToLower(s)]; ok {
		return true
	}
	_, err := dateparse.ParseShort(s)
	return err == nil
}

var filterWords = map[string]struct{}{
	"today": {}, "tomorrow": {}, "t": {}, "week": {}, "w": {},
	"overdue": {}, "o": {}, "flag": {}, "flagged": {}, "f": {},
	"upcoming": {}, "u": {},
}

func printUsage(w io.Writer, commands []*Command) {
	fmt.Fprintln(w, `remind - reminders in the terminal

Usage: remind [options] <command> [args]

Options:
  -c, --config <file>    Use specified config file (default ~/.remind/config.yaml)
      --no-color         Disable coloured output
      --no-interactive   Use line prompts instead of arrow-key pickers

Commands:`)
	for _, cmd := range commands {
		fmt.Fprintln(w, cmd.HelpLine())
	}
	if len(commands) > 0 {
		fmt.Fprintln(w, `
Without a command, remind shows today's tasks.
Run 'remind <command> --help' for details.`)
	}
}

// errNoArgs reports a command called without its required arguments.
func errNoArgs(what string) error {
	return errors.New("please provide " + what)
}
