package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/tartampluch/go-ppl/internal/action"
	"github.com/tartampluch/go-ppl/internal/config"
	"github.com/tartampluch/go-ppl/internal/engine"
	"github.com/tartampluch/go-ppl/internal/i18n"
	"github.com/tartampluch/go-ppl/internal/server"
	"github.com/tartampluch/go-ppl/internal/verb"
)

// appEnv carries the wired dependencies into command actions.
type appEnv struct {
	settings   *config.Settings
	translator *i18n.Translator
	registry   *verb.Registry
	loader     *engine.Loader
	logCloser  io.Closer
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp() *cli.App {
	env := &appEnv{}

	app := &cli.App{
		Name:    "go-ppl",
		Usage:   "Contact directory lookup and action dispatch",
		Version: config.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: config.FlagDebug, Usage: config.FlagDescDebug},
			&cli.StringFlag{Name: config.FlagConfig, Aliases: []string{"c"}, Usage: config.FlagDescConfig},
			&cli.StringFlag{Name: config.FlagMode, Usage: config.FlagDescMode},
			&cli.StringFlag{Name: config.FlagLang, Usage: config.FlagDescLang},
		},
		Before: func(c *cli.Context) error {
			env.logCloser = setupLogging(c.Bool(config.FlagDebug))
			logStartupInfo()

			settings, err := config.LoadSettings(c.String(config.FlagConfig))
			if err != nil {
				return err
			}
			if mode := c.String(config.FlagMode); mode != "" {
				settings.ParserMode = mode
			}

			lang := settings.Language
			if override := c.String(config.FlagLang); override != "" {
				lang = override
			}

			env.settings = settings
			env.translator = i18n.New(lang)
			env.registry = verb.NewRegistry(env.translator.Msg)
			env.loader = engine.NewLoader()
			return nil
		},
		After: func(_ *cli.Context) error {
			if env.logCloser != nil {
				_ = env.logCloser.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			verbsCmd(env),
			matchCmd(env),
			cardCmd(env),
			execCmd(env),
			exportICalCmd(env),
			serveCmd(env),
		},
	}
	return app
}

// verbsCmd lists the verb catalog.
func verbsCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "verbs",
		Usage: "List the available verbs",
		Action: func(c *cli.Context) error {
			for _, v := range env.registry.Verbs() {
				fmt.Fprintf(c.App.Writer, "%s\t%s\n", v.Name, v.Description)
			}
			return nil
		},
	}
}

// matchCmd finds contacts matching a query for a verb.
func matchCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "Suggest contacts matching a name fragment for a verb",
		ArgsUsage: "<verb> <query>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Emit suggestions as JSON"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("usage: match <verb> <query>")
			}
			verbName, query := c.Args().Get(0), c.Args().Get(1)

			store, issues := env.loader.Load(c.Context, env.settings)
			reportIssues(c.App.ErrWriter, issues)

			suggestions, err := env.registry.Match(store, verbName, query)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(suggestions)
			}
			for _, s := range suggestions {
				fmt.Fprintf(c.App.Writer, "%d\t%s\n", s.Index, s.Label)
			}
			return nil
		},
	}
}

// cardCmd prints the formatted card for one contact.
func cardCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "card",
		Usage:     "Print the label/value card of a contact",
		ArgsUsage: "<index>",
		Action: func(c *cli.Context) error {
			index, err := argIndex(c, 0)
			if err != nil {
				return err
			}

			store, issues := env.loader.Load(c.Context, env.settings)
			reportIssues(c.App.ErrWriter, issues)

			contactRec, err := store.At(index)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, verb.FormatCard(contactRec, env.registry, env.translator.Msg))
			return nil
		},
	}
}

// execCmd resolves a verb against a contact and dispatches its action.
func execCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Execute a verb against a contact",
		ArgsUsage: "<verb> <index>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: config.FlagTarget, Usage: config.FlagDescTarget},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("usage: exec <verb> <index>")
			}
			verbName := c.Args().Get(0)
			index, err := argIndex(c, 1)
			if err != nil {
				return err
			}

			store, issues := env.loader.Load(c.Context, env.settings)
			reportIssues(c.App.ErrWriter, issues)

			executor := &engine.Executor{
				Registry:   env.registry,
				Settings:   env.settings,
				Dispatcher: action.SystemDispatcher{},
				Label:      env.translator.Msg,
			}
			target, ok, err := executor.Execute(store, verbName, index, c.String(config.FlagTarget))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(c.App.ErrWriter, config.ErrNoTarget)
				return nil
			}
			fmt.Fprintln(c.App.Writer, target)
			return nil
		},
	}
}

// exportICalCmd writes the birthday calendar feed.
func exportICalCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "export-ical",
		Usage: "Export contact birthdays as an iCalendar feed",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (default stdout)"},
		},
		Action: func(c *cli.Context) error {
			store, issues := env.loader.Load(c.Context, env.settings)
			reportIssues(c.App.ErrWriter, issues)

			data, err := env.loader.ExportBirthdays(store)
			if err != nil {
				return err
			}

			if out := c.String("out"); out != "" {
				return os.WriteFile(out, data, config.FilePermUserRW)
			}
			_, err = c.App.Writer.Write(data)
			return err
		},
	}
}

// serveCmd publishes the directory on a localhost HTTP server.
func serveCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the birthday feed and contact listing over localhost HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: config.FlagPort, Aliases: []string{"p"}, Value: config.DefaultPort, Usage: config.FlagDescPort},
		},
		Action: func(c *cli.Context) error {
			port := c.String(config.FlagPort)
			if n, err := strconv.Atoi(port); err != nil || n < config.MinPort || n > config.MaxPort {
				return fmt.Errorf("%s: %q", config.ErrPortRange, port)
			}

			store, issues := env.loader.Load(c.Context, env.settings)
			reportIssues(c.App.ErrWriter, issues)

			feed, err := env.loader.ExportBirthdays(store)
			if err != nil {
				return err
			}

			srv := server.NewFeedServer(port)
			srv.UpdateFeed(feed)
			if err := srv.UpdateContacts(store); err != nil {
				return err
			}
			return srv.Start(c.Context)
		},
	}
}

// argIndex parses a positional contact index argument.
func argIndex(c *cli.Context, pos int) (int, error) {
	raw := c.Args().Get(pos)
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %q", config.ErrContactIndex, raw)
	}
	return index, nil
}

// reportIssues prints per-file load warnings without failing the command.
func reportIssues(w io.Writer, issues []engine.FileIssue) {
	for _, issue := range issues {
		fmt.Fprintf(w, "warning: %s: %v\n", issue.File, issue.Err)
	}
}
