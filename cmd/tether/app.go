package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/xraph/tether"
	"github.com/xraph/tether/internal/manifest"
)

var errManifestRequired = errors.New("manifest path required")

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "tether",
		Usage:     "Inspect and build dependency manifests",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "container log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "container configuration file",
			},
		},
		Before: func(ctx *cli.Context) error {
			config := defaultColorConfig(ctx.App.Writer)
			if ctx.Bool("no-color") {
				config.NoColor = true
			}
			configureColors(config)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "order",
				Usage:     "Print the construction order of a manifest",
				ArgsUsage: "<manifest>",
				Action:    orderAction,
			},
			{
				Name:      "build",
				Usage:     "Construct every singleton of a manifest",
				ArgsUsage: "<manifest>",
				Action:    buildAction,
			},
			{
				Name:      "inspect",
				Usage:     "Describe the registrations of a manifest",
				ArgsUsage: "<manifest>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "print the snapshot as JSON"},
				},
				Action: inspectAction,
			},
			{
				Name:  "version",
				Usage: "Show version information",
				Action: func(ctx *cli.Context) error {
					w := ctx.App.Writer
					fmt.Fprintln(w, "tether "+version)
					fmt.Fprintln(w, "Commit: "+commit)
					fmt.Fprintln(w, "Built: "+buildDate)
					return nil
				},
			},
		},
	}
}

// loadContainer creates a container from the global flags and registers the
// manifest named by the first argument.
func loadContainer(ctx *cli.Context) (*tether.Container, error) {
	path := ctx.Args().First()
	if path == "" {
		return nil, errManifestRequired
	}

	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}

	config := tether.DefaultConfig()
	if file := ctx.String("config"); file != "" {
		if config, err = tether.LoadConfig(file); err != nil {
			return nil, err
		}
	}
	if level := ctx.String("log-level"); level != "" {
		config.Logging.Level = level
	}

	c, err := tether.New(tether.WithConfig(config))
	if err != nil {
		return nil, err
	}

	if err := register(c, m); err != nil {
		return nil, err
	}
	return c, nil
}

func orderAction(ctx *cli.Context) error {
	c, err := loadContainer(ctx)
	if err != nil {
		return err
	}

	snap := c.Snapshot()
	if snap.OrderError != "" {
		return errors.New(snap.OrderError)
	}

	w := ctx.App.Writer
	fmt.Fprintln(w, bold("Construction order:"))
	for i, name := range snap.Order {
		fmt.Fprintf(w, "  %s %s\n", gray(fmt.Sprintf("%2d.", i+1)), name)
	}
	return nil
}

func buildAction(ctx *cli.Context) error {
	c, err := loadContainer(ctx)
	if err != nil {
		return err
	}

	if err := c.Build(ctx.Context); err != nil {
		return err
	}

	w := ctx.App.Writer
	built := 0
	for _, entry := range c.Snapshot().Entries {
		if entry.Lifecycle != tether.Singleton || !entry.Materialized {
			continue
		}
		built++
		fmt.Fprintf(w, "  %s %s\n", green("✓"), entry.Name)
	}
	fmt.Fprintf(w, "%s %d singletons built\n", boldGreen("✓"), built)
	return nil
}

func inspectAction(ctx *cli.Context) error {
	c, err := loadContainer(ctx)
	if err != nil {
		return err
	}

	snap := c.Snapshot()
	w := ctx.App.Writer

	if ctx.Bool("json") {
		data, err := snap.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	for _, entry := range snap.Entries {
		fmt.Fprintf(w, "%s %s %s\n", cyan(entry.Name), yellow(entry.Lifecycle), gray(entry.Mode))
		if len(entry.Dependencies) > 0 {
			fmt.Fprintf(w, "    requires: %s\n", strings.Join(entry.Dependencies, ", "))
		}
	}

	if snap.OrderError != "" {
		fmt.Fprintf(w, "%s %s\n", boldRed("✗"), snap.OrderError)
	}
	return nil
}
