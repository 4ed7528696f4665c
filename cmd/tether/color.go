package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()

	bold      = color.New(color.Bold).SprintFunc()
	boldGreen = color.New(color.FgGreen, color.Bold).SprintFunc()
	boldRed   = color.New(color.FgRed, color.Bold).SprintFunc()
)

// colorConfig controls color output behavior.
type colorConfig struct {
	Enabled    bool
	ForceColor bool
	NoColor    bool
}

func defaultColorConfig(w io.Writer) colorConfig {
	return colorConfig{
		Enabled:    isTerminal(w),
		ForceColor: os.Getenv("FORCE_COLOR") != "" || os.Getenv("CLICOLOR_FORCE") != "",
		NoColor:    os.Getenv("NO_COLOR") != "" || os.Getenv("CLICOLOR") == "0",
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// configureColors sets the global color switch. NoColor wins over
// ForceColor.
func configureColors(config colorConfig) {
	switch {
	case config.NoColor:
		color.NoColor = true
	case config.ForceColor:
		color.NoColor = false
	default:
		color.NoColor = !config.Enabled
	}
}
