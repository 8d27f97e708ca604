package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/carousel/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "carousel: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	var (
		opts app.Options
		loop bool
	)

	cmd := &cobra.Command{
		Use:           "carousel [deck]",
		Short:         "Present a markdown deck as a terminal carousel",
		Long:          "carousel shows the slides of a markdown file (split on --- lines) or a directory of markdown files, one window at a time. Navigate with the keyboard, the mouse wheel, the ‹ › buttons or by dragging.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DeckPath = "."
			if len(args) == 1 {
				opts.DeckPath = args[0]
			}
			if cmd.Flags().Changed("loop") {
				opts.Overrides.Loop = &loop
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ~/.config/carousel/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/carousel/prefs.toml)")
	flags.IntVar(&opts.Overrides.SlidesVisible, "visible", 0, "slides shown side by side on a wide terminal")
	flags.IntVar(&opts.Overrides.SlidesToScroll, "scroll", 0, "slides moved per step on a wide terminal")
	flags.BoolVar(&loop, "loop", false, "wrap around at either end")
	flags.StringVar(&opts.Overrides.Theme, "theme", "", "color theme (Dracula or Slate)")
	flags.StringVar(&opts.Overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	return cmd
}
