package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"peek/buffer"
	"peek/config"
	"peek/editor"
	"peek/filetype"
	"peek/terminal"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("peek failed")
		return 1
	}
	return 0
}

type viewOptions struct {
	configPath string
	theme      string
	tabStop    int
	logFile    string
}

func newRootCmd() *cobra.Command {
	var opts viewOptions
	root := &cobra.Command{
		Use:           "peek <file>",
		Short:         "Read-only terminal text viewer",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), opts, args[0])
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to settings file (default ~/.config/peek/settings.json)")
	root.Flags().StringVar(&opts.theme, "theme", "", "status line theme: "+strings.Join(themeNames(), ", "))
	root.Flags().IntVar(&opts.tabStop, "tab-stop", 0, "tab stop width (overrides config and .editorconfig)")
	root.Flags().StringVar(&opts.logFile, "log-file", "", "write structured logs to this file")

	root.AddCommand(newConfigCmd(&opts.configPath))
	return root
}

func runView(ctx context.Context, opts viewOptions, path string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.theme != "" {
		if _, ok := config.Themes[opts.theme]; !ok {
			return fmt.Errorf("unknown theme %q", opts.theme)
		}
		cfg.Theme = opts.theme
	}
	if opts.tabStop < 0 {
		return fmt.Errorf("tab stop must be positive, got %d", opts.tabStop)
	}

	tabStop := cfg.TabStopFor(path)
	if opts.tabStop > 0 {
		tabStop = opts.tabStop
	}
	buf, err := buffer.NewFromFile(path, tabStop)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	var head string
	if buf.RowCount() > 0 {
		head = buf.Contents(0)
	}
	buf.Language = filetype.For(buf.Name, head)

	// The screen owns stdout, so logs only go to a file.
	var w io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(w),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeStructured, NoColor: true}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)

	if err := terminal.CheckTerminal(); err != nil {
		return err
	}
	term, err := terminal.Open()
	if err != nil {
		return err
	}
	defer term.Close()

	logger.Info("opening document", "path", path, "tab_stop", tabStop, "language", buf.Language, "theme", cfg.Theme)
	return editor.New(cfg, buf, term).Run(ctx, term)
}

func themeNames() []string {
	names := make([]string, 0, len(config.Themes))
	for name := range config.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
