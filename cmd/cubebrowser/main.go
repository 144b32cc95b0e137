package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/san-kum/cubebrowser/internal/browser"
	"github.com/san-kum/cubebrowser/internal/config"
	"github.com/san-kum/cubebrowser/internal/logging"
	"github.com/san-kum/cubebrowser/internal/render"
	"github.com/san-kum/cubebrowser/internal/viz"
)

var (
	preset   string
	settings []string
	// Logging
	logFile  string
	logLevel string
	logJSON  bool

	logger  = logging.New(os.Stderr, slog.LevelWarn, false)
	logSink io.Closer
)

// main registers the commands and flags, opens the interactive browser when
// no subcommand is given, and exits with status 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:               "cubebrowser [session.yaml]",
		Short:             "slice and browse data cubes in the terminal",
		Args:              cobra.MaximumNArgs(1),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE:              runBrowse,
	}

	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use a built-in session")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")

	browseCmd := &cobra.Command{
		Use:   "browse [session.yaml]",
		Short: "browse a session interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBrowse,
	}

	renderCmd := &cobra.Command{
		Use:   "render [session.yaml]",
		Short: "render a session once, after optional slider changes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringArrayVar(&settings, "set", nil, "move a slider before rendering (name=index), repeatable")

	summaryCmd := &cobra.Command{
		Use:   "summary [session.yaml]",
		Short: "chart each plot's mean along every slider",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSummary,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in sessions",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	saveCmd := &cobra.Command{
		Use:   "save [path]",
		Short: "write the selected session as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(nil)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved session to %s\n", args[0])
			return nil
		},
	}

	colormapsCmd := &cobra.Command{
		Use:   "colormaps",
		Short: "list colormaps",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range render.ColormapNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, render.GetColormap(name).Gradient(24))
			}
		},
	}

	rootCmd.AddCommand(browseCmd, renderCmd, summaryCmd, presetsCmd, saveCmd, colormapsCmd)

	err := rootCmd.Execute()
	if err != nil {
		logging.Error(context.Background(), logger, err)
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	if logSink != nil {
		logSink.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	var w io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "open log file"), "path", logFile)
		}
		w, logSink = f, f
	}
	logger = logging.New(w, level, logJSON)
	return nil
}

// loadSession reads the session file when given, else the preset, else the
// default session.
func loadSession(args []string) (*config.Session, error) {
	switch {
	case len(args) > 0:
		return config.Load(args[0])
	case preset != "":
		return config.GetPreset(preset)
	}
	return config.DefaultSession(), nil
}

func buildBrowser(args []string) (*browser.Browser, error) {
	s, err := loadSession(args)
	if err != nil {
		return nil, err
	}
	plots, err := s.Build(logger)
	if err != nil {
		return nil, err
	}
	return browser.New(plots, browser.WithLogger(logger))
}

func runBrowse(cmd *cobra.Command, args []string) error {
	b, err := buildBrowser(args)
	if err != nil {
		return err
	}
	return viz.Run(b, logger)
}

func runRender(cmd *cobra.Command, args []string) error {
	b, err := buildBrowser(args)
	if err != nil {
		return err
	}
	if _, err := b.Display(); err != nil {
		return err
	}
	for _, setting := range settings {
		name, value, err := parseSetting(setting)
		if err != nil {
			return err
		}
		if err := b.Notify(name, value); err != nil {
			return err
		}
		logger.Info("slider moved", "name", name, "value", value)
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.Frame(b))
	return nil
}

func parseSetting(s string) (string, int, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", 0, zerr.With(zerr.New("expected name=index"), "set", s)
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return "", 0, zerr.With(zerr.Wrap(err, "slider index"), "set", s)
	}
	return strings.TrimSpace(name), value, nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	b, err := buildBrowser(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	names := b.Names()
	if len(names) == 0 {
		fmt.Fprintln(out, "no sliders")
		return nil
	}
	for _, name := range names {
		for _, p := range b.PlotsFor(name) {
			values, err := b.Profile(p, name)
			if err != nil {
				return err
			}
			caption := fmt.Sprintf("%s of %s along %s", p.Kind(), p.Cube().Name(), name)
			fmt.Fprintln(out, viz.ProfileChart(values, caption, 40))
			fmt.Fprintln(out)
		}
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCUBES\tPLOTS\tCOLORMAP")
	for _, name := range config.ListPresets() {
		s, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		var cubes []string
		for _, c := range s.Cubes {
			cubes = append(cubes, c.Name)
		}
		kinds := make([]string, 0, len(s.Plots))
		for _, p := range s.Plots {
			kinds = append(kinds, p.Kind)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, strings.Join(cubes, ","), strings.Join(kinds, ","), s.Colormap)
	}
	return w.Flush()
}
