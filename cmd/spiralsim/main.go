package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/spiralsim/internal/config"
	"github.com/san-kum/spiralsim/internal/export"
	"github.com/san-kum/spiralsim/internal/playback"
	"github.com/san-kum/spiralsim/internal/spiral"
	"github.com/san-kum/spiralsim/internal/storage"
	"github.com/san-kum/spiralsim/internal/sweep"
	"github.com/san-kum/spiralsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logFile    string
	logLevel   string
	configFile string
	preset     string
	rows       int
	cols       int
	delayMS    int
	theme      string
	format     string
	outFile    string
	cellSize   float64
	plotWidth  int
	plotHeight int
	maxRows    int
	maxCols    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "spiralsim",
		Short:         "spiral grid traversal player",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, _, closeLog, err := newLogger(logFile, logLevel)
			if err != nil {
				return err
			}
			defer closeLog()
			return viz.RunInteractive(logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spiralsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, none)")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play the traversal interactively",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
	addGridFlags(playCmd)
	playCmd.Flags().IntVar(&delayMS, "delay", config.DefaultDelayMS, "milliseconds between steps")
	playCmd.Flags().StringVar(&theme, "theme", "", "color theme")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "print the visiting order",
		Args:  cobra.NoArgs,
		RunE:  printPath,
	}
	addGridFlags(pathCmd)
	pathCmd.Flags().StringVar(&format, "format", "text", "output format (text, json, csv)")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot ring depth per step",
		Args:  cobra.NoArgs,
		RunE:  plotPath,
	}
	addGridFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotWidth, "width", 70, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 8, "plot height")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render the traversal as SVG",
		Args:  cobra.NoArgs,
		RunE:  writeSVG,
	}
	addGridFlags(svgCmd)
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().Float64Var(&cellSize, "cell", 40, "cell size in pixels")

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "save the traversal to the data directory",
		Args:  cobra.NoArgs,
		RunE:  saveTraversal,
	}
	addGridFlags(saveCmd)
	saveCmd.Flags().IntVar(&delayMS, "delay", config.DefaultDelayMS, "milliseconds between steps")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved traversals",
		Args:  cobra.NoArgs,
		RunE:  listTraversals,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "show a saved traversal",
		Args:  cobra.ExactArgs(1),
		RunE:  showTraversal,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGRID\tDELAY\tTHEME\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%dx%d\t%dms\t%s\t%s\n", name, p.Rows, p.Cols, p.DelayMS, p.Theme, config.PresetInfo(name))
			}
			return w.Flush()
		},
	}

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "check traversal invariants for every grid size up to a bound",
		Args:  cobra.NoArgs,
		RunE:  verifySizes,
	}
	verifyCmd.Flags().IntVar(&maxRows, "max-rows", 12, "largest row count")
	verifyCmd.Flags().IntVar(&maxCols, "max-cols", 12, "largest column count")

	rootCmd.AddCommand(playCmd, pathCmd, plotCmd, svgCmd, saveCmd, listCmd, showCmd, presetsCmd, verifyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "grid columns")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.LookupPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("rows") || (preset == "" && configFile == "") {
		cfg.Rows = rows
	}
	if flags.Changed("cols") || (preset == "" && configFile == "") {
		cfg.Cols = cols
	}
	if f := flags.Lookup("delay"); f != nil && (f.Changed || (preset == "" && configFile == "")) {
		cfg.DelayMS = delayMS
	}
	if f := flags.Lookup("theme"); f != nil && f.Changed {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, atom, closeLog, err := newLogger(logFile, logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
		atom.SetLevel(parseLevel(cfg.LogLevel))
	}

	ctrl := playback.New(cfg.Rows, cfg.Cols,
		playback.WithDelay(cfg.Delay()),
		playback.WithLogger(logger),
	)
	logger.Infow("play", "rows", cfg.Rows, "cols", cfg.Cols, "delay", cfg.Delay(), "theme", cfg.Theme)
	return viz.Play(ctrl, viz.GetTheme(cfg.Theme), fmt.Sprintf("spiral %dx%d", cfg.Rows, cfg.Cols))
}

func printPath(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tl := spiral.Generate(cfg.Rows, cfg.Cols)
	return writePath(cmd.OutOrStdout(), format, tl, spiral.NewGrid(cfg.Rows, cfg.Cols))
}

func writePath(out io.Writer, format string, tl spiral.Timeline, grid *spiral.Grid) error {
	switch format {
	case "text":
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STEP\tCELL\tVALUE\tRING")
		for i, c := range tl {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", i, c, grid.Value(c.Row, c.Col), spiral.Ring(c, grid.Rows(), grid.Cols()))
		}
		return w.Flush()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tl)
	case "csv":
		w := csv.NewWriter(out)
		if err := w.Write([]string{"step", "row", "col", "value"}); err != nil {
			return err
		}
		for i, c := range tl {
			rec := []string{strconv.Itoa(i), strconv.Itoa(c.Row), strconv.Itoa(c.Col), strconv.Itoa(grid.Value(c.Row, c.Col))}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	default:
		return fmt.Errorf("unknown format: %s (want text, json or csv)", format)
	}
}

func plotPath(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tl := spiral.Generate(cfg.Rows, cfg.Cols)
	fmt.Fprintln(cmd.OutOrStdout(), export.Plot(tl, cfg.Rows, cfg.Cols, plotWidth, plotHeight))
	return nil
}

func writeSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	svg := export.PathToSVG(spiral.Generate(cfg.Rows, cfg.Cols), cfg.Rows, cfg.Cols, cellSize, "")
	if outFile == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
	return nil
}

func saveTraversal(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(cfg.Rows, cfg.Cols, cfg.Delay(), spiral.Generate(cfg.Rows, cfg.Cols))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved: %s\n", id)
	return nil
}

func listTraversals(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no saved traversals")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tGRID\tSTEPS\tDELAY\tLAST")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%dms\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows, run.Cols,
			run.Steps,
			run.DelayMS,
			run.Last,
		)
	}
	return w.Flush()
}

func showTraversal(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tl, err := st.LoadPath(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "id: %s\n", meta.ID)
	fmt.Fprintf(out, "grid: %dx%d\n", meta.Rows, meta.Cols)
	fmt.Fprintf(out, "steps: %d\n\n", meta.Steps)
	return writePath(out, "text", tl, spiral.NewGrid(meta.Rows, meta.Cols))
}

func verifySizes(cmd *cobra.Command, args []string) error {
	if maxRows > config.MaxDim || maxCols > config.MaxDim {
		return fmt.Errorf("%w: bounds must be at most %d", config.ErrInvalidDimensions, config.MaxDim)
	}
	results, err := sweep.Run(context.Background(), maxRows, maxCols)
	if err != nil {
		return err
	}

	failures := sweep.Failures(results)
	for _, f := range failures {
		fmt.Fprintf(cmd.OutOrStdout(), "FAIL %dx%d: %v\n", f.Rows, f.Cols, f.Err)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d grids failed", len(failures), len(results))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d grids up to %dx%d\n", len(results), maxRows, maxCols)
	return nil
}
