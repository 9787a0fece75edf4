package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/numgo-dev/numgo/array"
	"github.com/numgo-dev/numgo/textio"
)

const version = "v0.1.0-dev"

var (
	flagConfig    string
	flagDelim     string
	flagSkipRows  int
	flagComments  string
	flagPrecision int

	cfg Config
)

var rootCmd = &cobra.Command{
	Use:           "numgo",
	Short:         "Inspect and summarize delimited data files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(flagConfig)
		if err != nil {
			return err
		}
		// Flags the user set explicitly override the config file.
		if !cmd.Flags().Changed("delim") && cfg.Delim != "" {
			flagDelim = cfg.Delim
		}
		if !cmd.Flags().Changed("skip-rows") {
			flagSkipRows = cfg.SkipRows
		}
		if !cmd.Flags().Changed("comments") && cfg.Comments != "" {
			flagComments = cfg.Comments
		}
		if !cmd.Flags().Changed("precision") && cfg.Precision > 0 {
			flagPrecision = cfg.Precision
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the numgo version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "numgo %s\n", version)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Load a delimited file and describe it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadFile(args[0])
		if err != nil {
			return err
		}
		defer a.Release()
		out := cmd.OutOrStdout()
		shape := a.Shape()
		fmt.Fprintf(out, "file:  %s\n", args[0])
		fmt.Fprintf(out, "shape: %v (%d rows, %d columns)\n", shape, shape[0], shape[1])
		fmt.Fprintf(out, "dtype: %s\n", a.DType())
		fmt.Fprintln(out, array.Format(a, array.PrintOptions{
			Threshold: 60,
			Precision: flagPrecision,
		}))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats FILE",
	Short: "Per-column count, mean, std, min, and max",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadFile(args[0])
		if err != nil {
			return err
		}
		defer a.Release()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-8s %8s %12s %12s %12s %12s\n", "column", "count", "mean", "std", "min", "max")
		cols := a.Shape()[1]
		for j := 0; j < cols; j++ {
			col, err := array.Sel(a, 1, j)
			if err != nil {
				return err
			}
			line, err := columnStats(j, col)
			col.Release()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func loadFile(path string) (*array.Raw, error) {
	delim, err := textio.ParseDelims(flagDelim)
	if err != nil {
		return nil, err
	}
	a, err := textio.Load(path, textio.LoadOptions{
		Delim:    delim,
		SkipRows: flagSkipRows,
		Comments: flagComments,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func columnStats(j int, col *array.Raw) (string, error) {
	scalar := func(fn func(*array.Raw) (*array.Raw, error)) (float64, error) {
		r, err := fn(col)
		if err != nil {
			return 0, err
		}
		defer r.Release()
		v, err := r.ItemAny()
		if err != nil {
			return 0, err
		}
		f, _ := v.(float64)
		return f, nil
	}
	mean, err := scalar(array.Mean)
	if err != nil {
		return "", err
	}
	std, err := scalar(array.Std)
	if err != nil {
		return "", err
	}
	lo, err := scalar(array.Min)
	if err != nil {
		return "", err
	}
	hi, err := scalar(array.Max)
	if err != nil {
		return "", err
	}
	prec := flagPrecision
	if prec <= 0 {
		prec = 6
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', prec, 64) }
	return fmt.Sprintf("%-8d %8d %12s %12s %12s %12s",
		j, col.NumElements(), f(mean), f(std), f(lo), f(hi)), nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "YAML config file with load defaults")
	pf.StringVar(&flagDelim, "delim", "detect", "field delimiter: comma, tab, space, detect")
	pf.IntVar(&flagSkipRows, "skip-rows", 0, "leading lines to skip")
	pf.StringVar(&flagComments, "comments", "#", "comment line prefix")
	pf.IntVar(&flagPrecision, "precision", 0, "significant digits for printed floats")

	rootCmd.AddCommand(versionCmd, infoCmd, statsCmd)
}
