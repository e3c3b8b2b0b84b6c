package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dicom-redactor/internal/cli"
	"dicom-redactor/internal/config"
	"dicom-redactor/internal/logging"
)

// Exit codes
const (
	exitOK          = 0
	exitFileFailure = 1
	exitError       = 2
)

// errFilesFailed signals that the batch ran but some files produced no output.
var errFilesFailed = errors.New("some files could not be redacted")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
		os.Exit(exitOK)
	case errors.Is(err, errFilesFailed):
		os.Exit(exitFileFailure)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitError)
	}
}

func rootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "redactor [flags] <source-dir> <target-dir>",
		Short: "Remove patient-identifying attributes from DICOM files",
		Long: `redactor searches <source-dir> recursively for DICOM files and writes a copy
of each to <target-dir> (same file name, flat) with every attribute on the
de-identification list removed. All other attributes and the pixel data are
copied unchanged.

Run "redactor fields" to print the list.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			cfg.Source, cfg.Target = args[0], args[1]

			log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			stats, err := cli.Run(cmd.Context(), cfg, cmd.OutOrStdout(), log)
			if err != nil {
				return err
			}
			if stats.Failed > 0 {
				return errFilesFailed
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "YAML config file")
	f.IntP("workers", "w", 0, "files processed in parallel (0 = GOMAXPROCS)")
	f.String("failure-policy", "continue", "on a file error: continue|abort")
	f.StringSlice("extensions", []string{".dcm"}, "file extensions treated as DICOM")
	f.Bool("sniff", false, "also accept files with the DICM preamble regardless of extension")
	f.StringSlice("include", nil, "only process paths matching these globs (relative to source)")
	f.StringSlice("exclude", nil, "skip paths matching these globs (relative to source)")
	f.Bool("resume", false, "skip files redacted by a previous run that have not changed")
	f.BoolP("dry-run", "n", false, "list what would be removed, write nothing")
	f.String("report", "", "write a YAML run report to this path")
	f.String("log-level", "info", "debug|info|warn|error")
	f.String("log-format", "console", "console|json")
	f.BoolP("quiet", "q", false, "no header, progress bar or summary")

	cmd.AddCommand(fieldsCmd())
	return cmd
}

func fieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "Print the attribute keywords that are removed",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cli.PrintFields(cmd.OutOrStdout())
		},
	}
}
