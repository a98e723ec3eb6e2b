package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fingervision/ridgemark/internal/batch"
	"github.com/spf13/cobra"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch [files or directories...]",
	Short: "Analyze many fingerprint images in parallel",
	Long: `Analyze multiple fingerprint images or whole directories with a pool
of parallel workers. Each worker runs its own pipeline instance.

Examples:
  ridgemark batch scans/
  ridgemark batch scans/ --recursive --workers 8
  ridgemark batch a.png b.png --format text --output results.txt
  ridgemark batch scans/ --annotated-dir out/ --include "*.png"`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files or directories provided")
		}

		cfg := GetConfig()

		bcfg := batch.DefaultConfig()
		bcfg.BlockSize = cfg.Pipeline.BlockSize
		bcfg.Format = cfg.Output.Format
		bcfg.OutputFile = cfg.Output.File
		bcfg.AnnotatedDir = cfg.Output.AnnotatedDir
		if cfg.Batch.Workers > 0 {
			bcfg.Workers = cfg.Batch.Workers
		}
		bcfg.Recursive = cfg.Batch.Recursive
		bcfg.IncludePatterns = cfg.Batch.IncludePatterns
		bcfg.ExcludePatterns = cfg.Batch.ExcludePatterns

		if cmd.Flags().Changed("format") {
			bcfg.Format, _ = cmd.Flags().GetString("format")
		}
		if cmd.Flags().Changed("output") {
			bcfg.OutputFile, _ = cmd.Flags().GetString("output")
		}
		if cmd.Flags().Changed("annotated-dir") {
			bcfg.AnnotatedDir, _ = cmd.Flags().GetString("annotated-dir")
		}
		if cmd.Flags().Changed("workers") {
			bcfg.Workers, _ = cmd.Flags().GetInt("workers")
		}
		if cmd.Flags().Changed("recursive") {
			bcfg.Recursive, _ = cmd.Flags().GetBool("recursive")
		}
		if cmd.Flags().Changed("include") {
			bcfg.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
		}
		if cmd.Flags().Changed("exclude") {
			bcfg.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")
		}

		res, err := batch.ProcessBatch(args, bcfg)
		if err != nil {
			return err
		}

		out, err := batch.FormatResult(res, bcfg.Format)
		if err != nil {
			return err
		}

		if bcfg.OutputFile != "" {
			if err := os.WriteFile(bcfg.OutputFile, []byte(out), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("format", "f", "json", "output format (json, text)")
	batchCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
	batchCmd.Flags().String("annotated-dir", "", "write annotated PNGs into this directory")
	batchCmd.Flags().IntP("workers", "w", 0, "number of parallel workers (default: number of CPUs)")
	batchCmd.Flags().BoolP("recursive", "r", false, "recurse into subdirectories")
	batchCmd.Flags().StringSlice("include", nil, "glob patterns of files to include")
	batchCmd.Flags().StringSlice("exclude", nil, "glob patterns of files to exclude")
}
