package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fingervision/ridgemark/internal/enhance"
	"github.com/fingervision/ridgemark/internal/pipeline"
	"github.com/fingervision/ridgemark/internal/utils"
	"github.com/spf13/cobra"
)

const (
	outputFormatJSON = "json"
	outputFormatText = "text"
)

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [image]",
	Short: "Analyze a single fingerprint image",
	Long: `Analyze one fingerprint image, locate the lowest-weight diagnostic
region, and report the number of ridges crossing its diagonal.

Supported formats: JPEG, PNG, BMP, TIFF

Examples:
  ridgemark analyze fingerprint.png
  ridgemark analyze scan.jpg --format text
  ridgemark analyze scan.png --annotated out.png --output result.json`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input file provided")
		}
		path := args[0]

		cfg := GetConfig()

		format := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}
		if format != outputFormatJSON && format != outputFormatText {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)",
				format, strings.Join([]string{outputFormatJSON, outputFormatText}, ", "))
		}

		outputFile := cfg.Output.File
		if cmd.Flags().Changed("output") {
			outputFile, _ = cmd.Flags().GetString("output")
		}

		annotatedPath, _ := cmd.Flags().GetString("annotated")

		if !utils.IsSupportedImage(path) {
			return fmt.Errorf("unsupported image file: %s", path)
		}

		img, meta, err := utils.LoadImage(path)
		if err != nil {
			return fmt.Errorf("failed to load image %s: %w", path, err)
		}

		pl, err := pipeline.NewBuilder().
			WithBlockSize(cfg.Pipeline.BlockSize).
			WithEnhanceConfig(enhance.BasicConfig{
				TargetMean:     cfg.Pipeline.Enhance.TargetMean,
				TargetVariance: cfg.Pipeline.Enhance.TargetVariance,
				BlockSize:      cfg.Pipeline.Enhance.BlockSize,
				VarianceFloor:  cfg.Pipeline.Enhance.VarianceFloor,
			}).
			Build()
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}

		result, annotated, err := pl.Run(img)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		if annotatedPath != "" && annotated != nil {
			if err := utils.SavePNG(annotatedPath, annotated); err != nil {
				return fmt.Errorf("failed to save annotated image: %w", err)
			}
		}

		out, err := formatAnalyzeResult(path, meta, result, format)
		if err != nil {
			return err
		}

		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(out), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func formatAnalyzeResult(path string, meta utils.ImageMetadata, res *pipeline.Result, format string) (string, error) {
	if format == outputFormatJSON {
		payload := struct {
			Path string `json:"path"`
			*pipeline.Result
		}{Path: path, Result: res}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal result: %w", err)
		}
		return string(data), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "File: %s (%dx%d %s)\n", path, meta.Width, meta.Height, meta.Format)
	if res.Region == nil {
		b.WriteString("No fully valid diagnostic region found\n")
		return b.String(), nil
	}
	fmt.Fprintf(&b, "Region: rows [%d, %d), cols [%d, %d)\n",
		res.Region.Region.RowStart, res.Region.Region.RowEnd,
		res.Region.Region.ColStart, res.Region.Region.ColEnd)
	fmt.Fprintf(&b, "Ridges: %d (%s)\n", res.Region.RidgeCount, res.Region.Diagonal)
	return b.String(), nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("format", "f", "json", "output format (json, text)")
	analyzeCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
	analyzeCmd.Flags().StringP("annotated", "a", "", "write the annotated image to this PNG path")
}
