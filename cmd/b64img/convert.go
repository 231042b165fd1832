package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"b64img/pkg/convert"
	"b64img/pkg/exitcodes"
	"b64img/pkg/log"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [payload]",
		Short: "Convert base64 image payloads into image files",
		Long: `Convert decodes one or more base64 image payloads and writes them to disk.

The payload can be passed directly (raw base64 or a data URL), read from a
file with --file, or scraped from a web page with --url. When the input is
HTML, every embedded data URL is extracted and converted; payloads that fail
to convert are reported and skipped without aborting the rest of the batch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConvert,
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Output filename (extension appended from the detected format if missing)")
	cmd.Flags().StringP("outputdir", "d", "", "Output directory (default from config, falling back to the current directory)")
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}

	payloads, err := scanPayloads(input)
	if err != nil {
		return err
	}
	log.Debug("Scanned input", "payloads", len(payloads), "html", input.IsHTML)

	outputName, err := cmd.Flags().GetString("output")
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get output flag: %w", err),
		}
	}
	outputDir, err := cmd.Flags().GetString("outputdir")
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get outputdir flag: %w", err),
		}
	}
	if outputDir == "" {
		outputDir = viper.GetString("output_dir")
	}
	if outputName == "" {
		outputName = defaultBaseName()
	}

	results := convert.Batch(payloads)

	failed := 0
	var firstErr error
	for _, res := range results {
		if res.Err != nil {
			log.Warn("Skipping payload", "index", res.Index, "error", res.Err.Error())
			failed++
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}

		path, err := writeImage(AppFs, outputDir, outputName, res.Image)
		if err != nil {
			log.Warn("Failed to write image", "index", res.Index, "error", err.Error())
			failed++
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		log.Info("Wrote image", "path", path, "mime", res.Image.MIME, "bytes", len(res.Image.Data))
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	if failed > 0 {
		code := payloadErrorCode(firstErr)
		if c, ok := exitcodes.IsExitCodeError(firstErr); ok {
			code = c
		}
		return &exitcodes.ExitCodeError{
			Code: code,
			Err:  fmt.Errorf("%d of %d payloads failed: %w", failed, len(results), firstErr),
		}
	}
	return nil
}
