package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"b64img/pkg/exitcodes"
	"b64img/pkg/imagetype"
)

// detectReport is one payload's detection outcome, serialized for --format yaml.
type detectReport struct {
	Index       int    `yaml:"index"`
	MIME        string `yaml:"mime,omitempty"`
	DecodedSize int    `yaml:"decoded_size_bytes,omitempty"`
	Error       string `yaml:"error,omitempty"`
}

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [payload]",
		Short: "Report the MIME type and decoded size of base64 image payloads",
		Long: `Detect classifies one or more base64 image payloads without writing files.

For each payload it reports the MIME type (from the declared data URL type or
the binary signature of the decoded bytes) and the decoded size in bytes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDetect,
	}
	addInputFlags(cmd)
	cmd.Flags().String("format", "text", "Report format: text or yaml")
	return cmd
}

func runDetect(cmd *cobra.Command, args []string) error {
	input, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}

	payloads, err := scanPayloads(input)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get format flag: %w", err),
		}
	}
	if format != "text" && format != "yaml" {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("invalid format %q: must be text or yaml", format),
		}
	}

	reports := make([]detectReport, 0, len(payloads))
	failed := 0
	var firstErr error
	for i, payload := range payloads {
		report := detectReport{Index: i}
		mime, err := imagetype.Detect(payload)
		if err != nil {
			report.Error = err.Error()
			failed++
			if firstErr == nil {
				firstErr = err
			}
		} else {
			report.MIME = mime
			report.DecodedSize = decodedSize(payload)
		}
		reports = append(reports, report)
	}

	out := cmd.OutOrStdout()
	if format == "yaml" {
		data, err := yaml.Marshal(reports)
		if err != nil {
			return &exitcodes.ExitCodeError{
				Code: exitcodes.ExitInternalError,
				Err:  fmt.Errorf("failed to marshal detection report: %w", err),
			}
		}
		fmt.Fprint(out, string(data))
	} else {
		for _, r := range reports {
			if r.Error != "" {
				fmt.Fprintf(out, "payload %d: error: %s\n", r.Index, r.Error)
				continue
			}
			fmt.Fprintf(out, "payload %d: %s (%d bytes)\n", r.Index, r.MIME, r.DecodedSize)
		}
	}

	if failed > 0 {
		return &exitcodes.ExitCodeError{
			Code: payloadErrorCode(firstErr),
			Err:  fmt.Errorf("%d of %d payloads failed detection: %w", failed, len(payloads), firstErr),
		}
	}
	return nil
}

// decodedSize returns the byte length the payload decodes to, stripping any
// data-URL envelope first.
func decodedSize(payload string) int {
	body := payload
	if _, data, ok := imagetype.ParseDataURL(payload); ok {
		body = data
	}
	return len(imagetype.DecodeLenient(body))
}
