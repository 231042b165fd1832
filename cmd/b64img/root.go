// Package main implements the command-line interface for the b64img tool.
// It converts base64-encoded image payloads, supplied directly, via file, or
// scraped from HTML/web content, into image files on disk.
//
// The main CLI commands are:
//   - convert: Decode payloads and write image files with detected extensions
//   - detect: Report the MIME type and decoded size of payloads without writing
//
// Each command has various flags for configuration. See the help output for details.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"b64img/internal/source"
	"b64img/pkg/exitcodes"
	"b64img/pkg/imagetype"
	"b64img/pkg/log"
	"b64img/pkg/scanner"
)

// Global flag variables
var (
	cfgFile  string
	logLevel string
)

// AppFs defines the filesystem interface to use, allows mocking in tests.
var AppFs = afero.NewOsFs()

// SetFs replaces the current filesystem with the provided one and returns a
// function to restore it. This is primarily used for testing.
func SetFs(newFs afero.Fs) func() {
	oldFs := AppFs
	AppFs = newFs
	return func() { AppFs = oldFs }
}

var rootCmd = newRootCmd()

// newRootCmd builds the full command tree. Tests construct their own tree to
// avoid flag state leaking between runs.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "b64img",
		Short: "Convert base64 image payloads into image files",
		Long: `b64img converts base64-encoded image payloads into image files on disk.

Payloads can be passed directly as an argument, read from a local file, or
scraped from a fetched web page. The image format is detected automatically
from the binary signature of the decoded bytes, or taken from the declared
MIME type when the payload is a data URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			return setupLogging()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.b64img.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newDetectCmd())
	return cmd
}

// initConfig reads the optional config file and environment variables.
// Recognized keys: output_dir, log_level, http_timeout.
func initConfig() error {
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("http_timeout", source.DefaultTimeout)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".b64img")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("B64IMG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && (errors.As(err, &notFound) || os.IsNotExist(err)) {
			return nil
		}
		if cfgFile != "" {
			return &exitcodes.ExitCodeError{
				Code: exitcodes.ExitInputConfigurationError,
				Err:  fmt.Errorf("failed to read config file %s: %w", cfgFile, err),
			}
		}
	}
	return nil
}

// setupLogging applies the log level from the flag, falling back to config.
func setupLogging() error {
	levelStr := logLevel
	if levelStr == "" {
		levelStr = viper.GetString("log_level")
	}
	if levelStr == "" {
		return nil
	}
	level, err := log.ParseLevel(levelStr)
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  err,
		}
	}
	log.SetLevel(level)
	return nil
}

// Execute runs the root command and exits the process with the error's exit
// code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitCode := exitcodes.ExitGeneralRuntimeError
		if code, ok := exitcodes.IsExitCodeError(err); ok {
			exitCode = code
		}
		log.Error("Command failed", "error", err.Error())
		os.Exit(exitCode)
	}
}

// getCommandContext gets the context from a command or creates a background
// context if none exists.
func getCommandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}

// addInputFlags registers the input source flags shared by convert and detect.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Read the payload or page text from a local file")
	cmd.Flags().StringP("url", "u", "", "Fetch the page text from a URL")
}

// resolveInput builds the input text from the positional argument, --file, or
// --url, mapping resolver failures to the matching exit codes.
func resolveInput(cmd *cobra.Command, args []string) (*source.Input, error) {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get file flag: %w", err),
		}
	}
	url, err := cmd.Flags().GetString("url")
	if err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to get url flag: %w", err),
		}
	}

	opts := source.Options{FilePath: file, URL: url}
	if len(args) > 0 {
		opts.Argument = args[0]
	}

	resolver := source.NewResolver(AppFs, viper.GetDuration("http_timeout"))
	input, err := resolver.Resolve(getCommandContext(cmd), opts)
	if err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: inputErrorCode(opts),
			Err:  err,
		}
	}
	return input, nil
}

// inputErrorCode picks the exit code for a resolver failure based on which
// source was selected.
func inputErrorCode(opts source.Options) int {
	set := 0
	for _, s := range []string{opts.Argument, opts.FilePath, opts.URL} {
		if s != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return exitcodes.ExitMissingInput
	case set > 1:
		return exitcodes.ExitInputConfigurationError
	case opts.FilePath != "":
		return exitcodes.ExitSourceNotFound
	case opts.URL != "":
		return exitcodes.ExitFetchFailed
	default:
		return exitcodes.ExitInputConfigurationError
	}
}

// scanPayloads extracts payloads from the input, falling back to treating the
// whole input as a single raw payload when nothing matched and the input is
// not HTML. An HTML page without any embedded data URL is an error.
func scanPayloads(input *source.Input) ([]string, error) {
	mode := scanner.ModePlain
	if input.IsHTML {
		mode = scanner.ModeHTML
	}
	payloads := scanner.Scan(input.Text, mode)
	if len(payloads) == 0 {
		if input.IsHTML {
			return nil, &exitcodes.ExitCodeError{
				Code: exitcodes.ExitNoPayloadsFound,
				Err:  scanner.ErrNoPayloadsFound,
			}
		}
		payloads = []string{input.Text}
	}
	return payloads, nil
}

// payloadErrorCode maps a payload processing error to its exit code.
func payloadErrorCode(err error) int {
	switch {
	case errors.Is(err, imagetype.ErrMalformedPayload):
		return exitcodes.ExitMalformedPayload
	case errors.Is(err, imagetype.ErrUndetectedFormat):
		return exitcodes.ExitUndetectedFormat
	case errors.Is(err, imagetype.ErrUnsupportedFormat):
		return exitcodes.ExitUnsupportedFormat
	case errors.Is(err, scanner.ErrNoPayloadsFound):
		return exitcodes.ExitNoPayloadsFound
	default:
		return exitcodes.ExitGeneralRuntimeError
	}
}

// nowFunc returns the current time; replaced in tests for stable default
// output filenames.
var nowFunc = time.Now

// defaultBaseName is the output filename used when --output is not given.
func defaultBaseName() string {
	return fmt.Sprintf("image_%d", nowFunc().Unix())
}
