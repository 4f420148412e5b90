// Package commands provides CLI command handlers for reachmeta.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/reachmeta"
	"github.com/erraggy/reachmeta/internal/cliutil"
	"github.com/erraggy/reachmeta/metadata"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ErrBreakingChanges is returned by HandleDiff when the revision removes
// access. main exits with status 1 without printing it.
var ErrBreakingChanges = errors.New("breaking changes found")

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// ParseKindFlag converts an optional --kind value. An empty value means the
// kind is taken from each file name.
func ParseKindFlag(value string) (metadata.Kind, error) {
	if value == "" {
		return "", nil
	}
	return metadata.ParseKind(value)
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(out))
	return nil
}

// ValidateOutputPath checks if the output path is safe to write to
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	if err := RejectSymlinkOutput(absOutputPath); err != nil {
		return err
	}

	// Existing output is overwritten, but say so.
	if _, err := os.Stat(outputPath); err == nil {
		cliutil.Writef(os.Stderr, "Warning: output file %s already exists and will be overwritten\n", outputPath)
	}
	return nil
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// FormatSourcePath returns a display-friendly path for a metadata source.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSourcePath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// outputHeader writes the banner shared by the text output of every command.
func outputHeader(title string) {
	cliutil.Writef(os.Stderr, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))
	cliutil.Writef(os.Stderr, "reachmeta version: %s\n", reachmeta.Version())
}
