package calculator

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

// Output selects how the result is written.
type Output string

const (
	// OutputText prints only the version string, without a trailing newline.
	OutputText Output = "text"
	// OutputJSON prints the full result as JSON.
	OutputJSON Output = "json"
	// OutputYAML prints the full result as YAML.
	OutputYAML Output = "yaml"
)

// errUnknownOutput is returned for unsupported output formats.
var errUnknownOutput = errors.New("unknown output format")

// ParseOutput converts user input into an Output.
func ParseOutput(s string) (Output, error) {
	switch o := Output(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OutputText, nil
	case OutputText, OutputJSON, OutputYAML:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q (expected one of text, json, yaml)", errUnknownOutput, s)
	}
}

// Render writes the result in the requested format.
func Render(w io.Writer, output Output, result *Result) error {
	var (
		data []byte
		err  error
	)

	switch output {
	case OutputText, "":
		data = []byte(result.Version)
	case OutputYAML:
		data, err = yaml.Marshal(result)
	case OutputJSON:
		data, err = marshalJSON(result)
	default:
		return fmt.Errorf("%w: %q", errUnknownOutput, output)
	}

	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	return nil
}

// marshalJSON encodes the result as a protobuf Struct. Empty git fields are omitted.
func marshalJSON(result *Result) ([]byte, error) {
	fields := map[string]any{
		"version":      result.Version,
		"variant":      string(result.Variant),
		"offering":     string(result.Offering),
		"base_version": result.BaseVersion,
		"distance":     result.Distance,
		"release":      result.Release,
		"manual":       result.Manual,
	}

	for key, value := range map[string]string{
		"branch":     result.Branch,
		"commit":     result.Commit,
		"short_hash": result.ShortHash,
	} {
		if value != "" {
			fields[key] = value
		}
	}

	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}

	marshalOptions := protojson.MarshalOptions{
		Multiline: true,
		Indent:    "  ",
	}

	data, err := marshalOptions.Marshal(msg)
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}
