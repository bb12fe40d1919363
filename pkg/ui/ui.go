// Package ui provides a unified interface for rendering command results in
// different formats: terminal (rich), text (plain), JSON, YAML and TOML.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/arthur-debert/matrix/pkg/ui/structured"
	"github.com/arthur-debert/matrix/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return text.New(output, text.RichStyler()), nil
	case FormatText:
		return text.New(output, text.PlainStyler()), nil
	case FormatJSON:
		return structured.New(output, structured.JSON), nil
	case FormatYAML:
		return structured.New(output, structured.YAML), nil
	case FormatTOML:
		return structured.New(output, structured.TOML), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
