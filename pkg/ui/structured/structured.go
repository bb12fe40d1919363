// Package structured renders command results as JSON, YAML or TOML.
package structured

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/matrix/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encoding selects the serialization.
type Encoding int

const (
	JSON Encoding = iota
	YAML
	TOML
)

// Renderer serializes results to w.
type Renderer struct {
	w        io.Writer
	encoding Encoding
}

// New creates a structured renderer.
func New(w io.Writer, encoding Encoding) *Renderer {
	return &Renderer{w: w, encoding: encoding}
}

// errorPayload is the structured form of a failed command.
type errorPayload struct {
	Error   string                 `json:"error" yaml:"error"`
	Code    string                 `json:"code,omitempty" yaml:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// messagePayload wraps plain messages.
type messagePayload struct {
	Message string `json:"message" yaml:"message"`
}

// RenderResult serializes result.
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encode(result)
}

// RenderError serializes err with its code and details.
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}
	return r.encode(errorPayload{
		Error:   err.Error(),
		Code:    string(errors.GetErrorCode(err)),
		Details: errors.GetErrorDetails(err),
	})
}

// RenderMessage serializes msg as {"message": msg}.
func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(messagePayload{Message: msg})
}

func (r *Renderer) encode(v interface{}) error {
	switch r.encoding {
	case JSON:
		encoder := json.NewEncoder(r.w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case YAML:
		encoder := yaml.NewEncoder(r.w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	case TOML:
		doc, err := tomlDocument(v)
		if err != nil {
			return err
		}
		return toml.NewEncoder(r.w).Encode(doc)
	default:
		return fmt.Errorf("unknown encoding %d", r.encoding)
	}
}

// tomlDocument converts v to a table TOML can encode. Values go through
// their JSON form so custom marshalers and json tags apply. Nulls are
// dropped and non-table roots are wrapped under "items" or "value".
func tomlDocument(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}

	switch root := dropNulls(generic).(type) {
	case map[string]interface{}:
		return root, nil
	case []interface{}:
		return map[string]interface{}{"items": root}, nil
	case nil:
		return map[string]interface{}{}, nil
	default:
		return map[string]interface{}{"value": root}, nil
	}
}

func dropNulls(v interface{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		for key, item := range value {
			if item == nil {
				delete(value, key)
				continue
			}
			value[key] = dropNulls(item)
		}
		return value
	case []interface{}:
		out := value[:0]
		for _, item := range value {
			if item != nil {
				out = append(out, dropNulls(item))
			}
		}
		return out
	default:
		return v
	}
}
