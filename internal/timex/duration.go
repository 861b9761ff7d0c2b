// Package timex holds time helpers for configuration files.
package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so config files can carry either a
// duration string ("15s", "2m") or an integer number of nanoseconds.
type Duration struct {
	time.Duration
}

var errInvalidDuration = errors.New("invalid duration")

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case int:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w %q: %v", errInvalidDuration, value, err)
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("%w: unsupported type %T", errInvalidDuration, v)
	}
	return nil
}
