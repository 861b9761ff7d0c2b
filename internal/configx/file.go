// Package configx holds helpers shared by the client and server config
// loaders.
package configx

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeFile reads path into v. Files ending in .yaml or .yml are parsed as
// YAML, everything else as JSON.
func DecodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", filepath.Base(path), err)
	}
	return nil
}
