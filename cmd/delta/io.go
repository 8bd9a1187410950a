package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/brunoga/delta"
	"github.com/goccy/go-yaml"
	yamlv3 "gopkg.in/yaml.v3"
)

var stdin io.Reader = os.Stdin

func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// readValue reads a JSON or YAML document.
func readValue(path string) (any, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	v, err := decodeValue(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	theLog.Debug("read document", "path", path, "bytes", len(data))
	return v, nil
}

func decodeValue(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return delta.Normalize(v)
}

// readChange reads a change in wire format, written as JSON or YAML.
func readChange(path string) (delta.Change, error) {
	v, err := readValue(path)
	if err != nil {
		return delta.Change{}, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return delta.Change{}, fmt.Errorf("error decoding %s: %w", path, err)
	}
	c, err := delta.ParseChange(data)
	if err != nil {
		return delta.Change{}, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return c, nil
}

// write encodes v as JSON, or YAML when selected.
func (cfg *MainConfig) write(w io.Writer, v any) error {
	if cfg.Y {
		enc := yamlv3.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// writeChange encodes c in wire format.
func (cfg *MainConfig) writeChange(w io.Writer, c delta.Change) error {
	v, err := changeValue(c)
	if err != nil {
		return err
	}
	return cfg.write(w, v)
}

func changeValue(c delta.Change) (any, error) {
	data, err := c.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("error encoding change: %w", err)
	}
	return delta.DecodeValue(data)
}
