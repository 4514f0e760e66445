package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tilegrid/pkg/core/grid"
	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Format is a board file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported board file %q (want .json or .toml)", path)
	}
}

// Read decodes a board from r.
func Read(r io.Reader, format Format) (*Board, error) {
	switch format {
	case FormatJSON:
		return readJSON(r)
	case FormatTOML:
		var b Board
		if _, err := toml.NewDecoder(r).Decode(&b); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		return &b, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}

func readJSON(r io.Reader) (*Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var l grid.Layout
		if err := json.Unmarshal(trimmed, &l); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json layout")
		}
		return &Board{Layout: l}, nil
	}
	var b Board
	if err := json.Unmarshal(trimmed, &b); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return &b, nil
}

// ReadFile reads the board file at path.
func ReadFile(path string) (*Board, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "board file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	b, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Marshal encodes b in the given format.
func Marshal(b *Board, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, b, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes b to w.
func Write(w io.Writer, b *Board, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(b); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}

// WriteFile writes b to path in the format its extension selects.
func WriteFile(path string, b *Board) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(b, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
