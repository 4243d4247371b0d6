package profiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Profiles []fileEntry `json:"profiles" toml:"profiles" yaml:"profiles"`
}

type fileEntry struct {
	Name        string  `json:"name" toml:"name" yaml:"name"`
	Description string  `json:"description" toml:"description" yaml:"description"`
	Width       int     `json:"width" toml:"width" yaml:"width"`
	Height      int     `json:"height" toml:"height" yaml:"height"`
	MinSizeKB   float64 `json:"min_kb" toml:"min_kb" yaml:"min_kb"`
	MaxSizeKB   float64 `json:"max_kb" toml:"max_kb" yaml:"max_kb"`
}

func (e fileEntry) command() CreateProfileCommand {
	cmd := CreateProfileCommand{
		Name:      strings.TrimSpace(e.Name),
		Width:     e.Width,
		Height:    e.Height,
		MinSizeKB: e.MinSizeKB,
		MaxSizeKB: e.MaxSizeKB,
	}
	if e.Description != "" {
		desc := e.Description
		cmd.Description = &desc
	}
	return cmd
}

// LoadFile reads a catalog file. The format follows the extension:
// .toml, .yaml/.yml, or .json. Every entry is validated.
func LoadFile(path string) ([]CreateProfileCommand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseFile(filepath.Ext(path), data)
}

// ParseFile decodes catalog data in the format named by ext.
func ParseFile(ext string, data []byte) ([]CreateProfileCommand, error) {
	var file catalogFile
	var err error

	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".json":
		err = json.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Profiles))
	cmds := make([]CreateProfileCommand, 0, len(file.Profiles))

	for i, entry := range file.Profiles {
		cmd := entry.command()
		if err := cmd.Validate(); err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}

		key := strings.ToLower(cmd.Name)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, cmd.Name)
		}
		seen[key] = true
		cmds = append(cmds, cmd)
	}

	return cmds, nil
}
