package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileHeader = `# fightsongs configuration.
# Every key is optional; environment variables named FIGHTSONGS_<SECTION>_<KEY>
# (for example FIGHTSONGS_DATA_PATH) override the values below.
`

// Marshal renders the configuration as YAML. Durations are written in Go
// syntax (e.g. 500ms) so the file round-trips through the loader.
func (c *Config) Marshal() ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(c); err != nil {
		return nil, err
	}
	formatDurations(&doc, c)

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatDurations replaces the integer nanosecond values yaml.v3 emits for
// time.Duration with their string form.
func formatDurations(doc *yaml.Node, c *Config) {
	durations := map[string]map[string]string{
		"data":   {"debounce": c.Data.Debounce.String()},
		"server": {"read_timeout": c.Server.ReadTimeout.String()},
		"log":    {"max_age": c.Log.MaxAge.String()},
	}
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		section, ok := durations[root.Content[i].Value]
		if !ok {
			continue
		}
		body := root.Content[i+1]
		for j := 0; j+1 < len(body.Content); j += 2 {
			if v, ok := section[body.Content[j].Value]; ok {
				body.Content[j+1].Tag = "!!str"
				body.Content[j+1].Value = v
			}
		}
	}
}

// Save writes the configuration to path, creating parent directories. It
// refuses to overwrite an existing file unless force is set.
func Save(c *Config, path string, force bool) error {
	if path == "" {
		path = DefaultConfigPath
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
