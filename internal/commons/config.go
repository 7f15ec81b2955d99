package commons

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"tracknstock/internal/config"
)

// LoadConfig reads an optional YAML file whose nested keys become defaults
// (api.base_url -> API_BASE_URL); environment variables still win. A
// missing file or empty path falls back to the environment alone.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	overrides := make(map[string]any)
	flatten("", tree, overrides)

	return config.LoadWithDefaults(overrides)
}

func flatten(prefix string, tree map[string]any, out map[string]any) {
	for key, value := range tree {
		name := strings.ToUpper(key)
		if prefix != "" {
			name = prefix + "_" + name
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(name, nested, out)
			continue
		}
		out[name] = value
	}
}
