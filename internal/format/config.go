package format

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the format/minify pipeline's optional JSON configuration,
// loaded from a user-supplied path or a source directory's
// "format.json". Its key set is closed: VerifyConfig rejects any other
// top-level or nested key as a schema failure.
type Config struct {
	Whitespace Whitespace `json:"whitespace"`
	Comments   Comments   `json:"comments"`
}

// Whitespace controls indentation rendering during Standard-mode
// formatting.
type Whitespace struct {
	IndentWidth   uint `json:"indent_width"`
	UseTabs       bool `json:"use_tabs"`
	MaxLineLength uint `json:"max_line_length"`
}

// Comments controls how comments are treated. Preserve keeps "//"
// comments in Minify and Deflate output; Standard mode does not read
// either field, and no mode reads NormalizeStyle.
type Comments struct {
	Preserve       bool `json:"preserve"`
	NormalizeStyle bool `json:"normalize_style"`
}

// DefaultConfig returns the configuration used when no config file is
// supplied or discovered, mirroring AssignDefaultConfigurationSettings.
func DefaultConfig() Config {
	return Config{
		Whitespace: Whitespace{IndentWidth: 2, UseTabs: false, MaxLineLength: 100},
		Comments:   Comments{Preserve: true, NormalizeStyle: false},
	}
}

var formatVersionKeys = map[string]bool{"major": true, "minor": true}
var formatTopKeys = map[string]bool{"version": true, "whitespace": true, "comments": true}
var whitespaceKeys = map[string]bool{"indent_width": true, "use_tabs": true, "max_line_length": true}
var commentsKeys = map[string]bool{"preserve": true, "normalize_style": true}

// VerifyConfig runs the schema walk over a generic decode of a format
// configuration document: "version" must be {"major":1,"minor":0};
// "whitespace" and "comments", if present, admit only their closed key
// sets.
func VerifyConfig(j map[string]any) bool {
	for key := range j {
		if !formatTopKeys[key] {
			return false
		}
	}

	version, ok := j["version"].(map[string]any)
	if !ok {
		return false
	}
	for key := range version {
		if !formatVersionKeys[key] {
			return false
		}
	}
	major, ok := asUint(version["major"])
	if !ok || major != 1 {
		return false
	}
	minor, ok := asUint(version["minor"])
	if !ok || minor != 0 {
		return false
	}

	if raw, present := j["whitespace"]; present {
		ws, ok := raw.(map[string]any)
		if !ok {
			return false
		}
		for key, v := range ws {
			if !whitespaceKeys[key] {
				return false
			}
			if key == "use_tabs" {
				if _, ok := v.(bool); !ok {
					return false
				}
				continue
			}
			if _, ok := asUint(v); !ok {
				return false
			}
		}
	}

	if raw, present := j["comments"]; present {
		c, ok := raw.(map[string]any)
		if !ok {
			return false
		}
		for key, v := range c {
			if !commentsKeys[key] {
				return false
			}
			if _, ok := v.(bool); !ok {
				return false
			}
		}
	}

	return true
}

func asUint(v any) (uint, bool) {
	n, ok := v.(float64)
	if !ok || n < 0 {
		return 0, false
	}
	return uint(n), true
}

// LoadConfig reads and validates a format configuration file at path,
// merging any keys it omits with DefaultConfig's values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("format: reading config %s: %w", path, err)
	}

	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return Config{}, fmt.Errorf("format: parsing config %s: %w", path, err)
	}

	if !VerifyConfig(generic) {
		return Config{}, fmt.Errorf("format: config %s failed schema validation", path)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("format: decoding config %s: %w", path, err)
	}

	return cfg, nil
}
