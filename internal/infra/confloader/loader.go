package confloader

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/tidwall/pretty"
)

// StructTag is the struct tag used to map keys onto fields.
const StructTag = "json"

// Loader loads configuration from a file and overlays.
type Loader struct {
	k        *koanf.Koanf
	filePath string
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithConfigFile sets the configuration file path.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{k: koanf.New(".")}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the configured file, if any, and unmarshals into target.
func (l *Loader) Load(target any) error {
	if l.filePath != "" {
		if err := l.LoadFile(l.filePath); err != nil {
			return err
		}
	}
	if err := l.Unmarshal(target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// LoadFile merges the file at path. The error wraps the underlying
// *fs.PathError when the file cannot be read.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	if err := l.k.Load(file.Provider(path), parserFor(path)); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}
	return nil
}

// LoadMap merges data over whatever is already loaded.
func (l *Loader) LoadMap(data map[string]any) error {
	if err := l.k.Load(mapProvider(data), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// Unmarshal decodes the merged configuration into target using json tags.
func (l *Loader) Unmarshal(target any) error {
	return l.k.UnmarshalWithConf("", target, koanf.UnmarshalConf{Tag: StructTag})
}

// Marshal renders the merged configuration in the format selected by path.
func (l *Loader) Marshal(path string) ([]byte, error) {
	b, err := l.k.Marshal(parserFor(path))
	if err != nil {
		return nil, err
	}
	if !isYAML(path) {
		b = pretty.Pretty(b)
	}
	return b, nil
}

// Encode renders v, a struct with json tags, in the format selected by path.
func Encode(path string, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	l := NewLoader()
	if err := l.LoadMap(m); err != nil {
		return nil, err
	}
	return l.Marshal(path)
}

func parserFor(path string) koanf.Parser {
	if isYAML(path) {
		return yaml.Parser()
	}
	return kjson.Parser()
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
