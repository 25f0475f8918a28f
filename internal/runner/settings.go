package runner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Settings configures a batch run. The YAML fields mirror the settings file;
// the rest are set by the caller.
type Settings struct {
	Config        yaml.Node `yaml:"config"`        // overlay configuration object
	Plugins       []string  `yaml:"plugins"`       // identifiers referenced in plugins
	PluginImports string    `yaml:"pluginImports"` // prefix placed above instrumented modules
	Verify        bool      `yaml:"verify"`
	Jobs          int       `yaml:"jobs"`

	// Descriptor, when non-empty, is used verbatim as the config descriptor
	// instead of one built from Config and Plugins.
	Descriptor string      `yaml:"-"`
	Write      bool        `yaml:"-"`
	Logger     *zap.Logger `yaml:"-"`
}

// LoadSettings reads a YAML settings file.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// DescriptorJSON returns the config descriptor handed to the rewriter:
// {"config": <Config>, "plugins": "[a, b]"}, keeping Config's key order.
func (s Settings) DescriptorJSON() (string, error) {
	if s.Descriptor != "" {
		return s.Descriptor, nil
	}
	var buf bytes.Buffer
	buf.WriteString(`{"config": `)
	if err := writeNodeJSON(&buf, &s.Config); err != nil {
		return "", fmt.Errorf("settings config: %w", err)
	}
	plugins, err := json.Marshal("[" + strings.Join(s.Plugins, ", ") + "]")
	if err != nil {
		return "", err
	}
	buf.WriteString(`, "plugins": `)
	buf.Write(plugins)
	buf.WriteByte('}')
	return buf.String(), nil
}

func (s Settings) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// writeNodeJSON encodes a YAML node as JSON. Mapping keys keep document order,
// which a round trip through map[string]any would lose.
func writeNodeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case 0:
		buf.WriteString("{}")
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("{}")
			return nil
		}
		return writeNodeJSON(buf, n.Content[0])
	case yaml.AliasNode:
		return writeNodeJSON(buf, n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteString(", ")
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteString(": ")
			if err := writeNodeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := writeNodeJSON(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		buf.Write(b)
	default:
		return fmt.Errorf("line %d: unsupported yaml node", n.Line)
	}
	return nil
}
