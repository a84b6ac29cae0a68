package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cfohub/cfohub/internal/fixtures"
)

// DumpFixtures writes the generated list for resource in the given format
// ("json" or "yaml"). An empty resource writes the resource catalogue with
// list sizes instead.
func DumpFixtures(ctx context.Context, p *fixtures.Provider, resource, format string, w io.Writer) error {
	var out any
	if resource == "" {
		sizes := make(map[string]int)
		for _, name := range p.Resources() {
			n, _ := p.Size(name)
			sizes[name] = n
		}
		out = sizes
	} else {
		items, err := p.List(ctx, resource)
		if err != nil {
			return err
		}
		out = items
	}
	return Encode(w, format, out)
}

// Encode writes v as indented JSON or YAML.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toYAMLFriendly(v)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// toYAMLFriendly round-trips v through JSON so yaml sees plain maps and the
// json field names.
func toYAMLFriendly(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
