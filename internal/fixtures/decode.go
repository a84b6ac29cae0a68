package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cfohub/cfohub/internal/platform/httpx"
	"github.com/cfohub/cfohub/internal/record"
)

// Decode converts fixtures into domain records through their JSON form.
// Numeric top-level ids are rendered as strings so every store keys on text.
func Decode[T any](items []Fixture) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		normalized := make(Fixture, len(item))
		for k, v := range item {
			normalized[k] = v
		}
		if n, ok := normalized["id"].(int); ok {
			normalized["id"] = strconv.Itoa(n)
		}
		buf, err := json.Marshal(normalized)
		if err != nil {
			return nil, fmt.Errorf("fixtures: encode item %d: %w", i, err)
		}
		var v T
		if err := json.Unmarshal(buf, &v); err != nil {
			return nil, fmt.Errorf("fixtures: decode item %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Loader returns a record loader that lists resource name and decodes each
// fixture straight into T.
func Loader[T record.Record](p *Provider, name string) record.Loader[T] {
	return LoaderFrom(p, name, func(v T) T { return v })
}

// LoaderFrom decodes fixtures into the wire shape F and converts each one
// into the domain record T. Failures surface as upstream errors.
func LoaderFrom[F any, T record.Record](p *Provider, name string, convert func(F) T) record.Loader[T] {
	return func(ctx context.Context) ([]T, error) {
		items, err := p.List(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", httpx.ErrUpstream, err)
		}
		decoded, err := Decode[F](items)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", httpx.ErrUpstream, err)
		}
		out := make([]T, 0, len(decoded))
		for _, v := range decoded {
			out = append(out, convert(v))
		}
		return out, nil
	}
}
