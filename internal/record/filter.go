package record

import (
	"strings"

	"golang.org/x/text/cases"
)

// All is the sentinel that disables a status or type filter.
const All = "all"

// Filter is the transient criteria a page applies to a store.
type Filter struct {
	Status string            `json:"status"`
	Search string            `json:"search"`
	Type   string            `json:"tipo"`
	Extra  map[string]string `json:"extra,omitempty"`
}

// DefaultFilter matches every record.
func DefaultFilter() Filter {
	return Filter{Status: All, Type: All}
}

// FilterPatch carries the fields SetFilter merges into the current criteria.
// Nil fields are left untouched; an empty Extra value removes that key.
type FilterPatch struct {
	Status *string
	Search *string
	Type   *string
	Extra  map[string]string
}

// Apply merges the patch into f and returns the result.
func (p FilterPatch) Apply(f Filter) Filter {
	out := f.clone()
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Search != nil {
		out.Search = *p.Search
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	for k, v := range p.Extra {
		if v == "" {
			delete(out.Extra, k)
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]string)
		}
		out.Extra[k] = v
	}
	return out.normalize()
}

func (f Filter) clone() Filter {
	out := f
	if f.Extra != nil {
		out.Extra = make(map[string]string, len(f.Extra))
		for k, v := range f.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

func (f Filter) normalize() Filter {
	if f.Status == "" {
		f.Status = All
	}
	if f.Type == "" {
		f.Type = All
	}
	return f
}

// Equal reports whether two criteria select the same records.
func (f Filter) Equal(o Filter) bool {
	f, o = f.normalize(), o.normalize()
	if f.Status != o.Status || f.Search != o.Search || f.Type != o.Type || len(f.Extra) != len(o.Extra) {
		return false
	}
	for k, v := range f.Extra {
		if o.Extra[k] != v {
			return false
		}
	}
	return true
}

// Matches reports whether r passes the status, type and search criteria.
// Extra criteria are evaluated by the store's ExtraMatch hook.
func (f Filter) Matches(r Record) bool {
	f = f.normalize()
	if f.Status != All && r.RecordStatus() != f.Status {
		return false
	}
	if f.Type != All {
		t, ok := r.(Typed)
		if !ok || t.RecordType() != f.Type {
			return false
		}
	}
	if f.Search != "" && !matchesSearch(r, f.Search) {
		return false
	}
	return true
}

func matchesSearch(r Record, search string) bool {
	if s, ok := r.(Searchable); ok {
		for _, field := range s.SearchFields() {
			if ContainsFold(field, search) {
				return true
			}
		}
		return false
	}
	return ContainsFold(r.DisplayName(), search)
}

// ContainsFold is a case-insensitive substring test using Unicode case folding.
func ContainsFold(s, substr string) bool {
	return strings.Contains(cases.Fold().String(s), cases.Fold().String(substr))
}
