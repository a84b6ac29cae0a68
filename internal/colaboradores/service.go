// Package colaboradores keeps the employee roster used by payroll and
// reminder generation.
package colaboradores

import (
	"context"
	"strings"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/record"
)

// StoreName is the fixture resource and store name.
const StoreName = "colaboradores"

// NewStore builds the roster store. New employees get max(id)+1.
func NewStore(p *fixtures.Provider) *record.Store[Colaborador] {
	return record.NewStore(record.Options[Colaborador]{
		Name:   StoreName,
		Loader: fixtures.LoaderFrom(p, StoreName, fromFixture),
		NewID:  record.NumericID[Colaborador],
		SetID: func(c Colaborador, id string) Colaborador {
			c.ID = id
			return c
		},
		ExtraMatch: matchExtra,
	})
}

func matchExtra(c Colaborador, extra map[string]string) bool {
	for key, want := range extra {
		var got string
		switch key {
		case "departamento":
			got = c.Departamento
		case "cargo":
			got = c.Cargo
		case "gerente":
			got = c.Gerente
		default:
			continue
		}
		if !strings.EqualFold(got, want) {
			return false
		}
	}
	return true
}

// Service manages the roster.
type Service struct {
	*collection.Service[Colaborador]
}

// NewService constructs the roster service.
func NewService(store *record.Store[Colaborador]) *Service {
	return &Service{Service: collection.NewService(store, form.Schema[Colaborador]{
		Defaults:  func() Colaborador { return normalize(Colaborador{}) },
		Normalize: normalize,
		Rules:     []form.Rule[Colaborador]{form.StructRule[Colaborador](form.NewValidator())},
	})}
}

// Active returns every employee not marked inativo.
func (s *Service) Active(ctx context.Context) ([]Colaborador, error) {
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}
	all := s.Store().All()
	out := make([]Colaborador, 0, len(all))
	for _, c := range all {
		if c.Status != StatusInativo {
			out = append(out, c)
		}
	}
	return out, nil
}
