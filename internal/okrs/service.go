// Package okrs tracks objectives and key results.
package okrs

import (
	"context"
	"fmt"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/record"
	"github.com/cfohub/cfohub/internal/shared"
)

// StoreName is the fixture resource and store name.
const StoreName = "okrs"

// NewStore builds the OKR store.
func NewStore(p *fixtures.Provider) *record.Store[OKR] {
	return record.NewStore(record.Options[OKR]{
		Name:   StoreName,
		Loader: fixtures.LoaderFrom(p, StoreName, fromFixture),
		NewID:  record.NumericID[OKR],
		SetID: func(o OKR, id string) OKR {
			o.ID = id
			return o
		},
		ExtraMatch: func(o OKR, extra map[string]string) bool {
			if v, ok := extra["periodo"]; ok && o.Periodo != v {
				return false
			}
			if v, ok := extra["owner"]; ok && o.Owner.ID != v {
				return false
			}
			return true
		},
	})
}

// Service manages OKRs.
type Service struct {
	*collection.Service[OKR]
}

// NewService constructs the OKR service. Progress values are always
// derived, so any submitted progresso is overwritten.
func NewService(store *record.Store[OKR]) *Service {
	return &Service{Service: collection.NewService(store, form.Schema[OKR]{
		Defaults: func() OKR {
			return OKR{Tipo: "empresa", Status: "planejamento", ResultadosChave: []ResultadoChave{}}
		},
		Normalize: recalculate,
		Rules:     []form.Rule[OKR]{form.StructRule[OKR](form.NewValidator())},
	})}
}

// UpdateKeyResult records the current value of one key result and
// recomputes progress.
func (s *Service) UpdateKeyResult(ctx context.Context, id, krID string, atual float64) (OKR, error) {
	if atual < 0 {
		return OKR{}, form.Invalid("atual", "valor abaixo do mínimo")
	}
	return s.Transition(ctx, id, func(o OKR) (OKR, error) {
		krs := append([]ResultadoChave(nil), o.ResultadosChave...)
		found := false
		for i := range krs {
			if krs[i].ID == krID {
				krs[i].Atual = atual
				found = true
			}
		}
		if !found {
			return o, fmt.Errorf("okr %s key result %s: %w", id, krID, shared.ErrNotFound)
		}
		o.ResultadosChave = krs
		return recalculate(o), nil
	})
}
