// Package beneficios manages the benefits catalogue.
package beneficios

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/record"
)

// StoreName is the fixture resource and store name.
const StoreName = "beneficios"

// NewStore builds the benefits store.
func NewStore(p *fixtures.Provider) *record.Store[Beneficio] {
	return record.NewStore(record.Options[Beneficio]{
		Name:   StoreName,
		Loader: fixtures.LoaderFrom(p, StoreName, normalize),
		SetID: func(b Beneficio, id string) Beneficio {
			b.ID = id
			return b
		},
		ExtraMatch: func(b Beneficio, extra map[string]string) bool {
			v, ok := extra["fornecedor"]
			return !ok || strings.EqualFold(b.Fornecedor, v)
		},
	})
}

// Service manages benefits.
type Service struct {
	*collection.Service[Beneficio]
}

// NewService constructs the benefits service.
func NewService(store *record.Store[Beneficio]) *Service {
	return &Service{Service: collection.NewService(store, form.Schema[Beneficio]{
		Defaults:  func() Beneficio { return Beneficio{Ativo: true} },
		Normalize: normalize,
		Rules:     []form.Rule[Beneficio]{form.StructRule[Beneficio](form.NewValidator())},
	})}
}

// Toggle flips a benefit between active and inactive.
func (s *Service) Toggle(ctx context.Context, id string) (Beneficio, error) {
	return s.Transition(ctx, id, func(b Beneficio) (Beneficio, error) {
		b.Ativo = !b.Ativo
		return b, nil
	})
}

// CustoTipo aggregates active benefits of one type.
type CustoTipo struct {
	Tipo        string  `json:"tipo"`
	Quantidade  int     `json:"quantidade"`
	CustoMensal float64 `json:"custoMensal"`
}

// Resumo summarises the active catalogue.
type Resumo struct {
	Total              int         `json:"total"`
	Ativos             int         `json:"ativos"`
	Beneficiarios      int         `json:"beneficiarios"`
	CustoTotalMensal   float64     `json:"custoTotalMensal"`
	CustoEmpresaMensal float64     `json:"custoEmpresaMensal"`
	PorTipo            []CustoTipo `json:"porTipo"`
}

// Summary computes monthly costs over the active benefits.
func (s *Service) Summary(ctx context.Context) (Resumo, error) {
	if err := s.Ensure(ctx); err != nil {
		return Resumo{}, err
	}
	all := s.Store().All()
	out := Resumo{Total: len(all), PorTipo: []CustoTipo{}}
	byTipo := make(map[string]*CustoTipo)
	for _, b := range all {
		if !b.Ativo {
			continue
		}
		out.Ativos++
		out.Beneficiarios += b.Beneficiarios
		out.CustoTotalMensal += b.CustoMensal()
		out.CustoEmpresaMensal += b.ValorEmpresa * float64(b.Beneficiarios)
		ct, ok := byTipo[b.Tipo]
		if !ok {
			ct = &CustoTipo{Tipo: b.Tipo}
			byTipo[b.Tipo] = ct
		}
		ct.Quantidade++
		ct.CustoMensal += b.CustoMensal()
	}
	for _, ct := range byTipo {
		ct.CustoMensal = cents(ct.CustoMensal)
		out.PorTipo = append(out.PorTipo, *ct)
	}
	sort.Slice(out.PorTipo, func(i, j int) bool { return out.PorTipo[i].Tipo < out.PorTipo[j].Tipo })
	out.CustoTotalMensal = cents(out.CustoTotalMensal)
	out.CustoEmpresaMensal = cents(out.CustoEmpresaMensal)
	return out, nil
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}
