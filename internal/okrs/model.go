package okrs

import (
	"math"
	"strconv"
)

// ResultadoChave is one measurable key result.
type ResultadoChave struct {
	ID        string  `json:"id"`
	Descricao string  `json:"descricao" validate:"required"`
	Meta      float64 `json:"meta" validate:"gt=0"`
	Atual     float64 `json:"atual" validate:"gte=0"`
	Unidade   string  `json:"unidade,omitempty"`
	Progresso int     `json:"progresso"`
}

// Owner identifies who is accountable for an objective.
type Owner struct {
	ID     string `json:"id,omitempty"`
	Nome   string `json:"nome"`
	Avatar string `json:"avatar,omitempty"`
}

// OKR is an objective with its key results.
type OKR struct {
	ID              string           `json:"id"`
	Objetivo        string           `json:"objetivo" validate:"required"`
	Descricao       string           `json:"descricao,omitempty"`
	Tipo            string           `json:"tipo" validate:"oneof=empresa time pessoal"`
	Periodo         string           `json:"periodo"`
	Owner           Owner            `json:"owner"`
	Status          string           `json:"status" validate:"oneof=planejamento em_progresso concluido"`
	Progresso       int              `json:"progresso"`
	ResultadosChave []ResultadoChave `json:"resultadosChave" validate:"dive"`
	DataCriacao     string           `json:"dataCriacao,omitempty"`
	DataFinalizacao string           `json:"dataFinalizacao,omitempty"`
}

func (o OKR) RecordID() string { return o.ID }

func (o OKR) RecordStatus() string { return o.Status }

func (o OKR) DisplayName() string { return o.Objetivo }

func (o OKR) RecordType() string { return o.Tipo }

// KeyResultProgress is round(atual/meta*100); a zero meta yields 0.
func KeyResultProgress(atual, meta float64) int {
	if meta <= 0 {
		return 0
	}
	return int(math.Round(atual / meta * 100))
}

// ObjectiveProgress is the rounded mean of the key result progress values.
func ObjectiveProgress(krs []ResultadoChave) int {
	if len(krs) == 0 {
		return 0
	}
	sum := 0
	for _, kr := range krs {
		sum += kr.Progresso
	}
	return int(math.Round(float64(sum) / float64(len(krs))))
}

// recalculate derives every progress value and numbers key results
// without an id.
func recalculate(o OKR) OKR {
	krs := make([]ResultadoChave, len(o.ResultadosChave))
	for i, kr := range o.ResultadosChave {
		if kr.ID == "" {
			kr.ID = strconv.Itoa(i + 1)
		}
		kr.Progresso = KeyResultProgress(kr.Atual, kr.Meta)
		krs[i] = kr
	}
	o.ResultadosChave = krs
	o.Progresso = ObjectiveProgress(krs)
	if o.Tipo == "" {
		o.Tipo = "empresa"
	}
	return o
}

type fixtureKR struct {
	ID        string  `json:"id"`
	Descricao string  `json:"descricao"`
	Progresso float64 `json:"progresso"`
	Meta      float64 `json:"meta"`
}

// fixtureOKR is the shape served by the mock API, which reports key result
// progress without the current value.
type fixtureOKR struct {
	ID              string      `json:"id"`
	Objetivo        string      `json:"objetivo"`
	Descricao       string      `json:"descricao"`
	Periodo         string      `json:"periodo"`
	Status          string      `json:"status"`
	Responsavel     string      `json:"responsavel"`
	ResponsavelID   string      `json:"responsavelId"`
	KeyResults      []fixtureKR `json:"keyResults"`
	DataCriacao     string      `json:"dataCriacao"`
	DataFinalizacao string      `json:"dataFinalizacao"`
}

func fromFixture(f fixtureOKR) OKR {
	o := OKR{
		ID:              f.ID,
		Objetivo:        f.Objetivo,
		Descricao:       f.Descricao,
		Periodo:         f.Periodo,
		Owner:           Owner{ID: f.ResponsavelID, Nome: f.Responsavel},
		Status:          f.Status,
		DataCriacao:     f.DataCriacao,
		DataFinalizacao: f.DataFinalizacao,
	}
	for _, kr := range f.KeyResults {
		o.ResultadosChave = append(o.ResultadosChave, ResultadoChave{
			ID:        kr.ID,
			Descricao: kr.Descricao,
			Meta:      kr.Meta,
			Atual:     kr.Progresso * kr.Meta / 100,
		})
	}
	return recalculate(o)
}
