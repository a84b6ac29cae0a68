package solicitacoes

import "fmt"

const (
	StatusPendente  = "pendente"
	StatusAprovada  = "aprovada"
	StatusRejeitada = "rejeitada"
)

// Solicitante is the collaborator who opened a request.
type Solicitante struct {
	ID     string `json:"id,omitempty"`
	Nome   string `json:"nome" validate:"required"`
	Avatar string `json:"avatar,omitempty"`
}

// Anexo is a file reference attached to a request or its answer.
type Anexo struct {
	Nome string `json:"nome" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

// RespostaGestor is the manager reply attached to a decided request.
type RespostaGestor struct {
	EnviadoEm  string `json:"enviadoEm"`
	EnviadoPor string `json:"enviadoPor"`
	Mensagem   string `json:"mensagem,omitempty"`
}

// Solicitacao is one employee request awaiting a manager decision.
type Solicitacao struct {
	ID               string          `json:"id"`
	Tipo             string          `json:"tipo" validate:"required"`
	Titulo           string          `json:"titulo" validate:"required"`
	Descricao        string          `json:"descricao"`
	Valor            *float64        `json:"valor,omitempty" validate:"omitempty,gte=0"`
	Status           string          `json:"status" validate:"oneof=pendente aprovada rejeitada"`
	Solicitante      Solicitante     `json:"solicitante"`
	Data             string          `json:"data"`
	Urgencia         string          `json:"urgencia" validate:"oneof=baixa media alta"`
	DataInicio       string          `json:"dataInicio,omitempty"`
	DataFim          string          `json:"dataFim,omitempty"`
	DiasSolicitados  int             `json:"diasSolicitados,omitempty" validate:"gte=0"`
	DataDecisao      string          `json:"dataDecisao,omitempty"`
	AprovadoPor      string          `json:"aprovadoPor,omitempty"`
	Anexos           []Anexo         `json:"anexos,omitempty" validate:"dive"`
	RespostaGestor   *RespostaGestor `json:"respostaGestor,omitempty"`
	ArquivosResposta []Anexo         `json:"arquivosResposta,omitempty" validate:"dive"`
}

func (s Solicitacao) RecordID() string { return s.ID }

func (s Solicitacao) RecordStatus() string { return s.Status }

func (s Solicitacao) DisplayName() string { return s.Titulo }

func (s Solicitacao) RecordType() string { return s.Tipo }

func (s Solicitacao) SearchFields() []string {
	return []string{s.Titulo, s.Descricao, s.Solicitante.Nome}
}

type fixtureColaborador struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

// fixtureSolicitacao is the shape served by the mock API.
type fixtureSolicitacao struct {
	ID              string             `json:"id"`
	Tipo            string             `json:"tipo"`
	Status          string             `json:"status"`
	DataSolicitacao string             `json:"dataSolicitacao"`
	DataDecisao     *string            `json:"dataDecisao"`
	Colaborador     fixtureColaborador `json:"colaborador"`
	Motivo          string             `json:"motivo"`
	DataInicio      string             `json:"dataInicio"`
	DataFim         string             `json:"dataFim"`
	DiasSolicitados int                `json:"diasSolicitados"`
	AprovadoPor     string             `json:"aprovadoPor"`
}

func fromFixture(f fixtureSolicitacao) Solicitacao {
	s := Solicitacao{
		ID:              f.ID,
		Tipo:            f.Tipo,
		Titulo:          fmt.Sprintf("Solicitação de %s - %s", f.Tipo, f.Colaborador.Nome),
		Descricao:       f.Motivo,
		Status:          f.Status,
		Solicitante:     Solicitante{ID: f.Colaborador.ID, Nome: f.Colaborador.Nome},
		Data:            f.DataSolicitacao,
		DataInicio:      f.DataInicio,
		DataFim:         f.DataFim,
		DiasSolicitados: f.DiasSolicitados,
	}
	if f.DataDecisao != nil {
		s.DataDecisao = *f.DataDecisao
		s.AprovadoPor = f.AprovadoPor
	}
	return normalize(s)
}

func normalize(s Solicitacao) Solicitacao {
	if s.Status == "" {
		s.Status = StatusPendente
	}
	if s.Urgencia == "" {
		s.Urgencia = "media"
	}
	return s
}
