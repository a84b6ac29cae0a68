package lembretes

import (
	"time"
)

// Reminder kinds.
const (
	TipoContratoExperiencia = "contrato_experiencia"
	TipoFeriasVencendo      = "ferias_vencendo"
	TipoFeriasPeriodo       = "ferias_periodo"
	TipoDocumentoVencendo   = "documento_vencendo"
	TipoAniversario         = "aniversario"
	TipoAvaliacaoDesempenho = "avaliacao_desempenho"
	TipoContratoVencendo    = "contrato_vencendo"
	TipoOutro               = "outro"
)

// Reminder states. Pending covers pendente and visualizado.
const (
	StatusPendente    = "pendente"
	StatusVisualizado = "visualizado"
	StatusConcluido   = "concluido"
	StatusDispensado  = "dispensado"
)

const (
	PrioridadeAlta  = "alta"
	PrioridadeMedia = "media"
	PrioridadeBaixa = "baixa"
)

// DateLayout is the calendar date format of every reminder date.
const DateLayout = "2006-01-02"

// Acao is a follow-up offered with a reminder.
type Acao struct {
	Label    string `json:"label"`
	Tipo     string `json:"tipo" validate:"oneof=link acao"`
	Destino  string `json:"destino,omitempty"`
	Callback string `json:"callback,omitempty"`
}

// Lembrete is one HR reminder.
type Lembrete struct {
	ID               string         `json:"id"`
	Tipo             string         `json:"tipo" validate:"oneof=contrato_experiencia ferias_vencendo ferias_periodo documento_vencendo aniversario avaliacao_desempenho contrato_vencendo outro"`
	Prioridade       string         `json:"prioridade" validate:"oneof=alta media baixa"`
	Status           string         `json:"status" validate:"oneof=pendente visualizado concluido dispensado"`
	Titulo           string         `json:"titulo" validate:"required"`
	Descricao        string         `json:"descricao"`
	ColaboradorID    string         `json:"colaboradorId,omitempty"`
	ColaboradorNome  string         `json:"colaboradorNome,omitempty"`
	DataEvento       string         `json:"dataEvento" validate:"required,datetime=2006-01-02"`
	DataLembrete     string         `json:"dataLembrete"`
	DataVisualizacao string         `json:"dataVisualizacao,omitempty"`
	DataConclusao    string         `json:"dataConclusao,omitempty"`
	Acoes            []Acao         `json:"acoes,omitempty" validate:"dive"`
	Metadados        map[string]any `json:"metadados,omitempty"`
}

func (l Lembrete) RecordID() string { return l.ID }

func (l Lembrete) RecordStatus() string { return l.Status }

func (l Lembrete) DisplayName() string { return l.Titulo }

func (l Lembrete) RecordType() string { return l.Tipo }

func (l Lembrete) SearchFields() []string {
	return []string{l.Titulo, l.Descricao, l.ColaboradorNome}
}

func (l Lembrete) RecordPriority() string { return l.Prioridade }

// RecordDate is the event date; unparseable dates sort first.
func (l Lembrete) RecordDate() time.Time {
	t, _ := time.Parse(DateLayout, l.DataEvento)
	return t
}

// Pending reports whether the reminder still needs attention.
func (l Lembrete) Pending() bool {
	return l.Status == StatusPendente || l.Status == StatusVisualizado
}

type fixtureLembrete struct {
	ID             string `json:"id"`
	Titulo         string `json:"titulo"`
	Descricao      string `json:"descricao"`
	DataVencimento string `json:"dataVencimento"`
	Prioridade     string `json:"prioridade"`
	Concluido      bool   `json:"concluido"`
	Criador        string `json:"criador"`
	Categoria      string `json:"categoria"`
	DataCriacao    string `json:"dataCriacao"`
}

func fromFixture(f fixtureLembrete) Lembrete {
	status := StatusPendente
	if f.Concluido {
		status = StatusConcluido
	}
	return Lembrete{
		ID:           f.ID,
		Tipo:         TipoOutro,
		Prioridade:   f.Prioridade,
		Status:       status,
		Titulo:       f.Titulo,
		Descricao:    f.Descricao,
		DataEvento:   datePart(f.DataVencimento),
		DataLembrete: datePart(f.DataCriacao),
		Metadados:    map[string]any{"categoria": f.Categoria, "criador": f.Criador},
	}
}

func datePart(s string) string {
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}
