package notificacoes

// Read states exposed through the status filter.
const (
	StatusLida    = "lida"
	StatusNaoLida = "nao_lida"
)

const (
	PrioridadeAlta  = "alta"
	PrioridadeMedia = "media"
	PrioridadeBaixa = "baixa"

	CategoriaSistema = "sistema"
)

// Referencia points at the entity a notification is about.
type Referencia struct {
	Tipo string `json:"tipo"`
	ID   string `json:"id"`
}

// Notificacao is one in-app notification.
type Notificacao struct {
	ID             string      `json:"id"`
	Tipo           string      `json:"tipo" validate:"required"`
	Titulo         string      `json:"titulo" validate:"required"`
	Mensagem       string      `json:"mensagem"`
	Lida           bool        `json:"lida"`
	CriadoEm       string      `json:"criadoEm"`
	Link           string      `json:"link,omitempty"`
	Icone          string      `json:"icone,omitempty"`
	Cor            string      `json:"cor,omitempty"`
	DestinatarioID string      `json:"destinatarioId,omitempty"`
	Prioridade     string      `json:"prioridade" validate:"omitempty,oneof=alta media baixa"`
	Categoria      string      `json:"categoria"`
	Referencia     *Referencia `json:"referencia,omitempty"`
}

func (n Notificacao) RecordID() string { return n.ID }

func (n Notificacao) RecordStatus() string {
	if n.Lida {
		return StatusLida
	}
	return StatusNaoLida
}

func (n Notificacao) DisplayName() string { return n.Titulo }

func (n Notificacao) RecordType() string { return n.Tipo }

func (n Notificacao) SearchFields() []string { return []string{n.Titulo, n.Mensagem} }

// fixtureNotificacao is the shape served by the mock API.
type fixtureNotificacao struct {
	ID          string      `json:"id"`
	Tipo        string      `json:"tipo"`
	Titulo      string      `json:"titulo"`
	Mensagem    string      `json:"mensagem"`
	Lida        bool        `json:"lida"`
	DataCriacao string      `json:"dataCriacao"`
	Referencia  *Referencia `json:"referencia"`
	Prioridade  string      `json:"prioridade"`
}

func fromFixture(f fixtureNotificacao) Notificacao {
	return applyDefaults(Notificacao{
		ID:         f.ID,
		Tipo:       f.Tipo,
		Titulo:     f.Titulo,
		Mensagem:   f.Mensagem,
		Lida:       f.Lida,
		CriadoEm:   f.DataCriacao,
		Referencia: f.Referencia,
		Prioridade: f.Prioridade,
	})
}

// applyDefaults fills prioridade and categoria. The mock API's "normal"
// prioridade is read as media.
func applyDefaults(n Notificacao) Notificacao {
	switch n.Prioridade {
	case PrioridadeAlta, PrioridadeMedia, PrioridadeBaixa:
	default:
		n.Prioridade = PrioridadeMedia
	}
	if n.Categoria == "" {
		n.Categoria = CategoriaSistema
	}
	return n
}
