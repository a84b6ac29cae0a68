package clientes

// Registration statuses.
const (
	StatusRascunho  = "rascunho"
	StatusPendente  = "pendente"
	StatusRejeitado = "rejeitado"
	StatusAprovado  = "aprovado"
	StatusAtivo     = "ativo"
	StatusPausado   = "pausado"
	StatusEncerrado = "encerrado"
	StatusDevolvido = "devolvido"
)

// DadosGerais is the company section filled in by the client.
type DadosGerais struct {
	Nome            string   `json:"nome"`
	NomeFantasia    string   `json:"nomeFantasia,omitempty"`
	CNPJ            string   `json:"cnpj" validate:"omitempty,numeric,len=14"`
	CNPJAdicionais  []string `json:"cnpjAdicionais,omitempty"`
	Endereco        string   `json:"endereco"`
	Numero          string   `json:"numero,omitempty"`
	Bairro          string   `json:"bairro,omitempty"`
	Cidade          string   `json:"cidade,omitempty"`
	CEP             string   `json:"cep,omitempty"`
	UF              string   `json:"uf,omitempty" validate:"omitempty,len=2"`
	Site            string   `json:"site,omitempty" validate:"omitempty,url"`
	SegmentoAtuacao string   `json:"segmentoAtuacao,omitempty"`
	TempoMercado    string   `json:"tempoMercado,omitempty" validate:"omitempty,oneof=<1 1 2 3 4 5 >5"`
	Observacao      string   `json:"observacao,omitempty"`
}

// ContatosPrincipais holds the partner and main contact channels.
type ContatosPrincipais struct {
	NomeSocio       string `json:"nomeSocio"`
	CPFSocio        string `json:"cpfSocio,omitempty"`
	EmailPrincipal  string `json:"emailPrincipal" validate:"omitempty,email"`
	EmailFinanceiro string `json:"emailFinanceiro,omitempty" validate:"omitempty,email"`
	Telefone        string `json:"telefone"`
	Whatsapp        string `json:"whatsapp,omitempty"`
}

// OutroContato is an additional client contact.
type OutroContato struct {
	ID                   string `json:"id"`
	Nome                 string `json:"nome"`
	Cargo                string `json:"cargo"`
	Email                string `json:"email" validate:"omitempty,email"`
	Telefone             string `json:"telefone"`
	ParticipaImplantacao bool   `json:"participaImplantacao"`
}

// ComunicacaoFluxo records how and when the client prefers to be reached.
type ComunicacaoFluxo struct {
	CanalPreferencial      string `json:"canalPreferencial" validate:"omitempty,oneof=whatsapp email outro"`
	CanalOutro             string `json:"canalOutro,omitempty"`
	HorarioPreferencial    string `json:"horarioPreferencial" validate:"omitempty,oneof=comercial outro"`
	HorarioOutro           string `json:"horarioOutro,omitempty"`
	PessoaContatoPrincipal string `json:"pessoaContatoPrincipal"`
}

// PlanoHistorico is one plan or upsell in the client's history.
type PlanoHistorico struct {
	ID          string  `json:"id"`
	NomePlano   string  `json:"nomePlano"`
	MRR         float64 `json:"mrr" validate:"gte=0"`
	DataInicio  string  `json:"dataInicio"`
	DataFim     string  `json:"dataFim,omitempty"`
	Observacoes string  `json:"observacoes,omitempty"`
}

// ServicosContratados lists the services the client signed up for.
type ServicosContratados struct {
	BPOFinanceiro        bool             `json:"bpoFinanceiro"`
	AssessoriaFinanceira bool             `json:"assessoriaFinanceira"`
	Contabilidade        bool             `json:"contabilidade"`
	JuridicoContratual   bool             `json:"juridicoContratual"`
	JuridicoTributario   bool             `json:"juridicoTributario"`
	Trading              bool             `json:"trading"`
	Outro                string           `json:"outro,omitempty"`
	Observacoes          string           `json:"observacoes,omitempty"`
	PrevisaoInicio       string           `json:"previsaoInicio"`
	DataContratoFechado  string           `json:"dataContratoFechado,omitempty"`
	PlanosHistorico      []PlanoHistorico `json:"planosHistorico" validate:"dive"`
}

// PontosAtencao and ContextoGeral are filled in by administrators.
type PontosAtencao struct {
	Pendencias            string `json:"pendencias,omitempty"`
	ExigenciasEspecificas string `json:"exigenciasEspecificas,omitempty"`
	Prioridade            string `json:"prioridade" validate:"omitempty,oneof=baixa media alta urgente"`
}

// ContextoGeral is the free-text business background captured at onboarding.
type ContextoGeral struct {
	OQueEmpreendimento string `json:"oQueEmpreendimento,omitempty"`
	PerfilCliente      string `json:"perfilCliente,omitempty"`
	Objetivos          string `json:"objetivos,omitempty"`
	Situacao           string `json:"situacao,omitempty"`
	Expectativas       string `json:"expectativas,omitempty"`
	Observacao         string `json:"observacao,omitempty"`
}

// Cliente is one client registration.
type Cliente struct {
	ID                   string              `json:"id"`
	Nome                 string              `json:"nome" validate:"required"`
	DadosGerais          DadosGerais         `json:"dadosGerais"`
	ContatosPrincipais   ContatosPrincipais  `json:"contatosPrincipais"`
	OutrosContatos       []OutroContato      `json:"outrosContatos" validate:"dive"`
	ComunicacaoFluxo     ComunicacaoFluxo    `json:"comunicacaoFluxo"`
	ServicosContratados  ServicosContratados `json:"servicosContratados"`
	PontosAtencao        *PontosAtencao      `json:"pontosAtencao,omitempty"`
	ContextoGeral        *ContextoGeral      `json:"contextoGeral,omitempty"`
	Status               string              `json:"status" validate:"oneof=rascunho pendente rejeitado aprovado ativo pausado encerrado devolvido"`
	MRR                  float64             `json:"mrr,omitempty" validate:"gte=0"`
	Responsavel          string              `json:"responsavel,omitempty"`
	DataSubmissao        string              `json:"dataSubmissao,omitempty"`
	DataAprovacao        string              `json:"dataAprovacao,omitempty"`
	MotivoRejeicao       string              `json:"motivoRejeicao,omitempty"`
	ComentariosDevolucao string              `json:"comentariosDevolucao,omitempty"`
	DataDevolucao        string              `json:"dataDevolucao,omitempty"`
	DataRegistro         string              `json:"dataRegistro,omitempty"`
	CriadoEm             string              `json:"criadoEm"`
	AtualizadoEm         string              `json:"atualizadoEm"`
}

func (c Cliente) RecordID() string { return c.ID }

func (c Cliente) RecordStatus() string { return c.Status }

func (c Cliente) DisplayName() string { return c.Nome }

func (c Cliente) SearchFields() []string {
	return []string{c.Nome, c.DadosGerais.NomeFantasia, c.DadosGerais.CNPJ}
}

// normalize keeps the top-level nome and dadosGerais.nome in step and fills
// the default communication preferences.
func normalize(c Cliente) Cliente {
	switch {
	case c.Nome == "" && c.DadosGerais.Nome != "":
		c.Nome = c.DadosGerais.Nome
	case c.Nome != "":
		c.DadosGerais.Nome = c.Nome
	}
	if c.ComunicacaoFluxo.CanalPreferencial == "" {
		c.ComunicacaoFluxo.CanalPreferencial = "email"
	}
	if c.ComunicacaoFluxo.HorarioPreferencial == "" {
		c.ComunicacaoFluxo.HorarioPreferencial = "comercial"
	}
	if c.OutrosContatos == nil {
		c.OutrosContatos = []OutroContato{}
	}
	if c.ServicosContratados.PlanosHistorico == nil {
		c.ServicosContratados.PlanosHistorico = []PlanoHistorico{}
	}
	if c.CriadoEm == "" {
		c.CriadoEm = c.DataRegistro
	}
	if c.AtualizadoEm == "" {
		c.AtualizadoEm = c.CriadoEm
	}
	return c
}
