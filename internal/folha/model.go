package folha

import (
	"fmt"
	"math"
	"strconv"
)

// Payment situations.
const (
	SituacaoPendente  = "pendente"
	SituacaoAgendado  = "agendado"
	SituacaoPago      = "pago"
	SituacaoCancelado = "cancelado"
)

// OMIE synchronisation states.
const (
	OmiePendente     = "pendente"
	OmieEnviado      = "enviado"
	OmieSincronizado = "sincronizado"
	OmieErro         = "erro"
)

// ClienteRef is the client a payroll line is billed to.
type ClienteRef struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

// Operacao is one company's share of a payroll line.
type Operacao struct {
	Empresa string  `json:"empresa" validate:"required"`
	Percent float64 `json:"percent" validate:"gte=0,lte=100"`
	Valor   float64 `json:"valor"`
}

// NotaFiscal tracks the invoice and payment state of a payroll line.
type NotaFiscal struct {
	Numero    string `json:"numero,omitempty"`
	Status    string `json:"status" validate:"oneof=aguardando recebida pendente"`
	Pagamento string `json:"pagamento" validate:"oneof=pendente agendado pago"`
	Data      string `json:"data,omitempty"`
	Obs       string `json:"obs,omitempty"`
}

// FolhaCliente is one collaborator line of a client's monthly payroll.
type FolhaCliente struct {
	ID                     string      `json:"id"`
	ClienteID              int         `json:"clienteId"`
	Cliente                ClienteRef  `json:"cliente"`
	FuncionarioID          string      `json:"funcionarioId,omitempty"`
	Periodo                string      `json:"periodo" validate:"required,datetime=2006-01"`
	Colaborador            string      `json:"colaborador" validate:"required"`
	Funcao                 string      `json:"funcao,omitempty"`
	Empresa                string      `json:"empresa"`
	CTT                    string      `json:"ctt,omitempty"`
	Valor                  float64     `json:"valor" validate:"gte=0"`
	Adicional              float64     `json:"adicional" validate:"gte=0"`
	Reembolso              float64     `json:"reembolso" validate:"gte=0"`
	Desconto               float64     `json:"desconto" validate:"gte=0"`
	Distribuicao           []Operacao  `json:"distribuicao" validate:"max=4,dive"`
	ValorTotal             float64     `json:"valorTotal"`
	ValorTotalSemReembolso float64     `json:"valorTotalSemReembolso"`
	Situacao               string      `json:"situacao" validate:"oneof=pendente agendado pago cancelado"`
	DataPagamento          string      `json:"dataPagamento,omitempty"`
	NotaFiscal             *NotaFiscal `json:"notaFiscal,omitempty"`
	ResponsavelSetor       string      `json:"responsavelSetor,omitempty"`
	StatusOmie             string      `json:"statusOmie" validate:"oneof=pendente enviado sincronizado erro"`
	DataEnvioOmie          string      `json:"dataEnvioOmie,omitempty"`
	CodigoOmie             string      `json:"codigoOmie,omitempty"`
	Obs                    string      `json:"obs,omitempty"`
	ServicosPrestados      []string    `json:"servicosPrestados,omitempty"`
	CriadoEm               string      `json:"criadoEm,omitempty"`
	AtualizadoEm           string      `json:"atualizadoEm,omitempty"`
}

func (f FolhaCliente) RecordID() string { return f.ID }

func (f FolhaCliente) RecordStatus() string { return f.Situacao }

func (f FolhaCliente) DisplayName() string { return f.Colaborador }

func (f FolhaCliente) SearchFields() []string {
	return []string{f.Colaborador, f.Cliente.Nome, f.Funcao}
}

// Percents lists the distribution percentages in row order.
func (f FolhaCliente) Percents() []float64 {
	out := make([]float64, 0, len(f.Distribuicao))
	for _, op := range f.Distribuicao {
		out = append(out, op.Percent)
	}
	return out
}

// Recalculate derives the totals and each company's share of the total
// without reimbursements. A single distribution row always takes 100%.
func Recalculate(f FolhaCliente) FolhaCliente {
	f.ValorTotal = cents(f.Valor + f.Adicional + f.Reembolso - f.Desconto)
	f.ValorTotalSemReembolso = cents(f.Valor + f.Adicional - f.Desconto)
	ops := make([]Operacao, len(f.Distribuicao))
	copy(ops, f.Distribuicao)
	if len(ops) == 1 {
		ops[0].Percent = 100
	}
	for i := range ops {
		ops[i].Valor = cents(f.ValorTotalSemReembolso * ops[i].Percent / 100)
	}
	f.Distribuicao = ops
	return f
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}

type fixtureFolha struct {
	ID                string     `json:"id"`
	Cliente           ClienteRef `json:"cliente"`
	ClienteID         int        `json:"clienteId"`
	Mes               string     `json:"mes"`
	Valor             float64    `json:"valor"`
	Status            string     `json:"status"`
	ServicosPrestados []string   `json:"servicosPrestados"`
	DataPagamento     string     `json:"dataPagamento"`
}

var fixtureSituacao = map[string]string{
	"pendente":   SituacaoPendente,
	"processada": SituacaoAgendado,
	"paga":       SituacaoPago,
}

// fromFixture maps the mock payroll summary onto one payroll line billed
// entirely to the client.
func fromFixture(f fixtureFolha) FolhaCliente {
	situacao, ok := fixtureSituacao[f.Status]
	if !ok {
		situacao = SituacaoPendente
	}
	id, _ := strconv.Atoi(f.ID)
	return Recalculate(FolhaCliente{
		ID:                f.ID,
		ClienteID:         f.ClienteID,
		Cliente:           f.Cliente,
		Periodo:           f.Mes,
		Colaborador:       fmt.Sprintf("Colaborador %d", id),
		Empresa:           f.Cliente.Nome,
		Valor:             f.Valor,
		Distribuicao:      []Operacao{{Empresa: f.Cliente.Nome, Percent: 100}},
		Situacao:          situacao,
		DataPagamento:     f.DataPagamento,
		StatusOmie:        OmiePendente,
		ServicosPrestados: f.ServicosPrestados,
	})
}
