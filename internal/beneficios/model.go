package beneficios

const (
	StatusAtivo   = "ativo"
	StatusInativo = "inativo"
)

// Beneficio is one benefit offered to employees.
type Beneficio struct {
	ID                string  `json:"id"`
	Nome              string  `json:"nome" validate:"required"`
	Descricao         string  `json:"descricao,omitempty"`
	Tipo              string  `json:"tipo" validate:"required"`
	Valor             float64 `json:"valor" validate:"gte=0"`
	ValorEmpresa      float64 `json:"valorEmpresa,omitempty" validate:"gte=0"`
	ValorColaborador  float64 `json:"valorColaborador,omitempty" validate:"gte=0"`
	Ativo             bool    `json:"ativo"`
	DataVigencia      string  `json:"dataVigencia,omitempty"`
	Fornecedor        string  `json:"fornecedor,omitempty"`
	ContatoFornecedor string  `json:"contatoFornecedor,omitempty" validate:"omitempty,email"`
	Beneficiarios     int     `json:"beneficiarios" validate:"gte=0"`
}

func (b Beneficio) RecordID() string { return b.ID }

func (b Beneficio) RecordStatus() string {
	if b.Ativo {
		return StatusAtivo
	}
	return StatusInativo
}

func (b Beneficio) DisplayName() string { return b.Nome }

func (b Beneficio) RecordType() string { return b.Tipo }

func (b Beneficio) SearchFields() []string {
	return []string{b.Nome, b.Descricao, b.Fornecedor}
}

// CustoMensal is the monthly cost of the benefit across its beneficiaries.
func (b Beneficio) CustoMensal() float64 {
	return b.Valor * float64(b.Beneficiarios)
}

// normalize splits an undivided value entirely onto the company share.
func normalize(b Beneficio) Beneficio {
	if b.ValorEmpresa == 0 && b.ValorColaborador == 0 {
		b.ValorEmpresa = b.Valor
	}
	return b
}
