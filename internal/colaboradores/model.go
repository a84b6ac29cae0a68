package colaboradores

import "time"

const (
	StatusAtivo         = "ativo"
	StatusAfastado      = "afastado"
	StatusFerias        = "ferias"
	StatusEmContratacao = "em_contratacao"
	StatusInativo       = "inativo"

	RegimeCLT = "CLT"
	RegimePJ  = "PJ"
)

// DateLayout is the calendar date format used by admission and birth dates.
const DateLayout = "2006-01-02"

// Colaborador is one employee or contractor.
type Colaborador struct {
	ID                   string  `json:"id"`
	Nome                 string  `json:"nome" validate:"required"`
	NomeCompleto         string  `json:"nomeCompleto,omitempty"`
	Email                string  `json:"email" validate:"required,email"`
	Telefone             string  `json:"telefone,omitempty"`
	Cargo                string  `json:"cargo"`
	Departamento         string  `json:"departamento"`
	Funcao               string  `json:"funcao,omitempty"`
	Gerente              string  `json:"gerente,omitempty"`
	Empresa              string  `json:"empresa,omitempty"`
	Status               string  `json:"status" validate:"oneof=ativo afastado ferias em_contratacao inativo"`
	Regime               string  `json:"regime" validate:"omitempty,oneof=CLT PJ"`
	DataAdmissao         string  `json:"dataAdmissao,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DataNascimento       string  `json:"dataNascimento,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CPF                  string  `json:"cpf,omitempty" validate:"omitempty,numeric,len=11"`
	RG                   string  `json:"rg,omitempty"`
	Salario              float64 `json:"salario,omitempty" validate:"gte=0"`
	MetaHorasMensais     int     `json:"metaHorasMensais,omitempty" validate:"gte=0"`
	DispensaDocumentacao bool    `json:"dispensaDocumentacao,omitempty"`
	ChavePix             string  `json:"chavePix,omitempty"`
	Banco                string  `json:"banco,omitempty"`
	Agencia              string  `json:"agencia,omitempty"`
	Conta                string  `json:"conta,omitempty"`
	Obs                  string  `json:"obs,omitempty"`
}

func (c Colaborador) RecordID() string { return c.ID }

func (c Colaborador) RecordStatus() string { return c.Status }

func (c Colaborador) DisplayName() string { return c.Nome }

func (c Colaborador) RecordType() string { return c.Regime }

func (c Colaborador) SearchFields() []string {
	return []string{c.Nome, c.NomeCompleto, c.Email, c.Cargo}
}

// Admissao parses the admission date.
func (c Colaborador) Admissao() (time.Time, bool) {
	return parseDate(c.DataAdmissao)
}

// Nascimento parses the birth date.
func (c Colaborador) Nascimento() (time.Time, bool) {
	return parseDate(c.DataNascimento)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// fixtureColaborador carries the mock API's boolean ativo flag.
type fixtureColaborador struct {
	Colaborador
	Ativo bool `json:"ativo"`
}

func fromFixture(f fixtureColaborador) Colaborador {
	c := f.Colaborador
	if c.Status == "" {
		c.Status = StatusInativo
		if f.Ativo {
			c.Status = StatusAtivo
		}
	}
	return normalize(c)
}

func normalize(c Colaborador) Colaborador {
	if c.Regime == "" {
		c.Regime = RegimeCLT
	}
	if c.Status == "" {
		c.Status = StatusEmContratacao
	}
	return c
}
