package lembretes

import (
	"fmt"
	"math"
	"time"

	"github.com/cfohub/cfohub/internal/colaboradores"
)

// Configuracoes controls automatic reminder generation.
type Configuracoes struct {
	DiasAntesContratoExperiencia int  `json:"diasAntesContratoExperiencia" validate:"gte=0"`
	DiasAntesFerias              int  `json:"diasAntesFerias" validate:"gte=0"`
	DiasAntesDocumento           int  `json:"diasAntesDocumento" validate:"gte=0"`
	DiasAntesAniversario         int  `json:"diasAntesAniversario" validate:"gte=0"`
	NotificarAniversarios        bool `json:"notificarAniversarios"`
	NotificarFerias              bool `json:"notificarFerias"`
}

// DefaultConfiguracoes returns the generation windows used when none are set.
func DefaultConfiguracoes() Configuracoes {
	return Configuracoes{
		DiasAntesContratoExperiencia: 15,
		DiasAntesFerias:              30,
		DiasAntesDocumento:           30,
		DiasAntesAniversario:         3,
		NotificarAniversarios:        true,
		NotificarFerias:              true,
	}
}

var linkColaborador = Acao{Label: "Ver Colaborador", Tipo: "link", Destino: "/colaboradores"}

// candidates lists the reminders due for one collaborator on today, which
// must be a UTC midnight. Ids, status and creation date are left unset.
func candidates(c colaboradores.Colaborador, cfg Configuracoes, today time.Time) []Lembrete {
	var out []Lembrete
	admissao, hasAdmissao := c.Admissao()

	if hasAdmissao && c.Regime == colaboradores.RegimeCLT {
		out = appendExperiencia(out, c, cfg, today, admissao.AddDate(0, 0, 45), "45dias",
			"Fim do 1º período de experiência - %s",
			"O primeiro período de experiência de 45 dias termina em %d dias (%s). Avalie se deseja prorrogar ou efetivar.",
			Acao{Label: "Agendar Avaliação", Tipo: "acao", Callback: "agendar_avaliacao"})
		out = appendExperiencia(out, c, cfg, today, admissao.AddDate(0, 0, 90), "90dias",
			"Fim do contrato de experiência - %s",
			"O contrato de experiência de 90 dias termina em %d dias (%s). Necessário formalizar a efetivação ou desligamento.",
			Acao{Label: "Processar Efetivação", Tipo: "acao", Callback: "processar_efetivacao"})
	}

	if cfg.NotificarFerias && hasAdmissao {
		anos := int(math.Floor(today.Sub(admissao).Hours() / 24 / 365))
		if anos >= 1 {
			evento := nextAnniversary(admissao, today)
			dias := daysUntil(evento, today)
			if dias > 0 && dias <= cfg.DiasAntesFerias {
				descricao := fmt.Sprintf("%s completa %d ano(s) de empresa em %d dias e tem direito a férias. Planeje o período com o colaborador.",
					c.Nome, anos+1, dias)
				out = append(out, Lembrete{
					Tipo:            TipoFeriasPeriodo,
					Prioridade:      priorityWithin(dias, 15),
					Titulo:          "Período de férias - " + c.Nome,
					Descricao:       descricao,
					ColaboradorID:   c.ID,
					ColaboradorNome: c.Nome,
					DataEvento:      evento.Format(DateLayout),
					Acoes:           []Acao{linkColaborador, {Label: "Agendar Férias", Tipo: "acao", Callback: "agendar_ferias"}},
					Metadados:       map[string]any{"anosEmpresa": anos + 1, "diasRestantes": dias},
				})
			}
		}
	}

	if nascimento, ok := c.Nascimento(); ok && cfg.NotificarAniversarios {
		evento := nextAnniversary(nascimento, today)
		dias := daysUntil(evento, today)
		if dias >= 0 && dias <= cfg.DiasAntesAniversario {
			idade := evento.Year() - nascimento.Year()
			quando := "hoje"
			if dias > 0 {
				quando = fmt.Sprintf("em %d dia(s)", dias)
			}
			out = append(out, Lembrete{
				Tipo:            TipoAniversario,
				Prioridade:      PrioridadeBaixa,
				Titulo:          "Aniversário - " + c.Nome,
				Descricao:       fmt.Sprintf("%s fará %d anos %s. Não esqueça de parabenizar!", c.Nome, idade, quando),
				ColaboradorID:   c.ID,
				ColaboradorNome: c.Nome,
				DataEvento:      evento.Format(DateLayout),
				Metadados:       map[string]any{"idade": idade, "diasRestantes": dias},
			})
		}
	}
	return out
}

func appendExperiencia(out []Lembrete, c colaboradores.Colaborador, cfg Configuracoes, today, fim time.Time, fase, titulo, descricao string, acao Acao) []Lembrete {
	dias := daysUntil(fim, today)
	if dias <= 0 || dias > cfg.DiasAntesContratoExperiencia {
		return out
	}
	return append(out, Lembrete{
		Tipo:            TipoContratoExperiencia,
		Prioridade:      priorityWithin(dias, 7),
		Titulo:          fmt.Sprintf(titulo, c.Nome),
		Descricao:       fmt.Sprintf(descricao, dias, fim.Format("02/01/2006")),
		ColaboradorID:   c.ID,
		ColaboradorNome: c.Nome,
		DataEvento:      fim.Format(DateLayout),
		Acoes:           []Acao{linkColaborador, acao},
		Metadados:       map[string]any{"fase": fase, "diasRestantes": dias},
	})
}

func priorityWithin(dias, urgent int) string {
	if dias <= urgent {
		return PrioridadeAlta
	}
	return PrioridadeMedia
}

// nextAnniversary returns the first recurrence of d's month and day on or
// after today.
func nextAnniversary(d, today time.Time) time.Time {
	next := time.Date(today.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return next
}

func daysUntil(event, today time.Time) int {
	return int(math.Ceil(event.Sub(today).Hours() / 24))
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
