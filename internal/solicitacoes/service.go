// Package solicitacoes handles employee requests and the manager decisions
// on them.
package solicitacoes

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/notificacoes"
	"github.com/cfohub/cfohub/internal/record"
	"github.com/cfohub/cfohub/internal/shared"
)

// StoreName is the fixture resource and store name.
const StoreName = "solicitacoes"

// Notifier receives decision notifications.
type Notifier interface {
	Notify(ctx context.Context, n notificacoes.Notificacao) (notificacoes.Notificacao, error)
}

// NewStore builds the request store. New requests are listed first.
func NewStore(p *fixtures.Provider) *record.Store[Solicitacao] {
	return record.NewStore(record.Options[Solicitacao]{
		Name:   StoreName,
		Loader: fixtures.LoaderFrom(p, StoreName, fromFixture),
		SetID: func(s Solicitacao, id string) Solicitacao {
			s.ID = id
			return s
		},
		ExtraMatch: func(s Solicitacao, extra map[string]string) bool {
			if v, ok := extra["urgencia"]; ok && s.Urgencia != v {
				return false
			}
			if v, ok := extra["solicitante"]; ok && s.Solicitante.ID != v {
				return false
			}
			return true
		},
		Prepend: true,
	})
}

// Service implements request decisions.
type Service struct {
	*collection.Service[Solicitacao]
	logger   *slog.Logger
	notifier Notifier
	now      func() time.Time
}

// NewService constructs the request service.
func NewService(logger *slog.Logger, store *record.Store[Solicitacao], notifier Notifier) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{logger: logger, notifier: notifier, now: time.Now}
	s.Service = collection.NewService(store, form.Schema[Solicitacao]{
		Defaults: func() Solicitacao {
			return normalize(Solicitacao{Data: s.timestamp()})
		},
		Normalize: normalize,
		Rules:     []form.Rule[Solicitacao]{form.StructRule[Solicitacao](form.NewValidator())},
	})
	return s
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// Decide approves or rejects a pending request and notifies the requester.
func (s *Service) Decide(ctx context.Context, id, status, gestor, mensagem string) (Solicitacao, error) {
	if status != StatusAprovada && status != StatusRejeitada {
		return Solicitacao{}, form.Invalid("status", "valor não permitido")
	}
	sol, err := s.Transition(ctx, id, func(sol Solicitacao) (Solicitacao, error) {
		if sol.Status != StatusPendente {
			return sol, fmt.Errorf("solicitacao %s is %s: %w", id, sol.Status, shared.ErrInvalidTransition)
		}
		sol.Status = status
		sol.DataDecisao = s.timestamp()
		sol.AprovadoPor = gestor
		if mensagem != "" {
			sol.RespostaGestor = &RespostaGestor{EnviadoEm: sol.DataDecisao, EnviadoPor: gestor, Mensagem: mensagem}
		}
		return sol, nil
	})
	if err != nil {
		return Solicitacao{}, err
	}

	tipo, titulo, texto := "solicitacao_aprovada", "Solicitação aprovada: ", "foi aprovada."
	if status == StatusRejeitada {
		tipo, titulo, texto = "solicitacao_rejeitada", "Solicitação rejeitada: ", "foi rejeitada."
	}
	prioridade := notificacoes.PrioridadeMedia
	if sol.Urgencia == "alta" {
		prioridade = notificacoes.PrioridadeAlta
	}
	s.notify(ctx, sol, notificacoes.Notificacao{
		Tipo:       tipo,
		Titulo:     titulo + sol.Titulo,
		Mensagem:   fmt.Sprintf("Sua solicitação %q %s", sol.Titulo, texto),
		Prioridade: prioridade,
	})
	return sol, nil
}

// Responder attaches the manager's answer files to a request.
func (s *Service) Responder(ctx context.Context, id, gestor, mensagem string, arquivos []Anexo) (Solicitacao, error) {
	if len(arquivos) == 0 {
		return Solicitacao{}, form.Invalid("arquivos", "campo obrigatório")
	}
	for i, a := range arquivos {
		if verr := form.Required(fmt.Sprintf("arquivos[%d].nome", i), a.Nome); verr != nil {
			return Solicitacao{}, verr
		}
	}
	sol, err := s.Transition(ctx, id, func(sol Solicitacao) (Solicitacao, error) {
		sol.ArquivosResposta = append([]Anexo(nil), arquivos...)
		sol.RespostaGestor = &RespostaGestor{EnviadoEm: s.timestamp(), EnviadoPor: gestor, Mensagem: mensagem}
		return sol, nil
	})
	if err != nil {
		return Solicitacao{}, err
	}
	s.notify(ctx, sol, notificacoes.Notificacao{
		Tipo:       "documento_aprovado",
		Titulo:     "Resposta recebida: " + sol.Titulo,
		Mensagem:   fmt.Sprintf("%s respondeu sua solicitação %q com %d arquivo(s).", gestor, sol.Titulo, len(arquivos)),
		Prioridade: notificacoes.PrioridadeMedia,
	})
	return sol, nil
}

func (s *Service) notify(ctx context.Context, sol Solicitacao, n notificacoes.Notificacao) {
	if s.notifier == nil {
		return
	}
	n.Link = "/solicitacoes"
	n.Categoria = "solicitacoes"
	n.DestinatarioID = sol.Solicitante.ID
	n.Referencia = &notificacoes.Referencia{Tipo: "solicitacao", ID: sol.ID}
	if _, err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("request notification", slog.String("solicitacao", sol.ID), slog.Any("error", err))
	}
}
