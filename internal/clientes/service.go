// Package clientes manages client registrations and their approval
// workflow.
package clientes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/notificacoes"
	"github.com/cfohub/cfohub/internal/record"
)

// StoreName is the fixture resource and store name.
const StoreName = "clientes"

// Notifier receives workflow notifications.
type Notifier interface {
	Notify(ctx context.Context, n notificacoes.Notificacao) (notificacoes.Notificacao, error)
}

// Mailer queues outbound email.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// NewStore builds the client store. New clients get max(id)+1.
func NewStore(p *fixtures.Provider) *record.Store[Cliente] {
	return record.NewStore(record.Options[Cliente]{
		Name:   StoreName,
		Loader: fixtures.LoaderFrom(p, StoreName, normalize),
		NewID:  record.NumericID[Cliente],
		SetID: func(c Cliente, id string) Cliente {
			c.ID = id
			return c
		},
		ExtraMatch: matchExtra,
	})
}

func matchExtra(c Cliente, extra map[string]string) bool {
	if v, ok := extra["segmento"]; ok && !strings.EqualFold(c.DadosGerais.SegmentoAtuacao, v) {
		return false
	}
	if v, ok := extra["responsavel"]; ok && c.Responsavel != v {
		return false
	}
	return true
}

// Options configures a client service.
type Options struct {
	Logger   *slog.Logger
	Notifier Notifier
	Mailer   Mailer
	// LoginURL is linked from the devolution email.
	LoginURL string
}

// Service implements the registration workflow over the client store.
type Service struct {
	*collection.Service[Cliente]
	logger   *slog.Logger
	notifier Notifier
	mailer   Mailer
	loginURL string
	now      func() time.Time
}

// NewService constructs the client service.
func NewService(store *record.Store[Cliente], opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Service{
		logger:   opts.Logger,
		notifier: opts.Notifier,
		mailer:   opts.Mailer,
		loginURL: opts.LoginURL,
		now:      time.Now,
	}
	s.Service = collection.NewService(store, form.Schema[Cliente]{
		Defaults:  s.defaults,
		Normalize: s.touch,
		Rules: []form.Rule[Cliente]{
			form.StructRule[Cliente](form.NewValidator()),
		},
	})
	return s
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func (s *Service) defaults() Cliente {
	now := s.timestamp()
	return normalize(Cliente{Status: StatusPendente, CriadoEm: now, AtualizadoEm: now})
}

func (s *Service) touch(c Cliente) Cliente {
	c = normalize(c)
	c.AtualizadoEm = s.timestamp()
	return c
}

// Submeter sends a registration for review.
func (s *Service) Submeter(ctx context.Context, id string) (Cliente, error) {
	c, err := s.apply(ctx, id, ActionSubmeter, func(c Cliente) Cliente {
		c.DataSubmissao = c.AtualizadoEm
		return c
	})
	if err != nil {
		return Cliente{}, err
	}
	s.notify(ctx, c, "cliente_submeteu", "Cadastro enviado", fmt.Sprintf("%s enviou cadastro para análise", c.Nome), "")
	return c, nil
}

// Aprovar approves a pending registration and records who is responsible.
func (s *Service) Aprovar(ctx context.Context, id, responsavel string) (Cliente, error) {
	c, err := s.apply(ctx, id, ActionAprovar, func(c Cliente) Cliente {
		c.Responsavel = responsavel
		c.DataAprovacao = c.AtualizadoEm
		return c
	})
	if err != nil {
		return Cliente{}, err
	}
	s.notify(ctx, c, "admin_aprovou", "Cadastro aprovado", fmt.Sprintf("Cadastro de %s foi aprovado!", c.Nome), "")
	return c, nil
}

// Rejeitar rejects a pending registration. motivo is required.
func (s *Service) Rejeitar(ctx context.Context, id, motivo string) (Cliente, error) {
	if verr := form.Required("motivo", motivo); verr != nil {
		return Cliente{}, verr
	}
	c, err := s.apply(ctx, id, ActionRejeitar, func(c Cliente) Cliente {
		c.MotivoRejeicao = motivo
		return c
	})
	if err != nil {
		return Cliente{}, err
	}
	s.notify(ctx, c, "admin_rejeitou", "Cadastro rejeitado", fmt.Sprintf("Cadastro de %s foi rejeitado: %s", c.Nome, motivo), "")
	return c, nil
}

// Devolver returns a pending registration for corrections and emails the
// client. A failed email does not undo the transition.
func (s *Service) Devolver(ctx context.Context, id, comentarios string) (Cliente, error) {
	if verr := form.Required("comentarios", comentarios); verr != nil {
		return Cliente{}, verr
	}
	c, err := s.apply(ctx, id, ActionDevolver, func(c Cliente) Cliente {
		c.ComentariosDevolucao = comentarios
		c.DataDevolucao = c.AtualizadoEm
		return c
	})
	if err != nil {
		return Cliente{}, err
	}
	s.sendDevolution(ctx, c, comentarios)
	s.notify(ctx, c, "admin_devolveu", "Cadastro devolvido", fmt.Sprintf("Cadastro de %s foi devolvido para correção", c.Nome), "")
	s.notify(ctx, c, "cliente_devolucao", "Ajustes necessários", "Seu cadastro precisa de ajustes. Verifique seu e-mail.", c.ID)
	return c, nil
}

// Lifecycle moves an approved client between ativo, pausado and encerrado.
func (s *Service) Lifecycle(ctx context.Context, id string, action Action) (Cliente, error) {
	switch action {
	case ActionAtivar, ActionPausar, ActionEncerrar:
	default:
		return Cliente{}, fmt.Errorf("cliente %s: unsupported lifecycle action %q", id, action)
	}
	return s.apply(ctx, id, action, nil)
}

func (s *Service) apply(ctx context.Context, id string, action Action, mutate func(Cliente) Cliente) (Cliente, error) {
	return s.Transition(ctx, id, func(c Cliente) (Cliente, error) {
		status, err := next(action, c.Status)
		if err != nil {
			return c, err
		}
		c.Status = status
		c.AtualizadoEm = s.timestamp()
		if mutate != nil {
			c = mutate(c)
		}
		return c, nil
	})
}

func (s *Service) sendDevolution(ctx context.Context, c Cliente, comentarios string) {
	to := c.ContatosPrincipais.EmailPrincipal
	if s.mailer == nil || to == "" {
		s.logger.Warn("devolution email skipped", slog.String("cliente", c.ID))
		return
	}
	subject, body, err := devolutionEmail(c.Nome, comentarios, s.loginURL)
	if err == nil {
		err = s.mailer.SendEmail(ctx, to, subject, body)
	}
	if err != nil {
		s.logger.Error("devolution email", slog.String("cliente", c.ID), slog.Any("error", err))
	}
}

func (s *Service) notify(ctx context.Context, c Cliente, tipo, titulo, mensagem, destinatario string) {
	if s.notifier == nil {
		return
	}
	_, err := s.notifier.Notify(ctx, notificacoes.Notificacao{
		Tipo:           tipo,
		Titulo:         titulo,
		Mensagem:       mensagem,
		Link:           "/clientes",
		DestinatarioID: destinatario,
		Categoria:      "outros",
		Referencia:     &notificacoes.Referencia{Tipo: "cliente", ID: c.ID},
	})
	if err != nil {
		s.logger.Warn("workflow notification", slog.String("cliente", c.ID), slog.String("tipo", tipo), slog.Any("error", err))
	}
}
