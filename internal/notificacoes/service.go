// Package notificacoes keeps the in-app notification feed. New entries are
// prepended so the feed reads newest first.
package notificacoes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/record"
)

// StoreName is the fixture resource and store name.
const StoreName = "notificacoes"

// NewStore builds the notification store fed by the fixture provider.
func NewStore(p *fixtures.Provider) *record.Store[Notificacao] {
	return record.NewStore(record.Options[Notificacao]{
		Name:   StoreName,
		Loader: fixtures.LoaderFrom(p, StoreName, fromFixture),
		SetID: func(n Notificacao, id string) Notificacao {
			n.ID = id
			return n
		},
		ExtraMatch: matchExtra,
		Prepend:    true,
	})
}

func matchExtra(n Notificacao, extra map[string]string) bool {
	if v, ok := extra["categoria"]; ok && n.Categoria != v {
		return false
	}
	if v, ok := extra["prioridade"]; ok && n.Prioridade != v {
		return false
	}
	// An empty recipient addresses everyone.
	if v, ok := extra["destinatario"]; ok && n.DestinatarioID != "" && n.DestinatarioID != v {
		return false
	}
	return true
}

// Service manages the notification feed.
type Service struct {
	*collection.Service[Notificacao]
	now func() time.Time
}

// NewService constructs the notification service.
func NewService(store *record.Store[Notificacao]) *Service {
	s := &Service{now: time.Now}
	s.Service = collection.NewService(store, form.Schema[Notificacao]{
		Defaults:  s.defaults,
		Normalize: applyDefaults,
		Rules:     []form.Rule[Notificacao]{form.StructRule[Notificacao](form.NewValidator())},
	})
	return s
}

func (s *Service) defaults() Notificacao {
	return Notificacao{
		Tipo:       "aviso_sistema",
		CriadoEm:   s.now().UTC().Format(time.RFC3339),
		Prioridade: PrioridadeMedia,
		Categoria:  CategoriaSistema,
	}
}

// Notify prepends an unread notification. Missing id, date, prioridade and
// categoria are filled in.
func (s *Service) Notify(ctx context.Context, n Notificacao) (Notificacao, error) {
	if err := s.Ensure(ctx); err != nil {
		return Notificacao{}, err
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CriadoEm == "" {
		n.CriadoEm = s.now().UTC().Format(time.RFC3339)
	}
	n.Lida = false
	saved, err := s.Store().Add(applyDefaults(n))
	if err != nil {
		return Notificacao{}, fmt.Errorf("notify %s: %w", n.Tipo, err)
	}
	return saved, nil
}

// MarkRead flags one notification as read.
func (s *Service) MarkRead(ctx context.Context, id string) (Notificacao, error) {
	return s.Transition(ctx, id, func(n Notificacao) (Notificacao, error) {
		n.Lida = true
		return n, nil
	})
}

// MarkAllRead flags every unread notification and returns how many changed.
func (s *Service) MarkAllRead(ctx context.Context) (int, error) {
	if err := s.Ensure(ctx); err != nil {
		return 0, err
	}
	changed := 0
	for _, n := range s.Store().All() {
		if n.Lida {
			continue
		}
		if _, err := s.MarkRead(ctx, n.ID); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

// Unread lists unread notifications, optionally restricted to one recipient.
func (s *Service) Unread(ctx context.Context, destinatario string) ([]Notificacao, error) {
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}
	f := record.DefaultFilter()
	f.Status = StatusNaoLida
	if destinatario != "" {
		f.Extra = map[string]string{"destinatario": destinatario}
	}
	return s.Store().Select(f), nil
}
