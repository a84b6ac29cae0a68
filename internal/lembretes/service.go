// Package lembretes tracks HR reminders and generates them from the
// collaborator roster.
package lembretes

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/colaboradores"
	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/notificacoes"
	"github.com/cfohub/cfohub/internal/record"
)

// StoreName is the fixture resource and store name.
const StoreName = "lembretes"

// Roster lists the collaborators reminders are generated for.
type Roster interface {
	Active(ctx context.Context) ([]colaboradores.Colaborador, error)
}

// Notifier receives one notification per new reminder.
type Notifier interface {
	Notify(ctx context.Context, n notificacoes.Notificacao) (notificacoes.Notificacao, error)
}

// Scheduler queues a background generation run.
type Scheduler interface {
	EnqueueReminderGeneration(ctx context.Context) error
}

// NewStore builds the reminder store.
func NewStore(p *fixtures.Provider) *record.Store[Lembrete] {
	return record.NewStore(record.Options[Lembrete]{
		Name:   StoreName,
		Loader: fixtures.LoaderFrom(p, StoreName, fromFixture),
		SetID: func(l Lembrete, id string) Lembrete {
			l.ID = id
			return l
		},
		ExtraMatch: func(l Lembrete, extra map[string]string) bool {
			if v, ok := extra["prioridade"]; ok && l.Prioridade != v {
				return false
			}
			if v, ok := extra["colaborador"]; ok && l.ColaboradorID != v {
				return false
			}
			return true
		},
	})
}

// Options configures a reminder service.
type Options struct {
	Logger    *slog.Logger
	Roster    Roster
	Notifier  Notifier
	Scheduler Scheduler
}

// Service manages reminders.
type Service struct {
	*collection.Service[Lembrete]
	logger    *slog.Logger
	roster    Roster
	notifier  Notifier
	scheduler Scheduler
	now       func() time.Time

	cfgMu sync.RWMutex
	cfg   Configuracoes

	unsubscribe func()
}

// NewService constructs the reminder service. Every reminder added to the
// store from then on is announced through the notifier.
func NewService(store *record.Store[Lembrete], opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Service{
		logger:    opts.Logger,
		roster:    opts.Roster,
		notifier:  opts.Notifier,
		scheduler: opts.Scheduler,
		now:       time.Now,
		cfg:       DefaultConfiguracoes(),
	}
	s.Service = collection.NewService(store, form.Schema[Lembrete]{
		Defaults:  s.defaults,
		Normalize: normalize,
		Rules:     []form.Rule[Lembrete]{form.StructRule[Lembrete](form.NewValidator())},
	})
	if s.notifier != nil {
		s.unsubscribe = store.Subscribe(s.announce)
	}
	return s
}

// Close stops announcing new reminders.
func (s *Service) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func (s *Service) today() time.Time {
	return midnight(s.now())
}

func (s *Service) defaults() Lembrete {
	return Lembrete{
		Tipo:         TipoOutro,
		Prioridade:   PrioridadeMedia,
		Status:       StatusPendente,
		DataLembrete: s.today().Format(DateLayout),
	}
}

func normalize(l Lembrete) Lembrete {
	l.DataEvento = datePart(l.DataEvento)
	return l
}

func (s *Service) announce(ev record.Event) {
	if ev.Kind != record.EventAdded {
		return
	}
	l, err := s.Store().Get(ev.ID)
	if err != nil {
		return
	}
	_, err = s.notifier.Notify(context.Background(), notificacoes.Notificacao{
		ID:         "lem-" + l.ID,
		Tipo:       "lembrete",
		Titulo:     l.Titulo,
		Mensagem:   l.Descricao,
		Link:       "/lembretes",
		Prioridade: l.Prioridade,
		Categoria:  "rh",
		Referencia: &notificacoes.Referencia{Tipo: "lembrete", ID: l.ID},
	})
	if err != nil {
		s.logger.Warn("reminder notification failed", slog.String("id", l.ID), slog.Any("error", err))
	}
}

// Configuracoes returns the current generation settings.
func (s *Service) Configuracoes() Configuracoes {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// SetConfiguracoes replaces the generation settings.
func (s *Service) SetConfiguracoes(cfg Configuracoes) error {
	if verr := form.StructRule[Configuracoes](form.NewValidator())(cfg); verr != nil {
		return verr
	}
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
	return nil
}

// Visualizar marks a pending reminder as seen. Other states are returned
// unchanged.
func (s *Service) Visualizar(ctx context.Context, id string) (Lembrete, error) {
	return s.Transition(ctx, id, func(l Lembrete) (Lembrete, error) {
		if l.Status != StatusPendente {
			return l, nil
		}
		l.Status = StatusVisualizado
		l.DataVisualizacao = s.today().Format(DateLayout)
		return l, nil
	})
}

// Concluir completes a reminder.
func (s *Service) Concluir(ctx context.Context, id string) (Lembrete, error) {
	return s.Transition(ctx, id, func(l Lembrete) (Lembrete, error) {
		l.Status = StatusConcluido
		l.DataConclusao = s.today().Format(DateLayout)
		return l, nil
	})
}

// Dispensar dismisses a reminder. Dismissed reminders may be generated again.
func (s *Service) Dispensar(ctx context.Context, id string) (Lembrete, error) {
	return s.Transition(ctx, id, func(l Lembrete) (Lembrete, error) {
		l.Status = StatusDispensado
		return l, nil
	})
}

// Ranked returns the pending reminders ordered by priority then event date.
func (s *Service) Ranked(ctx context.Context) ([]Lembrete, error) {
	pending, err := s.pending(ctx, func(Lembrete) bool { return true })
	if err != nil {
		return nil, err
	}
	return record.SortByPriorityThenDate(pending), nil
}

// Hoje returns the pending reminders whose event is today.
func (s *Service) Hoje(ctx context.Context) ([]Lembrete, error) {
	today := s.today().Format(DateLayout)
	return s.pending(ctx, func(l Lembrete) bool { return l.DataEvento == today })
}

func (s *Service) pending(ctx context.Context, keep func(Lembrete) bool) ([]Lembrete, error) {
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}
	out := []Lembrete{}
	for _, l := range s.Store().All() {
		if l.Pending() && keep(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

// Limpar removes settled reminders whose event is older than dias days.
func (s *Service) Limpar(ctx context.Context, dias int) (int, error) {
	if err := s.Ensure(ctx); err != nil {
		return 0, err
	}
	limite := s.today().AddDate(0, 0, -dias)
	removed := 0
	for _, l := range s.Store().All() {
		if l.Pending() || !l.RecordDate().Before(limite) {
			continue
		}
		if err := s.Store().Remove(l.ID); err != nil {
			return removed, fmt.Errorf("limpar lembretes: %w", err)
		}
		removed++
	}
	return removed, nil
}

// Generate adds the reminders due for the roster today. A reminder is not
// repeated while one with the same kind, collaborator and event date exists
// and was not dismissed.
func (s *Service) Generate(ctx context.Context) (int, error) {
	if s.roster == nil {
		return 0, fmt.Errorf("lembretes: no roster configured")
	}
	if err := s.Ensure(ctx); err != nil {
		return 0, err
	}
	colabs, err := s.roster.Active(ctx)
	if err != nil {
		return 0, fmt.Errorf("lembretes: list colaboradores: %w", err)
	}

	type key struct{ tipo, colaborador, evento string }
	existing := make(map[key]struct{})
	for _, l := range s.Store().All() {
		if l.Status != StatusDispensado {
			existing[key{l.Tipo, l.ColaboradorID, l.DataEvento}] = struct{}{}
		}
	}

	cfg := s.Configuracoes()
	today := s.today()
	created := 0
	for _, c := range colabs {
		for _, l := range candidates(c, cfg, today) {
			k := key{l.Tipo, l.ColaboradorID, l.DataEvento}
			if _, ok := existing[k]; ok {
				continue
			}
			l.ID = fmt.Sprintf("%s-%s-%s", l.Tipo, c.ID, uuid.NewString()[:8])
			l.Status = StatusPendente
			l.DataLembrete = today.Format(DateLayout)
			if _, err := s.Store().Add(l); err != nil {
				return created, fmt.Errorf("lembretes: add %s: %w", l.ID, err)
			}
			existing[k] = struct{}{}
			created++
		}
	}
	s.logger.Info("reminders generated", slog.Int("created", created), slog.Int("colaboradores", len(colabs)))
	return created, nil
}

// RequestGeneration queues a generation run, or runs it inline when no
// scheduler is configured. It reports whether the run was queued.
func (s *Service) RequestGeneration(ctx context.Context) (bool, int, error) {
	if s.scheduler == nil {
		n, err := s.Generate(ctx)
		return false, n, err
	}
	if err := s.scheduler.EnqueueReminderGeneration(ctx); err != nil {
		return false, 0, fmt.Errorf("lembretes: enqueue generation: %w", err)
	}
	return true, 0, nil
}
