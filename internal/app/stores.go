package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cfohub/cfohub/internal/beneficios"
	"github.com/cfohub/cfohub/internal/clientes"
	"github.com/cfohub/cfohub/internal/colaboradores"
	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/folha"
	"github.com/cfohub/cfohub/internal/lembretes"
	"github.com/cfohub/cfohub/internal/notificacoes"
	"github.com/cfohub/cfohub/internal/okrs"
	"github.com/cfohub/cfohub/internal/platform/snapshot"
	"github.com/cfohub/cfohub/internal/record"
	"github.com/cfohub/cfohub/internal/solicitacoes"
)

// Stores bundles one record store per domain. Stores are built once and
// injected into services, jobs and handlers.
type Stores struct {
	Clientes      *record.Store[clientes.Cliente]
	Colaboradores *record.Store[colaboradores.Colaborador]
	Folha         *record.Store[folha.FolhaCliente]
	Beneficios    *record.Store[beneficios.Beneficio]
	OKRs          *record.Store[okrs.OKR]
	Lembretes     *record.Store[lembretes.Lembrete]
	Notificacoes  *record.Store[notificacoes.Notificacao]
	Solicitacoes  *record.Store[solicitacoes.Solicitacao]
}

// NewStores builds every store over the fixture provider.
func NewStores(p *fixtures.Provider) *Stores {
	return &Stores{
		Clientes:      clientes.NewStore(p),
		Colaboradores: colaboradores.NewStore(p),
		Folha:         folha.NewStore(p),
		Beneficios:    beneficios.NewStore(p),
		OKRs:          okrs.NewStore(p),
		Lembretes:     lembretes.NewStore(p),
		Notificacoes:  notificacoes.NewStore(p),
		Solicitacoes:  solicitacoes.NewStore(p),
	}
}

// Observe subscribes fn to every store and returns a func removing it.
func (s *Stores) Observe(fn func(record.Event)) func() {
	return combine(
		s.Clientes.Subscribe(fn),
		s.Colaboradores.Subscribe(fn),
		s.Folha.Subscribe(fn),
		s.Beneficios.Subscribe(fn),
		s.OKRs.Subscribe(fn),
		s.Lembretes.Subscribe(fn),
		s.Notificacoes.Subscribe(fn),
		s.Solicitacoes.Subscribe(fn),
	)
}

// Bind restores each store from the snapshot database and keeps it
// persisted. Stores without a saved bucket load lazily from fixtures.
func (s *Stores) Bind(ctx context.Context, db *snapshot.DB, logger *slog.Logger) (func(), error) {
	steps := []struct {
		name string
		fn   func() (func(), bool, error)
	}{
		{clientes.StoreName, func() (func(), bool, error) { return snapshot.Bind(ctx, db, s.Clientes) }},
		{colaboradores.StoreName, func() (func(), bool, error) { return snapshot.Bind(ctx, db, s.Colaboradores) }},
		{folha.StoreName, func() (func(), bool, error) { return snapshot.Bind(ctx, db, s.Folha) }},
		{beneficios.StoreName, func() (func(), bool, error) { return snapshot.Bind(ctx, db, s.Beneficios) }},
		{okrs.StoreName, func() (func(), bool, error) { return snapshot.Bind(ctx, db, s.OKRs) }},
		{lembretes.StoreName, func() (func(), bool, error) { return snapshot.Bind(ctx, db, s.Lembretes) }},
		{notificacoes.StoreName, func() (func(), bool, error) { return snapshot.Bind(ctx, db, s.Notificacoes) }},
		{solicitacoes.StoreName, func() (func(), bool, error) { return snapshot.Bind(ctx, db, s.Solicitacoes) }},
	}
	var stops []func()
	for _, step := range steps {
		stop, restored, err := step.fn()
		if err != nil {
			combine(stops...)()
			return nil, fmt.Errorf("bind %s: %w", step.name, err)
		}
		stops = append(stops, stop)
		if logger != nil {
			logger.Debug("store bound to snapshot", slog.String("store", step.name), slog.Bool("restored", restored))
		}
	}
	return combine(stops...), nil
}

func combine(fns ...func()) func() {
	return func() {
		for _, fn := range fns {
			if fn != nil {
				fn()
			}
		}
	}
}

// ServiceDeps carries the queue-backed collaborators of the services. Nil
// values make the services run the work inline or skip it.
type ServiceDeps struct {
	Logger    *slog.Logger
	Mailer    clientes.Mailer
	Omie      folha.OmieQueue
	Scheduler lembretes.Scheduler
	LoginURL  string
}

// Services bundles the domain services built over Stores.
type Services struct {
	Clientes      *clientes.Service
	Colaboradores *colaboradores.Service
	Folha         *folha.Service
	Beneficios    *beneficios.Service
	OKRs          *okrs.Service
	Lembretes     *lembretes.Service
	Notificacoes  *notificacoes.Service
	Solicitacoes  *solicitacoes.Service
}

// NewServices wires the domain services. Notifications produced by the
// client, request and reminder workflows land in the notification store.
func NewServices(stores *Stores, deps ServiceDeps) *Services {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notif := notificacoes.NewService(stores.Notificacoes)
	colab := colaboradores.NewService(stores.Colaboradores)
	svc := &Services{
		Notificacoes:  notif,
		Colaboradores: colab,
		Beneficios:    beneficios.NewService(stores.Beneficios),
		OKRs:          okrs.NewService(stores.OKRs),
		Folha:         folha.NewService(logger, stores.Folha, deps.Omie),
		Solicitacoes:  solicitacoes.NewService(logger, stores.Solicitacoes, notif),
		Clientes: clientes.NewService(stores.Clientes, clientes.Options{
			Logger:   logger,
			Notifier: notif,
			Mailer:   deps.Mailer,
			LoginURL: deps.LoginURL,
		}),
		Lembretes: lembretes.NewService(stores.Lembretes, lembretes.Options{
			Logger:    logger,
			Roster:    colab,
			Notifier:  notif,
			Scheduler: deps.Scheduler,
		}),
	}
	return svc
}

// Close releases service subscriptions.
func (s *Services) Close() {
	s.Lembretes.Close()
}
