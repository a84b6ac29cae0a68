// Package folha manages the per-client payroll lines, their company
// distribution and the OMIE billing sync.
package folha

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/record"
)

// StoreName is the fixture resource and store name.
const StoreName = "folha-clientes"

// OmieQueue schedules OMIE synchronisation of payroll lines.
type OmieQueue interface {
	EnqueueOmieSync(ctx context.Context, ids []string) error
}

// NewStore builds the payroll line store.
func NewStore(p *fixtures.Provider) *record.Store[FolhaCliente] {
	return record.NewStore(record.Options[FolhaCliente]{
		Name:   StoreName,
		Loader: fixtures.LoaderFrom(p, StoreName, fromFixture),
		NewID:  record.NumericID[FolhaCliente],
		SetID: func(f FolhaCliente, id string) FolhaCliente {
			f.ID = id
			return f
		},
		ExtraMatch: matchExtra,
	})
}

func matchExtra(f FolhaCliente, extra map[string]string) bool {
	if v, ok := extra["periodo"]; ok && f.Periodo != v {
		return false
	}
	if v, ok := extra["cliente"]; ok && strconv.Itoa(f.ClienteID) != v {
		return false
	}
	if v, ok := extra["statusOmie"]; ok && f.StatusOmie != v {
		return false
	}
	return true
}

// Service manages payroll lines.
type Service struct {
	*collection.Service[FolhaCliente]
	logger *slog.Logger
	queue  OmieQueue
	now    func() time.Time
}

// NewService constructs the payroll service. With a nil queue OMIE syncs
// run inline.
func NewService(logger *slog.Logger, store *record.Store[FolhaCliente], queue OmieQueue) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{logger: logger, queue: queue, now: time.Now}
	s.Service = collection.NewService(store, form.Schema[FolhaCliente]{
		Defaults:  s.defaults,
		Normalize: s.touch,
		Rules: []form.Rule[FolhaCliente]{
			form.StructRule[FolhaCliente](form.NewValidator()),
			func(f FolhaCliente) *form.ValidationError {
				return form.Distribution("distribuicao", f.Percents())
			},
		},
	})
	return s
}

func (s *Service) defaults() FolhaCliente {
	now := s.now().UTC()
	return FolhaCliente{
		Periodo:      now.Format("2006-01"),
		Situacao:     SituacaoPendente,
		StatusOmie:   OmiePendente,
		Distribuicao: []Operacao{},
		CriadoEm:     now.Format(time.RFC3339),
	}
}

func (s *Service) touch(f FolhaCliente) FolhaCliente {
	f = Recalculate(f)
	f.AtualizadoEm = s.now().UTC().Format(time.RFC3339)
	return f
}

// Recalcular refreshes the derived totals of one line.
func (s *Service) Recalcular(ctx context.Context, id string) (FolhaCliente, error) {
	return s.Transition(ctx, id, func(f FolhaCliente) (FolhaCliente, error) {
		return s.touch(f), nil
	})
}

// EnviarOmie marks one line as sent and schedules its sync.
func (s *Service) EnviarOmie(ctx context.Context, id string) (FolhaCliente, error) {
	_, err := s.Transition(ctx, id, func(f FolhaCliente) (FolhaCliente, error) {
		f.StatusOmie = OmieEnviado
		return f, nil
	})
	if err != nil {
		return FolhaCliente{}, err
	}
	if err := s.schedule(ctx, []string{id}); err != nil {
		return FolhaCliente{}, err
	}
	return s.Get(ctx, id)
}

// SincronizarOmie schedules every pending, non-cancelled line and returns
// how many were queued.
func (s *Service) SincronizarOmie(ctx context.Context) (int, error) {
	if err := s.Ensure(ctx); err != nil {
		return 0, err
	}
	var ids []string
	for _, f := range s.Store().All() {
		if f.StatusOmie == OmiePendente && f.Situacao != SituacaoCancelado {
			ids = append(ids, f.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	for _, id := range ids {
		if _, err := s.Transition(ctx, id, func(f FolhaCliente) (FolhaCliente, error) {
			f.StatusOmie = OmieEnviado
			return f, nil
		}); err != nil {
			return 0, err
		}
	}
	if err := s.schedule(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *Service) schedule(ctx context.Context, ids []string) error {
	if s.queue == nil {
		_, err := s.CompleteOmieSync(ctx, ids)
		return err
	}
	if err := s.queue.EnqueueOmieSync(ctx, ids); err != nil {
		s.markOmie(ctx, ids, OmieErro)
		return fmt.Errorf("folha: enqueue omie sync: %w", err)
	}
	return nil
}

func (s *Service) markOmie(ctx context.Context, ids []string, status string) {
	for _, id := range ids {
		if _, err := s.Transition(ctx, id, func(f FolhaCliente) (FolhaCliente, error) {
			f.StatusOmie = status
			return f, nil
		}); err != nil {
			s.logger.Warn("mark omie status", slog.String("id", id), slog.Any("error", err))
		}
	}
}

// CompleteOmieSync records a successful OMIE sync for ids. Lines removed
// since they were queued are skipped.
func (s *Service) CompleteOmieSync(ctx context.Context, ids []string) (int, error) {
	if err := s.Ensure(ctx); err != nil {
		return 0, err
	}
	done := 0
	for _, id := range ids {
		now := s.now().UTC()
		_, err := s.Transition(ctx, id, func(f FolhaCliente) (FolhaCliente, error) {
			f.StatusOmie = OmieSincronizado
			f.CodigoOmie = "OMIE-" + strconv.FormatInt(now.UnixMilli(), 10)
			f.DataEnvioOmie = now.Format(time.RFC3339)
			return f, nil
		})
		if err != nil {
			s.logger.Warn("omie sync skipped", slog.String("id", id), slog.Any("error", err))
			continue
		}
		done++
	}
	return done, nil
}
