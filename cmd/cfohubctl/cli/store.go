package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/cfohub/cfohub/internal/app"
	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/folha"
	"github.com/cfohub/cfohub/internal/platform/snapshot"
	"github.com/cfohub/cfohub/internal/record"
)

// Workspace opens the stores the server would see: snapshot state when a
// bucket exists, fixtures otherwise.
type Workspace struct {
	DB       *snapshot.DB
	Stores   *app.Stores
	Services *app.Services
	unbind   func()
}

// OpenWorkspace binds fresh stores to the snapshot database at path.
func OpenWorkspace(ctx context.Context, path string, logger *slog.Logger) (*Workspace, error) {
	provider, err := fixtures.NewProvider()
	if err != nil {
		return nil, err
	}
	db, err := snapshot.Open(path, logger)
	if err != nil {
		return nil, err
	}
	stores := app.NewStores(provider)
	unbind, err := stores.Bind(ctx, db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Workspace{
		DB:       db,
		Stores:   stores,
		Services: app.NewServices(stores, app.ServiceDeps{Logger: logger}),
		unbind:   unbind,
	}, nil
}

// Close stops persistence and closes the database.
func (w *Workspace) Close() error {
	w.Services.Close()
	w.unbind()
	return w.DB.Close()
}

// ExportFolha writes the payroll lines of periodo (all when empty) with the
// given status as CSV.
func (w *Workspace) ExportFolha(ctx context.Context, periodo, status string, out io.Writer) (int, error) {
	f := record.DefaultFilter()
	if status != "" {
		f.Status = status
	}
	if periodo != "" {
		f.Extra = map[string]string{"periodo": periodo}
	}
	return w.Services.Folha.Export(ctx, f, out)
}

// WriteFolhaTemplate writes the payroll import template.
func WriteFolhaTemplate(out io.Writer) error {
	return folha.WriteTemplate(out)
}

// Buckets lists the persisted stores.
func (w *Workspace) Buckets(ctx context.Context) ([]string, error) {
	return w.DB.Buckets(ctx)
}
