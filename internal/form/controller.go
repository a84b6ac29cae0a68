// Package form implements the modal editing flow: a transient draft seeded
// from defaults or an existing record, validated only at commit time and
// written to the owning store on success.
package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cfohub/cfohub/internal/record"
)

// ErrClosed is returned when operating on a controller that is not open.
var ErrClosed = errors.New("form is not open")

// Mode distinguishes create and edit drafts.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Store is the subset of record.Store a controller commits into.
type Store[T record.Record] interface {
	Add(T) (T, error)
	Update(id string, patch func(T) T) (T, error)
}

// Schema describes how one domain's drafts are seeded and validated.
type Schema[T record.Record] struct {
	Defaults func() T
	// Normalize runs before validation on every commit attempt.
	Normalize func(T) T
	Rules     []Rule[T]
}

// Controller owns one draft at a time. It is not safe for concurrent use.
type Controller[T record.Record] struct {
	store  Store[T]
	schema Schema[T]

	open   bool
	mode   Mode
	editID string
	draft  T
	last   *ValidationError
}

// NewController binds a schema to the store it commits into.
func NewController[T record.Record](store Store[T], schema Schema[T]) *Controller[T] {
	return &Controller[T]{store: store, schema: schema}
}

// Open starts a draft. A nil existing record opens create mode seeded from
// the schema defaults.
func (c *Controller[T]) Open(existing *T) {
	c.open = true
	c.last = nil
	if existing != nil {
		c.mode = ModeEdit
		c.draft = *existing
		c.editID = (*existing).RecordID()
		return
	}
	c.mode = ModeCreate
	c.editID = ""
	var zero T
	c.draft = zero
	if c.schema.Defaults != nil {
		c.draft = c.schema.Defaults()
	}
}

// IsOpen reports whether a draft is in progress.
func (c *Controller[T]) IsOpen() bool { return c.open }

// Mode returns the current draft mode.
func (c *Controller[T]) Mode() Mode { return c.mode }

// Draft returns the current draft.
func (c *Controller[T]) Draft() T { return c.draft }

// LastError returns the validation failure of the last commit attempt.
func (c *Controller[T]) LastError() *ValidationError { return c.last }

// SetField replaces one top-level field of the draft, addressed by its JSON
// name. Nested objects are replaced wholesale. No validation runs here.
func (c *Controller[T]) SetField(name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("form: encode %s: %w", name, err)
	}
	return c.SetFields(map[string]json.RawMessage{name: raw})
}

// SetFields merges several top-level JSON fields into the draft.
func (c *Controller[T]) SetFields(fields map[string]json.RawMessage) error {
	if !c.open {
		return ErrClosed
	}
	current, err := json.Marshal(c.draft)
	if err != nil {
		return fmt.Errorf("form: encode draft: %w", err)
	}
	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(current, &merged); err != nil {
		return fmt.Errorf("form: decode draft: %w", err)
	}
	for k, v := range fields {
		merged[k] = v
	}
	buf, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("form: encode fields: %w", err)
	}
	var next T
	if err := json.Unmarshal(buf, &next); err != nil {
		return Invalid("", fmt.Sprintf("formato inválido: %v", err))
	}
	if c.mode == ModeEdit && next.RecordID() != c.editID {
		return Invalid("id", "o identificador não pode ser alterado")
	}
	c.draft = next
	return nil
}

// Validate runs the rule set against the draft and returns the first failure.
func (c *Controller[T]) Validate() *ValidationError {
	draft := c.draft
	if c.schema.Normalize != nil {
		draft = c.schema.Normalize(draft)
	}
	for _, rule := range c.schema.Rules {
		if verr := rule(draft); verr != nil {
			return verr
		}
	}
	return nil
}

// CanCommit reports whether Commit would pass validation.
func (c *Controller[T]) CanCommit() bool {
	return c.open && c.Validate() == nil
}

// Commit validates the draft and writes it to the store. On validation
// failure the controller stays open with the draft intact.
func (c *Controller[T]) Commit(ctx context.Context) (T, error) {
	var zero T
	if !c.open {
		return zero, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if c.schema.Normalize != nil {
		c.draft = c.schema.Normalize(c.draft)
	}
	if verr := c.Validate(); verr != nil {
		c.last = verr
		return zero, verr
	}
	var (
		saved T
		err   error
	)
	if c.mode == ModeEdit {
		draft := c.draft
		saved, err = c.store.Update(c.editID, func(T) T { return draft })
	} else {
		saved, err = c.store.Add(c.draft)
	}
	if err != nil {
		return zero, err
	}
	c.close()
	return saved, nil
}

// Cancel discards the draft without touching the store.
func (c *Controller[T]) Cancel() {
	c.close()
}

func (c *Controller[T]) close() {
	var zero T
	c.open = false
	c.draft = zero
	c.editID = ""
	c.last = nil
}
