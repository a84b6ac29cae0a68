package clientes

import (
	"fmt"
	"slices"

	"github.com/cfohub/cfohub/internal/shared"
)

// Action names a registration workflow step.
type Action string

const (
	ActionSubmeter Action = "submeter"
	ActionAprovar  Action = "aprovar"
	ActionRejeitar Action = "rejeitar"
	ActionDevolver Action = "devolver"
	ActionAtivar   Action = "ativar"
	ActionPausar   Action = "pausar"
	ActionEncerrar Action = "encerrar"
)

// transition moves a client to status to. An empty from accepts any current
// status: the registration steps are direct actions that always apply.
type transition struct {
	from []string
	to   string
}

var workflow = map[Action]transition{
	ActionSubmeter: {to: StatusPendente},
	ActionAprovar:  {to: StatusAprovado},
	ActionRejeitar: {to: StatusRejeitado},
	ActionDevolver: {to: StatusDevolvido},
	ActionAtivar:   {from: []string{StatusAprovado, StatusPausado}, to: StatusAtivo},
	ActionPausar:   {from: []string{StatusAtivo}, to: StatusPausado},
	ActionEncerrar: {from: []string{StatusAtivo, StatusPausado}, to: StatusEncerrado},
}

// next returns the status reached by applying action to current.
func next(action Action, current string) (string, error) {
	t, ok := workflow[action]
	if !ok {
		return "", fmt.Errorf("cliente action %q: %w", action, shared.ErrInvalidTransition)
	}
	if len(t.from) > 0 && !slices.Contains(t.from, current) {
		return "", fmt.Errorf("cliente %s from %s: %w", action, current, shared.ErrInvalidTransition)
	}
	return t.to, nil
}
