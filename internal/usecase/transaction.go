package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Transaction runs a sequence of operations and compensates the completed ones
// in reverse order when a later operation fails. The forced focus rebuild uses
// it so a failed replacement restores the previously committed list.
type Transaction struct {
	operations    []txStep
	compensations []txStep
	log           *logrus.Logger
}

type txStep struct {
	Name string
	Fn   func(context.Context) error
}

func NewTransaction(log *logrus.Logger) *Transaction {
	return &Transaction{log: log}
}

func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, txStep{name, fn})
}

func (t *Transaction) AddCompensation(name string, fn func(context.Context) error) {
	t.compensations = append(t.compensations, txStep{name, fn})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.Name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) {
	for i := failedAtIndex - 1; i >= 0; i-- {
		if i >= len(t.compensations) {
			continue
		}
		comp := t.compensations[i]
		if err := comp.Fn(ctx); err != nil {
			t.log.WithError(err).WithField("compensation", comp.Name).
				Error("compensation failed, state may be inconsistent")
		}
	}
}
