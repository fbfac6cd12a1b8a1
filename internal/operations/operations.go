package operations

import (
	"errors"
	"fmt"

	"holdings/internal/portfolio"

	"github.com/shopspring/decimal"
)

var ErrUnknownOperation = errors.New("unknown_operation")

// Operation is the uniform shape every table entry is called through. Entries
// that have no use for price ignore it.
type Operation func(p *portfolio.Portfolio, symbol string, price decimal.Decimal, quantity int64) error

type Table map[string]Operation

func Default() Table {
	return Table{
		"buy": func(p *portfolio.Portfolio, symbol string, price decimal.Decimal, quantity int64) error {
			return p.Buy(symbol, price, quantity)
		},
		"sell": func(p *portfolio.Portfolio, symbol string, _ decimal.Decimal, quantity int64) error {
			return p.Sell(symbol, quantity)
		},
	}
}

func (t Table) Lookup(name string) (Operation, error) {
	op, ok := t[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownOperation)
	}
	return op, nil
}

func (t Table) Call(name string, p *portfolio.Portfolio, symbol string, price decimal.Decimal, quantity int64) error {
	op, err := t.Lookup(name)
	if err != nil {
		return err
	}
	return op(p, symbol, price, quantity)
}
