package service

import (
	"context"
	"sync"
	"time"

	"holdings/internal/models"
	"holdings/internal/portfolio"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Trader interface {
	Buy(ctx context.Context, symbol string, price decimal.Decimal, quantity int64) (models.Trade, portfolio.Holding, error)
	Sell(ctx context.Context, symbol string, quantity int64) (models.Trade, portfolio.Holding, error)
	Portfolio(ctx context.Context) ([]portfolio.PortfolioItem, decimal.Decimal, error)
	Trades(ctx context.Context) ([]models.Trade, error)
}

// Desk serializes access to a single portfolio and journals every trade it
// applies.
type Desk struct {
	mu     sync.Mutex
	p      *portfolio.Portfolio
	trades []models.Trade
	log    *logrus.Logger
	now    func() time.Time
}

func NewDesk(p *portfolio.Portfolio, log *logrus.Logger) *Desk {
	return &Desk{p: p, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func (d *Desk) Buy(ctx context.Context, symbol string, price decimal.Decimal, quantity int64) (models.Trade, portfolio.Holding, error) {
	if err := ctx.Err(); err != nil {
		return models.Trade{}, portfolio.Holding{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.p.Buy(symbol, price, quantity); err != nil {
		return models.Trade{}, portfolio.Holding{}, err
	}
	t := d.record(models.SideBuy, symbol, price, quantity)
	h, _ := d.p.Holding(symbol)
	return t, h, nil
}

// Sell returns the remaining holding, which has zero quantity once the
// position is closed.
func (d *Desk) Sell(ctx context.Context, symbol string, quantity int64) (models.Trade, portfolio.Holding, error) {
	if err := ctx.Err(); err != nil {
		return models.Trade{}, portfolio.Holding{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	before, _ := d.p.Holding(symbol)
	if err := d.p.Sell(symbol, quantity); err != nil {
		return models.Trade{}, portfolio.Holding{}, err
	}
	t := d.record(models.SideSell, symbol, before.Price, quantity)
	h, ok := d.p.Holding(symbol)
	if !ok {
		h = portfolio.Holding{Symbol: symbol, Price: before.Price}
	}
	return t, h, nil
}

func (d *Desk) Portfolio(ctx context.Context) ([]portfolio.PortfolioItem, decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return nil, decimal.Zero, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	items, total := d.p.Items()
	return items, total, nil
}

func (d *Desk) Trades(ctx context.Context) ([]models.Trade, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	res := make([]models.Trade, len(d.trades))
	copy(res, d.trades)
	return res, nil
}

// Print writes the portfolio report to the portfolio's output.
func (d *Desk) Print() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.p.Print()
}

func (d *Desk) record(side models.Side, symbol string, price decimal.Decimal, quantity int64) models.Trade {
	t := models.Trade{
		ID:        uuid.NewString(),
		Side:      side,
		Symbol:    symbol,
		Price:     price,
		Quantity:  quantity,
		Timestamp: d.now(),
	}
	d.trades = append(d.trades, t)
	d.log.Infof("%s %d %s at %s (trade %s)", side, quantity, symbol, price, t.ID)
	return t
}
