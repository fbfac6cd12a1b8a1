package portfolio

import (
	"fmt"
	"io"
	"math"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Portfolio is an ordered set of holdings, unique by symbol. Holdings keep the
// order in which their symbol was first bought. It is not safe for concurrent
// use.
type Portfolio struct {
	holdings []Holding
	out      io.Writer
	log      *logrus.Logger
}

// New returns an empty portfolio that writes its trade confirmations and
// reports to out.
func New(out io.Writer, log *logrus.Logger) *Portfolio {
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Portfolio{out: out, log: log}
}

func (p *Portfolio) find(symbol string) int {
	for i := range p.holdings {
		if p.holdings[i].Symbol == symbol {
			return i
		}
	}
	return -1
}

// Buy adds quantity shares of symbol. An existing holding takes the new price
// as its latest price.
func (p *Portfolio) Buy(symbol string, price decimal.Decimal, quantity int64) error {
	if quantity <= 0 {
		p.log.Warnf("buy %s rejected: quantity %d", symbol, quantity)
		return fmt.Errorf("buy %s: %w", symbol, ErrInvalidQuantity)
	}
	if price.IsNegative() {
		p.log.Warnf("buy %s rejected: price %s", symbol, price)
		return fmt.Errorf("buy %s: %w", symbol, ErrInvalidPrice)
	}

	if i := p.find(symbol); i >= 0 {
		if quantity > math.MaxInt64-p.holdings[i].Quantity {
			p.log.Warnf("buy %s rejected: %d more shares overflows holding of %d", symbol, quantity, p.holdings[i].Quantity)
			return fmt.Errorf("buy %d %s, holding %d: %w", quantity, symbol, p.holdings[i].Quantity, ErrQuantityOverflow)
		}
		p.holdings[i].Quantity += quantity
		p.holdings[i].Price = price
	} else {
		p.holdings = append(p.holdings, Holding{Symbol: symbol, Price: price, Quantity: quantity})
	}
	fmt.Fprintf(p.out, "Bought %d shares of %s at $%s.\n", quantity, symbol, price)
	p.log.Debugf("bought %d %s at %s", quantity, symbol, price)
	return nil
}

// Sell removes quantity shares of symbol, dropping the holding once it reaches
// zero. When the symbol is missing or not enough shares are held the portfolio
// is left untouched, a notice is written out and the matching error returned.
func (p *Portfolio) Sell(symbol string, quantity int64) error {
	if quantity <= 0 {
		p.log.Warnf("sell %s rejected: quantity %d", symbol, quantity)
		return fmt.Errorf("sell %s: %w", symbol, ErrInvalidQuantity)
	}

	i := p.find(symbol)
	if i < 0 {
		fmt.Fprintf(p.out, "Stock %s not found in portfolio.\n", symbol)
		return fmt.Errorf("sell %s: %w", symbol, ErrSymbolNotFound)
	}
	if p.holdings[i].Quantity < quantity {
		fmt.Fprintf(p.out, "Not enough shares of %s to sell.\n", symbol)
		return fmt.Errorf("sell %d %s, holding %d: %w", quantity, symbol, p.holdings[i].Quantity, ErrInsufficientShares)
	}

	p.holdings[i].Quantity -= quantity
	fmt.Fprintf(p.out, "Sold %d shares of %s.\n", quantity, symbol)
	if p.holdings[i].Quantity == 0 {
		p.holdings = append(p.holdings[:i], p.holdings[i+1:]...)
		p.log.Debugf("holding %s closed", symbol)
	}
	return nil
}

// TotalValue sums price times quantity over every holding.
func (p *Portfolio) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, h := range p.holdings {
		total = total.Add(h.Value())
	}
	return total
}

// Holding looks up the current position in symbol.
func (p *Portfolio) Holding(symbol string) (Holding, bool) {
	if i := p.find(symbol); i >= 0 {
		return p.holdings[i], true
	}
	return Holding{}, false
}

// Holdings returns a copy of the holdings in portfolio order.
func (p *Portfolio) Holdings() []Holding {
	res := make([]Holding, len(p.holdings))
	copy(res, p.holdings)
	return res
}

// Items values each holding and returns them with the portfolio total.
func (p *Portfolio) Items() ([]PortfolioItem, decimal.Decimal) {
	items := []PortfolioItem{}
	total := decimal.Zero
	for _, h := range p.holdings {
		value := h.Value()
		items = append(items, PortfolioItem{Symbol: h.Symbol, Quantity: h.Quantity, Price: h.Price, Value: value})
		total = total.Add(value)
	}
	return items, total
}

func (p *Portfolio) Len() int { return len(p.holdings) }

// Print writes every holding followed by the total value.
func (p *Portfolio) Print() {
	fmt.Fprintln(p.out, "Current Portfolio:")
	for _, h := range p.holdings {
		fmt.Fprintf(p.out, "Symbol: %s, Price: %s, Quantity: %d\n", h.Symbol, h.Price, h.Quantity)
	}
	fmt.Fprintf(p.out, "Total Value: $%s\n", p.TotalValue())
}
