package portfolio

import "github.com/shopspring/decimal"

// Holding is one symbol's position: the latest known per-share price and the
// number of shares held.
type Holding struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// Value is price times quantity.
func (h Holding) Value() decimal.Decimal {
	return h.Price.Mul(decimal.NewFromInt(h.Quantity))
}

type PortfolioItem struct {
	Symbol   string          `json:"symbol"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Value    decimal.Decimal `json:"value"`
}
