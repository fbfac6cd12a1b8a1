package portfolio

import "errors"

var (
	ErrSymbolNotFound     = errors.New("symbol_not_found")
	ErrInsufficientShares = errors.New("insufficient_shares")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInvalidPrice       = errors.New("invalid_price")
	ErrQuantityOverflow   = errors.New("quantity_overflow")
)
