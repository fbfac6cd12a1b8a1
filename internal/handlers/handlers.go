package handlers

import (
	"errors"
	"net/http"

	"holdings/internal/portfolio"
	"holdings/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	trader service.Trader
	log    *logrus.Logger
}

func NewHandler(t service.Trader, log *logrus.Logger) *Handler {
	return &Handler{trader: t, log: log}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/buy", h.PostBuy)
	r.POST("/sell", h.PostSell)
	r.GET("/portfolio", h.GetPortfolio)
	r.GET("/trades", h.GetTrades)
}

type BuyRequest struct {
	Symbol   string `json:"symbol" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required"`
}

type SellRequest struct {
	Symbol   string `json:"symbol" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required"`
}

func (h *Handler) PostBuy(c *gin.Context) {
	var req BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid buy body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		h.log.Warnf("invalid price: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price format"})
		return
	}

	trade, holding, err := h.trader.Buy(c.Request.Context(), req.Symbol, price, req.Quantity)
	if err != nil {
		h.tradeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trade_id": trade.ID, "holding": holding})
}

func (h *Handler) PostSell(c *gin.Context) {
	var req SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid sell body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trade, holding, err := h.trader.Sell(c.Request.Context(), req.Symbol, req.Quantity)
	if err != nil {
		h.tradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trade_id": trade.ID, "holding": holding})
}

func (h *Handler) GetPortfolio(c *gin.Context) {
	items, total, err := h.trader.Portfolio(c.Request.Context())
	if err != nil {
		h.log.Errorf("get portfolio failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total_value": total.StringFixed(4)})
}

func (h *Handler) GetTrades(c *gin.Context) {
	trades, err := h.trader.Trades(c.Request.Context())
	if err != nil {
		h.log.Errorf("get trades failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, trades)
}

func (h *Handler) tradeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, portfolio.ErrSymbolNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, portfolio.ErrInsufficientShares):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, portfolio.ErrInvalidQuantity), errors.Is(err, portfolio.ErrInvalidPrice),
		errors.Is(err, portfolio.ErrQuantityOverflow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Errorf("trade failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "trade failed"})
		return
	}
	h.log.Warnf("trade rejected: %v", err)
}
