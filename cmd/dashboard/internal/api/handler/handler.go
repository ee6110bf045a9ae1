package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/api/constant"
	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/api/dto"
	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/app"
	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/render"
	"github.com/Dewansh29/StockPulse/pkg/analysis"
	"github.com/Dewansh29/StockPulse/pkg/models"
)

type HandlerItf interface {
	Page(*gin.Context)
	Health(*gin.Context)
	GetStocks(*gin.Context)
	GetStock(*gin.Context)
	AddStock(*gin.Context)
	UpdateStock(*gin.Context)
	GetSummary(*gin.Context)
	GetAnalysis(*gin.Context)
}

type Handler struct {
	app         *app.App
	renderer    *render.Renderer
	suggestions []string
	logger      *zap.Logger
}

func NewHandler(a *app.App, r *render.Renderer, suggestions []string, logger *zap.Logger) *Handler {
	return &Handler{app: a, renderer: r, suggestions: suggestions, logger: logger}
}

func (hd *Handler) Page(ctx *gin.Context) {
	search := hd.app.Search()
	data := render.PageData{
		Title:       "StockPulse",
		Suggestions: hd.suggestions,
		Search:      render.SearchBox{Value: search.Value, Active: search.Active},
		Stocks:      hd.app.GetStocks(),
		Summary:     hd.app.Summary(),
		SocketPath:  "/ws",
	}

	ctx.Status(http.StatusOK)
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	if err := hd.renderer.Page(ctx.Writer, data); err != nil {
		hd.logger.Error("Failed to render page", zap.Error(err))
	}
}

func (hd *Handler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.OK(gin.H{"status": "ok"}))
}

// GetStocks lists every stock, or only those matching ?q=.
func (hd *Handler) GetStocks(ctx *gin.Context) {
	var stocks []models.StockRecord
	if q, ok := ctx.GetQuery("q"); ok {
		stocks = hd.app.Filter(q)
	} else {
		stocks = hd.app.GetStocks()
	}
	if stocks == nil {
		stocks = []models.StockRecord{}
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.GetStocksRes{
		Stocks:  stocks,
		Summary: hd.app.Summary(),
	}))
}

func (hd *Handler) GetStock(ctx *gin.Context) {
	symbol, ok := symbolParam(ctx)
	if !ok {
		return
	}

	rec, found := hd.app.Find(symbol)
	if !found {
		ctx.Error(constant.ErrStockNotFound)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(rec))
}

func (hd *Handler) AddStock(ctx *gin.Context) {
	var req dto.AddStockReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	req.Symbol = normalize(req.Symbol)
	if req.Symbol == "" {
		ctx.Error(constant.ErrEmptySymbol)
		return
	}

	rec := req.Record()
	hd.app.AddStock(rec)
	ctx.JSON(http.StatusCreated, dto.OK(rec))
}

// UpdateStock merges the body into the first stock with the given symbol.
func (hd *Handler) UpdateStock(ctx *gin.Context) {
	symbol, ok := symbolParam(ctx)
	if !ok {
		return
	}

	var patch models.StockPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	if patch.IsEmpty() {
		ctx.Error(constant.ErrEmptyPatch)
		return
	}

	if !hd.app.UpdateStock(symbol, patch) {
		ctx.Error(constant.ErrStockNotFound)
		return
	}

	rec, _ := hd.app.Find(symbol)
	ctx.JSON(http.StatusOK, dto.OK(rec))
}

func (hd *Handler) GetSummary(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.OK(hd.app.Summary()))
}

func (hd *Handler) GetAnalysis(ctx *gin.Context) {
	symbol, ok := symbolParam(ctx)
	if !ok {
		return
	}

	out, err := hd.app.Analyze(symbol)
	switch {
	case errors.Is(err, app.ErrAnalysisUnavailable),
		errors.Is(err, analysis.ErrTickerNotFound),
		errors.Is(err, analysis.ErrInsufficientHistory):
		hd.logger.Debug("No analysis", zap.String("symbol", symbol), zap.Error(err))
		ctx.Error(constant.ErrNoAnalysis)
		return
	case err != nil:
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(out))
}

func symbolParam(ctx *gin.Context) (string, bool) {
	symbol := normalize(ctx.Param("symbol"))
	if symbol == "" {
		ctx.Error(constant.ErrEmptySymbol)
		return "", false
	}
	return symbol, true
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
