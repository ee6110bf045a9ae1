// Package api exposes the dashboard over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/api/handler"
	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/api/middleware"
)

// NewRouter wires the page, the REST API and the websocket endpoint. ws may be
// nil, in which case /ws is not served.
func NewRouter(hd handler.HandlerItf, ws http.HandlerFunc, timeout time.Duration, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))

	r.GET("/", hd.Page)
	r.GET("/health", hd.Health)
	if ws != nil {
		r.GET("/ws", gin.WrapF(ws))
	}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Error())
	v1.Use(middleware.Timeout(timeout))
	{
		v1.GET("/stocks", hd.GetStocks)
		v1.POST("/stocks", hd.AddStock)
		v1.GET("/stocks/:symbol", hd.GetStock)
		v1.PATCH("/stocks/:symbol", hd.UpdateStock)
		v1.GET("/stocks/:symbol/analysis", hd.GetAnalysis)
		v1.GET("/summary", hd.GetSummary)
	}
	return r
}
