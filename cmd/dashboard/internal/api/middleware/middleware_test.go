package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Dewansh29/StockPulse/cmd/dashboard/internal/api/constant"
)

func TestMiddlewareError(t *testing.T) {
	testCases := []struct {
		name           string
		handle         func(c *gin.Context)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "no error",
			handle:         func(c *gin.Context) {},
			expectedStatus: http.StatusOK,
			expectedBody:   ``,
		},
		{
			name: "validation errors - empty",
			handle: func(c *gin.Context) {
				c.Error(validator.ValidationErrors{})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"error":[],"data":null}`,
		},
		{
			name: "validation errors - required field",
			handle: func(c *gin.Context) {
				type request struct {
					Symbol string `form:"symbol" binding:"required"`
				}

				var r request
				if err := c.ShouldBindQuery(&r); err != nil {
					c.Error(err)
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody: `{"success":false,` +
				`"error":[{"field":"Symbol",` +
				`"message":"` +
				`Key: 'request.Symbol' Error:Field validation for 'Symbol' failed on the 'required' tag` +
				`"}],` +
				`"data":null}`,
		},
		{
			name: "custom error",
			handle: func(c *gin.Context) {
				c.Error(constant.ErrStockNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"success":false,"error":"stock not found","data":null}`,
		},
		{
			name: "bind error",
			handle: func(c *gin.Context) {
				c.Error(errors.New("unexpected EOF")).SetType(gin.ErrorTypeBind)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"error":"unexpected EOF","data":null}`,
		},
		{
			name: "unknown error",
			handle: func(c *gin.Context) {
				c.Error(errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"error":"boom","data":null}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(Error())
			r.GET("/test", tc.handle)

			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestMiddlewareTimeout(t *testing.T) {
	testCases := []struct {
		name           string
		handle         func(c *gin.Context)
		expectedStatus int
		expectedBody   string
		expectedHeader string
	}{
		{
			name: "slow handler writing late",
			handle: func(c *gin.Context) {
				time.Sleep(60 * time.Millisecond)
				c.JSON(http.StatusOK, gin.H{"late": true})
			},
			expectedStatus: http.StatusGatewayTimeout,
			expectedBody:   `{"success":false,"error":"request timed out","data":null}`,
		},
		{
			name: "slow handler attaching an error",
			handle: func(c *gin.Context) {
				<-c.Request.Context().Done()
				c.Error(constant.ErrStockNotFound)
			},
			expectedStatus: http.StatusGatewayTimeout,
			expectedBody:   `{"success":false,"error":"request timed out","data":null}`,
		},
		{
			name: "fast handler",
			handle: func(c *gin.Context) {
				c.Header("X-Symbol", "AAPL")
				c.JSON(http.StatusCreated, gin.H{"symbol": "AAPL"})
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"symbol":"AAPL"}`,
			expectedHeader: "AAPL",
		},
		{
			name: "fast handler attaching an error",
			handle: func(c *gin.Context) {
				c.Error(constant.ErrStockNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"success":false,"error":"stock not found","data":null}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(Error())
			r.Use(Timeout(20 * time.Millisecond))
			r.GET("/test", tc.handle)

			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectedBody, rr.Body.String())
			assert.Equal(t, tc.expectedHeader, rr.Header().Get("X-Symbol"))
		})
	}
}

func TestMiddlewareLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(zap.NewNop()))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}
