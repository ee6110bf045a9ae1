package constant

import "net/http"

type CustomError struct {
	StatusCode int
	Message    string
}

func NewCError(StatusCode int, Message string) CustomError {
	return CustomError{StatusCode: StatusCode, Message: Message}
}

func (err CustomError) Error() string {
	return err.Message
}

var (
	ErrEmptySymbol = NewCError(http.StatusBadRequest,
		"please provide symbol")
	ErrEmptyPatch = NewCError(http.StatusBadRequest,
		"please provide at least one field to update")
	ErrStockNotFound = NewCError(http.StatusNotFound,
		"stock not found")
	ErrNoAnalysis = NewCError(http.StatusNotFound,
		"no analysis available for symbol")
)
