package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON body of every error response.
type Err struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status_text"`
	ErrorText  string `json:"error_text,omitempty"`
}

func (e *Err) Error() string {
	return e.ErrorText
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error(e.StatusText,
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, err error) *Err {
	e := &Err{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
	}
	if err != nil {
		e.ErrorText = err.Error()
	}
	return e
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err)
}

func ErrNotFound(resource, key string, value any) *Err {
	return newErr(http.StatusNotFound, fmt.Errorf("%s with %s '%v' does not exist", resource, key, value))
}

func ErrUnprocessable(err error) *Err {
	return newErr(http.StatusUnprocessableEntity, err)
}

// ErrInternalServerError hides the cause from the client; it is only logged.
func ErrInternalServerError(err error) *Err {
	e := newErr(http.StatusInternalServerError, err)
	e.ErrorText = "internal server error"
	return e
}

// ErrBadGateway reports a failure of an upstream API.
func ErrBadGateway(err error) *Err {
	return newErr(http.StatusBadGateway, err)
}
