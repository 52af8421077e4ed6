package serializer

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var log = zap.NewNop()

// SetLogger wires the package logger; internal failures are logged even when
// release mode strips them from responses.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// Response is the envelope every endpoint returns.
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// Err builds an error response. Outside release mode the underlying error is
// included for debugging; in release mode callers only see msg.
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr is an opaque internal failure.
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	if err != nil {
		log.Error("internal error", zap.String("msg", msg), zap.Error(err))
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// ParamErr is a validation failure; msg carries field-level detail.
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AuthErr is an authentication failure.
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

// NotFoundErr distinguishes missing (or not owned) records from internal
// failures.
func NotFoundErr(msg string) Response {
	if msg == "" {
		msg = "not found"
	}
	return Err(http.StatusNotFound, msg, nil)
}

// ConflictErr reports a stale-revision write.
func ConflictErr(msg string, err error) Response {
	if msg == "" {
		msg = "conflicting update"
	}
	return Err(http.StatusConflict, msg, err)
}
