package httpapi

import (
	"errors"
	"net/http"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"

	"go.uber.org/zap"
)

// 与前端 alert 拦截器约定的响应头
const (
	appName      = "hrApp"
	headerAlert  = "X-" + appName + "-alert"
	headerError  = "X-" + appName + "-error"
	headerParams = "X-" + appName + "-params"
)

// Problem application/problem+json 错误体，字段与前端错误拦截器一致
// - message: "error.<errorKey>"，前端据此取翻译
type Problem struct {
	Type       string `json:"type,omitempty"`
	Title      string `json:"title"`
	Status     int    `json:"status"`
	Detail     string `json:"detail,omitempty"`
	EntityName string `json:"entityName,omitempty"`
	ErrorKey   string `json:"errorKey,omitempty"`
	Message    string `json:"message,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, p Problem) {
	p.Status = status
	if p.Title == "" {
		p.Title = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = encodeJSON(w, p)
}

// writeError 把服务层错误映射为 HTTP 状态
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var bre *domain.BadRequestError
	switch {
	case errors.As(err, &bre):
		w.Header().Set(headerError, "error."+bre.ErrorKey)
		w.Header().Set(headerParams, bre.EntityName)
		writeProblem(w, http.StatusBadRequest, Problem{
			Type:       "https://www.jhipster.tech/problem/problem-with-message",
			Title:      bre.Message,
			EntityName: bre.EntityName,
			ErrorKey:   bre.ErrorKey,
			Message:    "error." + bre.ErrorKey,
		})
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, Problem{
			Title:   "Method argument not valid",
			Detail:  err.Error(),
			Message: "error.validation",
		})
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, Problem{Detail: err.Error(), Message: "error.http.404"})
	default:
		logger.Error("request failed", zap.Error(err))
		writeProblem(w, http.StatusInternalServerError, Problem{Message: "error.http.500"})
	}
}

func setAlert(w http.ResponseWriter, entity, action, param string) {
	w.Header().Set(headerAlert, appName+"."+entity+"."+action)
	w.Header().Set(headerParams, param)
}
