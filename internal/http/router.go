package httpapi

import (
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Router gorilla/mux 路由，外层包 CORS + gzip
type Router struct {
	mux         *mux.Router
	logger      *zap.Logger
	corsOrigins []string
	maxBody     int64
}

func NewRouter(logger *zap.Logger, corsOrigins []string) *Router {
	m := mux.NewRouter()
	r := &Router{mux: m, logger: logger, corsOrigins: corsOrigins}
	m.Use(requestID, r.accessLog, instrument)
	m.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeProblem(w, http.StatusNotFound, Problem{Title: "Not Found", Detail: req.URL.Path})
	})
	return r
}

// SetMaxBodySize 请求体上限，作用于之后注册的实体接口
func (r *Router) SetMaxBodySize(n int64) {
	r.maxBody = n
}

func (r *Router) bodyLimit() int64 {
	if r.maxBody > 0 {
		return r.maxBody
	}
	return defaultMaxBody
}

func (r *Router) Handle(pattern string, h http.HandlerFunc, methods ...string) {
	route := r.mux.HandleFunc(pattern, h)
	if len(methods) > 0 {
		route.Methods(methods...)
	}
}

// HandleHandler 支持 http.Handler 接口（用于 promhttp 等）
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handler 返回对外的 handler（CORS 暴露分页与提示头，gzip 压缩）
func (r *Router) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   r.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link", "X-Total-Count", headerAlert, headerError, headerParams, "Location"},
		AllowCredentials: true,
	})
	return gziphandler.GzipHandler(c.Handler(r))
}

// RegisterOpsRoutes 健康检查与 Prometheus 指标
func (r *Router) RegisterOpsRoutes() {
	health := func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
	}
	r.Handle("/health", health, http.MethodGet)
	r.Handle("/management/health", health, http.MethodGet)
	r.HandleHandler("/metrics", promhttp.Handler())
}
