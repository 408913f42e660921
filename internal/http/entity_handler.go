package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
	"github.com/tuannt39-study/jhipster-sample/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const defaultMaxBody = 1 << 20

// EntityHandler /api/<resource> 的 REST 接口
type EntityHandler[T domain.Entity[T]] struct {
	svc     *service.EntityService[T]
	logger  *zap.Logger
	maxBody int64
}

func NewEntityHandler[T domain.Entity[T]](svc *service.EntityService[T], logger *zap.Logger) *EntityHandler[T] {
	return &EntityHandler[T]{svc: svc, logger: logger.With(zap.String("resource", svc.Resource())), maxBody: defaultMaxBody}
}

// Register 注册路由（count/export 先于 {id}）
func (h *EntityHandler[T]) Register(r *Router) {
	h.maxBody = r.bodyLimit()
	base := "/api/" + h.svc.Resource()
	r.Handle(base, h.list, http.MethodGet)
	r.Handle(base, h.create, http.MethodPost)
	r.Handle(base+"/count", h.count, http.MethodGet)
	r.Handle(base+"/export", h.export, http.MethodGet)
	r.Handle(base+"/{id:[0-9]+}", h.get, http.MethodGet)
	r.Handle(base+"/{id:[0-9]+}", h.update, http.MethodPut)
	r.Handle(base+"/{id:[0-9]+}", h.partialUpdate, http.MethodPatch)
	r.Handle(base+"/{id:[0-9]+}", h.delete, http.MethodDelete)
	if h.svc.Searchable() {
		r.Handle("/api/_search/"+h.svc.Resource(), h.search, http.MethodGet)
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

func (h *EntityHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r.URL.Query())
	items, total, err := h.svc.List(r.Context(), page)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	if link := paginationLink(r.URL, page, total); link != "" {
		w.Header().Set("Link", link)
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EntityHandler[T]) count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Count(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *EntityHandler[T]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusNotFound, Problem{})
		return
	}
	v, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *EntityHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	var v T
	if err := readBodyJSON(r, h.maxBody, &v); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	created, err := h.svc.Create(r.Context(), v)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	id := strconv.FormatInt(created.EntityID(), 10)
	w.Header().Set("Location", "/api/"+h.svc.Resource()+"/"+id)
	setAlert(w, h.svc.Entity(), "created", id)
	writeJSON(w, http.StatusCreated, created)
}

func (h *EntityHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusNotFound, Problem{})
		return
	}
	var v T
	if err := readBodyJSON(r, h.maxBody, &v); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	updated, err := h.svc.Update(r.Context(), id, v)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	setAlert(w, h.svc.Entity(), "updated", strconv.FormatInt(id, 10))
	writeJSON(w, http.StatusOK, updated)
}

func (h *EntityHandler[T]) partialUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusNotFound, Problem{})
		return
	}
	body, err := readBody(r, h.maxBody)
	if err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	updated, err := h.svc.PartialUpdate(r.Context(), id, body)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	setAlert(w, h.svc.Entity(), "updated", strconv.FormatInt(id, 10))
	writeJSON(w, http.StatusOK, updated)
}

func (h *EntityHandler[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusNotFound, Problem{})
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	setAlert(w, h.svc.Entity(), "deleted", strconv.FormatInt(id, 10))
	w.WriteHeader(http.StatusNoContent)
}

func (h *EntityHandler[T]) search(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(len(items)))
	writeJSON(w, http.StatusOK, items)
}

func (h *EntityHandler[T]) export(w http.ResponseWriter, r *http.Request) {
	items, _, err := h.svc.List(r.Context(), parsePage(r.URL.Query()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	rows := make([]any, len(items))
	for i := range items {
		rows[i] = items[i]
	}
	writeExcel(w, h.logger, h.svc.Resource(), rows)
}
