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

// AuthorityHandler /api/authorities（无 PUT/PATCH，路由层返回 405）
type AuthorityHandler struct {
	svc     *service.AuthorityService
	logger  *zap.Logger
	maxBody int64
}

func NewAuthorityHandler(svc *service.AuthorityService, logger *zap.Logger) *AuthorityHandler {
	return &AuthorityHandler{svc: svc, logger: logger.With(zap.String("resource", "authorities")), maxBody: defaultMaxBody}
}

func (h *AuthorityHandler) Register(r *Router) {
	h.maxBody = r.bodyLimit()
	r.Handle("/api/authorities", h.list, http.MethodGet)
	r.Handle("/api/authorities", h.create, http.MethodPost)
	r.Handle("/api/authorities/{name}", h.get, http.MethodGet)
	r.Handle("/api/authorities/{name}", h.delete, http.MethodDelete)
}

func (h *AuthorityHandler) list(w http.ResponseWriter, r *http.Request) {
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

func (h *AuthorityHandler) get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Get(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AuthorityHandler) create(w http.ResponseWriter, r *http.Request) {
	var a domain.Authority
	if err := readBodyJSON(r, h.maxBody, &a); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	created, err := h.svc.Create(r.Context(), a)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.Header().Set("Location", "/api/authorities/"+created.Name)
	setAlert(w, "authority", "created", created.Name)
	writeJSON(w, http.StatusCreated, created)
}

func (h *AuthorityHandler) delete(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := h.svc.Delete(r.Context(), name); err != nil {
		writeError(w, h.logger, err)
		return
	}
	setAlert(w, "authority", "deleted", name)
	w.WriteHeader(http.StatusNoContent)
}
