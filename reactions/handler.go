package reactions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"reaction-counter/logger"
	"reaction-counter/reactions/application"
	"reaction-counter/reactions/domain"
)

const (
	// MsgMissingSlug é a mensagem do 400 quando a query não traz slug.
	MsgMissingSlug = "Blog slug not available"
	// MsgStoreFault é a mensagem do 500; a causa real vai só para o log.
	MsgStoreFault = "Internal server error"
)

// Fetcher é o caso de uso que o handler consome (application.Service).
type Fetcher interface {
	Fetch(ctx context.Context, slug domain.Slug) (application.Result, error)
}

// Handler atende GET ?slug= e responde a contagem em JSON.
type Handler struct {
	svc Fetcher
	log *logger.Logger
}

// NewHandler monta o handler; log nil descarta os logs.
func NewHandler(svc Fetcher, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{svc: svc, log: log.With("component", "reactions")}
}

type countResponse struct {
	Reactions int `json:"reactions"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := domain.Slug(r.URL.Query().Get("slug"))

	res, err := h.svc.Fetch(r.Context(), slug)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrMissingParameter):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: MsgMissingSlug})
		return
	default:
		h.log.Error("fetch reactions failed", "slug", string(slug), "error", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: MsgStoreFault})
		return
	}

	if res.Created {
		h.log.Info("reaction record created", "slug", string(slug), "id", res.Record.ID)
	}
	writeJSON(w, http.StatusOK, countResponse{Reactions: res.Record.Reactions})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
