// internal/httpapi/handlers.go
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"primertail/internal/output"
	"primertail/pkg/api"
)

func (s *Server) handleDesign(w http.ResponseWriter, r *http.Request) {
	var req api.DesignRequestV1
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.svc.Design(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d.API())
}

func (s *Server) handleTail(w http.ResponseWriter, r *http.Request) {
	var req api.TailRequestV1
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	resp, err := s.svc.Tail(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTm(w http.ResponseWriter, r *http.Request) {
	var req api.TmRequestV1
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := s.svc.Tm(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListPrimers(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context(), r.URL.Query().Get("contains"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]api.PrimerV1, 0, len(list))
	for _, e := range list {
		out = append(out, output.ToAPIPrimer(e.Primer, "", nil))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPrimer(w http.ResponseWriter, r *http.Request) {
	e, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output.ToAPIPrimer(e.Primer, "", nil))
}
