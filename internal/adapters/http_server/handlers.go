// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"parcel_research/internal/adapters/export"
	"parcel_research/internal/app"
	"parcel_research/internal/domain"
)

type Handlers struct {
	Research *app.ResearchService
	Memos    *app.MemoComposer
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type researchResponse struct {
	Parcel domain.ParcelRecord `json:"parcel"`
	Memo   domain.Memo         `json:"memo"`
	Raw    map[string]any      `json:"raw"`
	Mode   domain.Mode         `json:"mode"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/parcels", h.research)
	s.mux.Get("/v1/parcels/export/pdf", h.exportPDF)
	s.mux.Get("/v1/parcels/export/csv", h.exportCSV)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// query pulls and validates the three lookup parameters shared by every
// research route.
func query(r *http.Request) (identifier string, mode domain.Mode, kind domain.InputKind, err error) {
	identifier = strings.TrimSpace(r.URL.Query().Get("identifier"))
	if identifier == "" {
		return "", "", "", errors.New("identifier is required")
	}

	switch r.URL.Query().Get("kind") {
	case "apn":
		kind = domain.InputAPN
	case "address", "":
		kind = domain.InputAddress
	default:
		return "", "", "", errors.New("kind must be address or apn")
	}

	switch r.URL.Query().Get("mode") {
	case "demo":
		mode = domain.ModeDemo
	case "live", "":
		mode = domain.ModeLive
	default:
		return "", "", "", errors.New("mode must be live or demo")
	}
	return identifier, mode, kind, nil
}

// writeRetrievalProblem maps the retrieval taxonomy onto distinct client
// messages: a missing record is not a connectivity failure.
func writeRetrievalProblem(w http.ResponseWriter, err error) {
	var re *domain.RetrievalError
	if !errors.As(err, &re) {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "retrieval failed")
		return
	}
	switch re.Kind {
	case domain.RetrievalNotFound:
		writeProblem(w, http.StatusNotFound, "No Record Found", fmt.Sprintf("no property record found for %q", re.Identifier))
	case domain.RetrievalUnauthorized:
		writeProblem(w, http.StatusBadGateway, "Provider Rejected Credentials", "the property-data provider rejected the configured credentials")
	case domain.RetrievalTimeout:
		writeProblem(w, http.StatusGatewayTimeout, "Provider Timeout", "the property-data provider did not respond in time")
	default:
		writeProblem(w, http.StatusBadGateway, "Provider Unreachable", "the property-data provider could not be reached")
	}
}

func (h *Handlers) research(w http.ResponseWriter, r *http.Request) {
	identifier, mode, kind, err := query(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}

	parcel, raw, err := h.Research.Retrieve(r.Context(), identifier, mode, kind)
	if err != nil {
		writeRetrievalProblem(w, err)
		return
	}
	memo := h.Memos.Compose(r.Context(), parcel)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(researchResponse{Parcel: parcel, Memo: memo, Raw: raw, Mode: mode}); err != nil {
		log.Error().Err(err).Msg("failed to write research body")
	}
}

func (h *Handlers) exportPDF(w http.ResponseWriter, r *http.Request) {
	identifier, mode, kind, err := query(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}

	parcel, _, err := h.Research.Retrieve(r.Context(), identifier, mode, kind)
	if err != nil {
		writeRetrievalProblem(w, err)
		return
	}
	memo := h.Memos.Compose(r.Context(), parcel)

	b, err := export.ToPDF(parcel, &memo)
	if err != nil {
		log.Error().Err(err).Str("apn", parcel.APN).Msg("pdf export failed")
		writeProblem(w, http.StatusInternalServerError, "Export Failed", "PDF rendering failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifactName("property_research_", parcel.APN, ".pdf")))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		log.Error().Err(err).Msg("failed to write PDF body")
	}
}

func (h *Handlers) exportCSV(w http.ResponseWriter, r *http.Request) {
	identifier, mode, kind, err := query(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}

	parcel, _, err := h.Research.Retrieve(r.Context(), identifier, mode, kind)
	if err != nil {
		writeRetrievalProblem(w, err)
		return
	}

	b, err := export.ToCSV(parcel)
	if err != nil {
		log.Error().Err(err).Str("apn", parcel.APN).Msg("csv export failed")
		writeProblem(w, http.StatusInternalServerError, "Export Failed", "CSV rendering failed")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifactName("property_data_", parcel.APN, ".csv")))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		log.Error().Err(err).Msg("failed to write CSV body")
	}
}

func artifactName(prefix, apn, ext string) string {
	return prefix + strings.ReplaceAll(apn, "-", "_") + ext
}
