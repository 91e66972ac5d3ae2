package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/p-n-ai/ibcs-hub/internal/resources"
)

type addResourceRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	list, err := s.resources.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []resources.Resource{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAddResource(w http.ResponseWriter, r *http.Request) {
	var req addResourceRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.resources.Add(r.Context(), resources.Resource{Title: req.Title, URL: req.URL})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	if err := s.resources.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleImportResources replaces the list with an uploaded JSON array or, for
// spreadsheet content types, an XLSX workbook.
func (s *Server) handleImportResources(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var (
		list []resources.Resource
		err  error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), xlsxContentType) {
		list, err = resources.ParseXLSX(body)
	} else {
		list, err = resources.ParseJSON(body)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if err := resources.Import(r.Context(), s.resources, list); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(list)})
}

func (s *Server) handleExportResources(w http.ResponseWriter, r *http.Request) {
	if wantsXLSX(r) {
		writeXLSX(w, "ib-cs-resources.xlsx", func(buf *bytes.Buffer) error {
			return resources.ExportXLSX(r.Context(), s.resources, buf)
		})
		return
	}

	var buf bytes.Buffer
	if err := resources.ExportJSON(r.Context(), s.resources, &buf); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="ib-cs-resources.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
