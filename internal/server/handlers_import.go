package server

import (
	"net/http"

	"github.com/claude/gymlog/internal/ingest/alpha"
)

const maxImportBytes = 10 << 20

// handleAlphaImport logs every session of an Alpha Progression CSV export.
// ?dry_run=true resolves and categorizes without saving.
func (s *Server) handleAlphaImport(w http.ResponseWriter, r *http.Request) {
	dryRun := r.URL.Query().Get("dry_run") == "true"
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)

	res, err := alpha.NewImporter(s.workouts, s.log, dryRun).Import(r.Context(), body)
	if err != nil {
		s.log.Error("alpha import error", "error", err)
		if res == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error(), "result": res})
		return
	}
	writeJSON(w, http.StatusOK, res)
}
