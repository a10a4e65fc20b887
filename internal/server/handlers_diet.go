package server

import (
	"errors"
	"net/http"

	"github.com/claude/gymlog/internal/extract"
	"github.com/claude/gymlog/internal/models"
)

func (s *Server) handlePreviewDiet(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}

	items, ok := s.parseDiet(w, r, req.Text)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":  items,
		"totals": models.SumMacros(items),
	})
}

// handleLogDiet stores meal entries. Entries given as items are stored as-is;
// otherwise text is estimated first.
func (s *Server) handleLogDiet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		textRequest
		Items []models.DietItem `json:"items"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	items := req.Items
	if len(items) == 0 {
		var ok bool
		if items, ok = s.parseDiet(w, r, req.Text); !ok {
			return
		}
	}
	for i := range items {
		items[i].MealType, _ = models.NormalizeMealType(items[i].MealType)
	}

	n, err := s.db.InsertDietLogs(r.Context(), date, items)
	if err != nil {
		s.log.Error("diet log error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"inserted": n,
		"totals":   models.SumMacros(items),
	})
}

// parseDiet estimates meal entries, writing the error response itself.
func (s *Server) parseDiet(w http.ResponseWriter, r *http.Request, text string) ([]models.DietItem, bool) {
	if text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return nil, false
	}
	items, err := s.ext.ParseDiet(r.Context(), text)
	if errors.Is(err, extract.ErrUnavailable) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "meal estimation needs an LLM API key"})
		return nil, false
	}
	if err != nil {
		s.log.Error("diet parse error", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return nil, false
	}
	if len(items) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "no meal entries recognized"})
		return nil, false
	}
	return items, true
}

func (s *Server) handleRecentDiet(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.RecentDietLogs(r.Context(), queryLimit(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleDailyMacros(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	macros, err := s.db.DailyMacros(r.Context(), date)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, macros)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	dash, err := s.db.GetDashboard(r.Context(), date)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDataStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
