package leaderboardhandlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/infrastructure/render"
)

func (h *LeaderboardHandlers) HandleHTTPPage(w http.ResponseWriter, r *http.Request) {
	res := h.build(w, r, "page")
	if res == nil {
		return
	}

	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, h.title, res.GeneratedAt, res.Variant, res.RoundLabels, res.Standings); err != nil {
		h.renderFailed(w, r, "page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *LeaderboardHandlers) HandleHTTPJSON(w http.ResponseWriter, r *http.Request) {
	res := h.build(w, r, "json")
	if res == nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write leaderboard JSON", slog.Any("error", err))
	}
}

func (h *LeaderboardHandlers) HandleHTTPWorkbook(w http.ResponseWriter, r *http.Request) {
	res := h.build(w, r, "xlsx")
	if res == nil {
		return
	}

	var buf bytes.Buffer
	if err := render.WriteXLSX(&buf, res.Variant, res.RoundLabels, res.Standings); err != nil {
		h.renderFailed(w, r, "xlsx", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
	_, _ = buf.WriteTo(w)
}

func (h *LeaderboardHandlers) HandleHTTPChart(w http.ResponseWriter, r *http.Request) {
	res := h.build(w, r, "chart")
	if res == nil {
		return
	}

	var buf bytes.Buffer
	if err := render.WriteChart(&buf, h.title, res.Standings, h.palette); err != nil {
		h.renderFailed(w, r, "chart", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = buf.WriteTo(w)
}

func (h *LeaderboardHandlers) HandleHTTPHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *LeaderboardHandlers) renderFailed(w http.ResponseWriter, r *http.Request, route string, err error) {
	h.logger.ErrorContext(r.Context(), "Failed to render leaderboard",
		slog.String("route", route),
		slog.Any("error", err),
	)
	http.Error(w, "failed to render leaderboard", http.StatusInternalServerError)
}
