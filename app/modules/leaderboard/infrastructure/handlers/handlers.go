package leaderboardhandlers

import (
	"log/slog"
	"net/http"

	leaderboardservice "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/infrastructure/render"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardHandlers implements the Handlers interface.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	title   string
	palette render.ChartPalette
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewLeaderboardHandlers creates a new LeaderboardHandlers instance.
func NewLeaderboardHandlers(
	service leaderboardservice.Service,
	title string,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &LeaderboardHandlers{
		service: service,
		title:   title,
		palette: render.DefaultPalette,
		logger:  logger,
		tracer:  tracer,
	}
}

// build computes a fresh leaderboard for the request. On failure it answers
// 502 and returns nil; nothing of a partial run reaches the client.
func (h *LeaderboardHandlers) build(w http.ResponseWriter, r *http.Request, route string) *leaderboardservice.Result {
	ctx, span := h.tracer.Start(r.Context(), "LeaderboardHandlers."+route,
		trace.WithAttributes(attribute.String("variant", string(h.service.Variant()))),
	)
	defer span.End()

	res, err := h.service.BuildLeaderboard(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.ErrorContext(ctx, "Leaderboard build failed",
			slog.String("route", route),
			slog.Any("error", err),
		)
		http.Error(w, "failed to build leaderboard", http.StatusBadGateway)
		return nil
	}
	return res
}
