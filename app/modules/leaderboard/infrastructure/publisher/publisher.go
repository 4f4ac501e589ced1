package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	leaderboardservice "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	nc "github.com/nats-io/nats.go"
)

// StandingsComputedPayloadV1 is published once per successful build.
type StandingsComputedPayloadV1 struct {
	RunID       string                       `json:"run_id"`
	Variant     string                       `json:"variant"`
	GeneratedAt time.Time                    `json:"generated_at"`
	Tournaments []string                     `json:"tournaments"`
	RoundLabels []string                     `json:"round_labels,omitempty"`
	Standings   []leaderboarddomain.Standing `json:"standings"`
}

// StandingsPublisher announces computed standings to downstream consumers.
type StandingsPublisher struct {
	publisher message.Publisher
	subject   string
	logger    *slog.Logger
}

// New wraps an existing watermill publisher.
func New(pub message.Publisher, subject string, logger *slog.Logger) *StandingsPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &StandingsPublisher{publisher: pub, subject: subject, logger: logger}
}

// NewNATSPublisher creates a watermill publisher on core NATS.
func NewNATSPublisher(natsURL string, logger *slog.Logger) (message.Publisher, error) {
	pub, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:       natsURL,
			Marshaler: &nats.NATSMarshaler{},
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
				nc.Timeout(30 * time.Second),
				nc.ReconnectWait(1 * time.Second),
			},
			JetStream: nats.JetStreamConfig{Disabled: true},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}
	return pub, nil
}

// NewPayload builds the event body for a build result.
func NewPayload(res *leaderboardservice.Result) StandingsComputedPayloadV1 {
	tournaments := make([]string, len(res.Rounds))
	for i, r := range res.Rounds {
		tournaments[i] = r.TournamentID
	}
	return StandingsComputedPayloadV1{
		RunID:       res.RunID.String(),
		Variant:     string(res.Variant),
		GeneratedAt: res.GeneratedAt,
		Tournaments: tournaments,
		RoundLabels: res.RoundLabels,
		Standings:   res.Standings,
	}
}

// Publish sends the standings of res on the configured subject.
func (p *StandingsPublisher) Publish(ctx context.Context, res *leaderboardservice.Result) error {
	payload, err := json.Marshal(NewPayload(res))
	if err != nil {
		return fmt.Errorf("failed to marshal standings: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("subject", p.subject)
	msg.Metadata.Set("run_id", res.RunID.String())
	middleware.SetCorrelationID(res.RunID.String(), msg)

	if err := p.publisher.Publish(p.subject, msg); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish standings",
			slog.String("subject", p.subject),
			slog.Any("error", err),
		)
		return fmt.Errorf("failed to publish standings: %w", err)
	}

	p.logger.InfoContext(ctx, "Standings published",
		slog.String("subject", p.subject),
		slog.String("message_id", msg.UUID),
		slog.Int("teams", len(res.Standings)),
	)
	return nil
}

// Close releases the underlying publisher.
func (p *StandingsPublisher) Close() error {
	return p.publisher.Close()
}
