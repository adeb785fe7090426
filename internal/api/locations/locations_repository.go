package locations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-geomapper/internal/types"
)

var (
	_ Repository = (*RepositoryImpl)(nil)
	_ Repository = NoopRepository{}
)

// Repository stores the audit trail of location requests. Result points are never stored.
type Repository interface {
	SaveInteraction(ctx context.Context, interaction types.LocationInteraction) (uuid.UUID, error)
	Ping(ctx context.Context) error
}

// DBTX is the subset of *pgxpool.Pool the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

type RepositoryImpl struct {
	logger *slog.Logger
	db     DBTX
}

func NewRepositoryImpl(db DBTX, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		db:     db,
	}
}

func (r *RepositoryImpl) SaveInteraction(ctx context.Context, interaction types.LocationInteraction) (uuid.UUID, error) {
	ctx, span := otel.Tracer("LocationRepo").Start(ctx, "SaveInteraction", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "location_interactions"),
		attribute.String("model.used", interaction.ModelUsed),
		attribute.String("outcome", string(interaction.Outcome)),
		attribute.Int("latency.ms", interaction.LatencyMs),
	))
	defer span.End()

	if interaction.ID == uuid.Nil {
		interaction.ID = uuid.New()
	}

	query := `
        INSERT INTO location_interactions (
            id, session_id, prompt, prompt_hash, is_route, model_used, outcome, point_count, latency_ms, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `

	tag, err := r.db.Exec(ctx, query,
		interaction.ID,
		interaction.SessionID,
		interaction.Prompt,
		interaction.PromptHash,
		interaction.IsRoute,
		interaction.ModelUsed,
		string(interaction.Outcome),
		interaction.PointCount,
		interaction.LatencyMs,
		interaction.CreatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to insert interaction")
		return uuid.Nil, fmt.Errorf("failed to insert interaction: %w", err)
	}
	if tag.RowsAffected() != 1 {
		err = fmt.Errorf("expected 1 row inserted, got %d", tag.RowsAffected())
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unexpected insert result")
		return uuid.Nil, err
	}

	span.SetAttributes(attribute.String("interaction.id", interaction.ID.String()))
	span.SetStatus(codes.Ok, "Interaction saved successfully")
	return interaction.ID, nil
}

func (r *RepositoryImpl) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("audit database unreachable: %w", err)
	}
	return nil
}

// NoopRepository is used when the audit database is disabled.
type NoopRepository struct{}

func (NoopRepository) SaveInteraction(context.Context, types.LocationInteraction) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (NoopRepository) Ping(context.Context) error { return nil }
