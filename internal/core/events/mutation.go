package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/silcast/crane-admin/internal"
	"github.com/silcast/crane-admin/pkg/logger"
)

const EventTypeMutation = "entity.mutated"

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeRejected  Outcome = "rejected"
	OutcomeFailed    Outcome = "failed"
)

// MutationEvent records one attempt to change an entity.
type MutationEvent struct {
	BaseEvent
	Entity   string
	EntityID int64
	Action   Action
	ActorID  int64
	Outcome  Outcome
	Err      error
}

// NewMutationEvent derives the actor from ctx and the outcome from err:
// validation/not-found errors are rejections, anything else a failure.
func NewMutationEvent(ctx context.Context, entity string, entityID int64, action Action, err error) MutationEvent {
	outcome := OutcomeSucceeded
	if err != nil {
		outcome = OutcomeFailed
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type != internal.ErrorTypeInternal {
			outcome = OutcomeRejected
		}
	}
	actorID := internal.ActorIDFromContext(ctx)

	return MutationEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeMutation,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"entity":    entity,
				"entity_id": entityID,
				"action":    string(action),
				"actor_id":  actorID,
				"outcome":   string(outcome),
			},
		},
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		ActorID:  actorID,
		Outcome:  outcome,
		Err:      err,
	}
}

// AuditLogHandler writes one structured line per mutation with the request logger,
// or fallback when the context carries none.
func AuditLogHandler(fallback *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		m, ok := event.(MutationEvent)
		if !ok {
			return nil
		}
		lg, ok := logger.FromContext(ctx)
		if !ok {
			lg = fallback
		}
		if lg == nil {
			lg = logger.LoggerWrapper()
		}
		attrs := []any{
			"event_id", m.ID,
			"entity", m.Entity,
			"entity_id", m.EntityID,
			"action", m.Action,
			"actor_id", m.ActorID,
			"outcome", m.Outcome,
		}
		switch m.Outcome {
		case OutcomeFailed:
			lg.ErrorContext(ctx, "mutation failed", append(attrs, "error", m.Err)...)
		case OutcomeRejected:
			lg.WarnContext(ctx, "mutation rejected", append(attrs, "error", m.Err)...)
		default:
			lg.InfoContext(ctx, "mutation recorded", attrs...)
		}
		return nil
	}
}

// Record publishes a mutation event, logging instead of failing the caller when delivery errors.
func Record(ctx context.Context, pub Publisher, entity string, entityID int64, action Action, err error) {
	if pub == nil {
		return
	}
	if pubErr := pub.Publish(ctx, NewMutationEvent(ctx, entity, entityID, action, err)); pubErr != nil {
		logger.From(ctx).Error("failed to record mutation", "entity", entity, "entity_id", entityID, "error", pubErr)
	}
}

// NewAuditBus returns a bus with the audit logger subscribed.
func NewAuditBus(lg *slog.Logger) *EventBus {
	bus := NewEventBus(lg)
	bus.Subscribe(EventTypeMutation, AuditLogHandler(lg))
	return bus
}
