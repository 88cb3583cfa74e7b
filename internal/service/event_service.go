package service

import (
	"context"

	"github.com/eventboard/reporting-service/internal/models"
	"github.com/eventboard/reporting-service/internal/report"
	"github.com/eventboard/reporting-service/internal/repository"
	"github.com/eventboard/reporting-service/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notifier publishes change notifications after successful writes.
// Publishing is best-effort: a failure is logged and ignored, never
// surfaced to the caller, and never rolls back the write.
type Notifier interface {
	PublishEventCreated(ctx context.Context, event *models.Event) error
	PublishEventDeleted(ctx context.Context, eventID uuid.UUID) error
}

// EventService exposes the two core operations, submit and report, plus
// the surrounding CRUD surface. Each call is a pure function of its
// inputs and the store's current contents; no state is held between
// calls.
type EventService struct {
	repo     repository.EventRepository
	notifier Notifier
	log      zerolog.Logger
}

// NewEventService creates a new event service. The notifier may be nil
// when notifications are disabled.
func NewEventService(repo repository.EventRepository, notifier Notifier, log zerolog.Logger) *EventService {
	return &EventService{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// SubmitEvent validates and persists a raw event submission. Nothing is
// written when validation fails. The notification publish is best-effort
// and never fails the call.
func (s *EventService) SubmitEvent(ctx context.Context, req *models.EventRequest) (*models.Event, error) {
	event, err := validation.ValidateEvent(req)
	if err != nil {
		return nil, err
	}

	event.ID = uuid.New()
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.PublishEventCreated(ctx, event); err != nil {
			s.log.Warn().Err(err).Str("event_id", event.ID.String()).Msg("Failed to publish event created notification")
		}
	}

	return event, nil
}

// GenerateReport fetches a fresh snapshot matching the query and derives
// the report from it. The query is checked before the store is touched.
// Results are never cached; a report is stale as soon as the store
// changes.
func (s *EventService) GenerateReport(ctx context.Context, q models.ReportQuery) (*models.ReportView, error) {
	if err := report.ValidateQuery(q); err != nil {
		return nil, err
	}

	snapshot, err := s.repo.ListByFilter(ctx, repository.Filter{
		Start:    q.Start,
		End:      q.End,
		Location: q.Location,
	})
	if err != nil {
		return nil, err
	}

	result, err := report.Aggregate(snapshot, q)
	if err != nil {
		return nil, err
	}

	return report.Present(result), nil
}

// GetEvent retrieves a single stored event.
func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return s.repo.GetByID(ctx, id)
}

// ListEvents returns a page of stored events with the total count.
func (s *EventService) ListEvents(ctx context.Context, offset, limit int) ([]*models.Event, int, error) {
	events, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// DeleteEvent removes a stored event and notifies subscribers.
func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.PublishEventDeleted(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("event_id", id.String()).Msg("Failed to publish event deleted notification")
		}
	}

	return nil
}
