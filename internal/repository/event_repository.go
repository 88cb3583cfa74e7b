package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/eventboard/reporting-service/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Filter narrows a listing to events within an inclusive date range
// and/or at a location. Location matching is case-insensitive.
type Filter struct {
	Start    *time.Time
	End      *time.Time
	Location string
}

// EventRepository defines the interface for event data access. It is the
// sole owner of persisted events; everything above it works on snapshots.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, offset, limit int) ([]*models.Event, error)
	ListByFilter(ctx context.Context, filter Filter) ([]*models.Event, error)
	Count(ctx context.Context) (int, error)
}

type eventRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB, log zerolog.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log,
	}
}

// Create inserts a new event. The event must already carry an ID.
func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, title, description, location, location_norm, occurs_at, attendees, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	attendees, err := json.Marshal(event.Attendees)
	if err != nil {
		return storeErr("encode attendees", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		event.ID.String(),
		event.Title,
		event.Description,
		event.Location,
		normalizeLocation(event.Location),
		event.OccursAt.UTC(),
		string(attendees),
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error().Err(err).Str("event_id", event.ID.String()).Msg("Failed to create event")
		return storeErr("insert event", err)
	}

	return nil
}

// GetByID retrieves an event by its ID
func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	query := `
		SELECT id, title, description, location, occurs_at, attendees, created_at, updated_at
		FROM events
		WHERE id = ?
	`

	event, err := r.scanEvent(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		r.log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to get event by ID")
		return nil, storeErr("get event", err)
	}

	return event, nil
}

// Delete removes an event from the store
func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		r.log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to delete event")
		return storeErr("delete event", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to get rows affected for event delete")
		return storeErr("delete event", err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// List returns a page of events ordered by occurrence time then ID, so
// repeated listings of an unchanged store see the same order.
func (r *eventRepository) List(ctx context.Context, offset, limit int) ([]*models.Event, error) {
	query := `
		SELECT id, title, description, location, occurs_at, attendees, created_at, updated_at
		FROM events
		ORDER BY occurs_at, id
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list events")
		return nil, storeErr("list events", err)
	}
	defer rows.Close()

	return r.collectEvents(rows)
}

// ListByFilter returns the snapshot matching the filter, filtered
// server-side and ordered by occurrence time then ID.
func (r *eventRepository) ListByFilter(ctx context.Context, filter Filter) ([]*models.Event, error) {
	query := `
		SELECT id, title, description, location, occurs_at, attendees, created_at, updated_at
		FROM events
	`

	var conditions []string
	var args []interface{}

	if filter.Start != nil {
		conditions = append(conditions, "occurs_at >= ?")
		args = append(args, filter.Start.UTC())
	}
	if filter.End != nil {
		conditions = append(conditions, "occurs_at <= ?")
		args = append(args, filter.End.UTC())
	}
	if loc := normalizeLocation(filter.Location); loc != "" {
		conditions = append(conditions, "location_norm = ?")
		args = append(args, loc)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY occurs_at, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list events by filter")
		return nil, storeErr("list events by filter", err)
	}
	defer rows.Close()

	return r.collectEvents(rows)
}

// Count returns the total number of stored events
func (r *eventRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to count events")
		return 0, storeErr("count events", err)
	}
	return count, nil
}

// normalizeLocation folds the location the same way the aggregation
// layer does, in Go rather than SQL, so Unicode locations match.
func normalizeLocation(loc string) string {
	return strings.ToLower(strings.TrimSpace(loc))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *eventRepository) scanEvent(row rowScanner) (*models.Event, error) {
	var event models.Event
	var id, attendees string
	var description, location sql.NullString

	if err := row.Scan(
		&id,
		&event.Title,
		&description,
		&location,
		&event.OccursAt,
		&attendees,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	event.ID = parsed
	event.Description = description.String
	event.Location = location.String
	event.OccursAt = event.OccursAt.UTC()

	if err := json.Unmarshal([]byte(attendees), &event.Attendees); err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *eventRepository) collectEvents(rows *sql.Rows) ([]*models.Event, error) {
	var events []*models.Event
	for rows.Next() {
		event, err := r.scanEvent(rows)
		if err != nil {
			r.log.Error().Err(err).Msg("Failed to scan event")
			return nil, storeErr("scan event", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate events", err)
	}
	return events, nil
}
