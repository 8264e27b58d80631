package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"courtside/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionPrefix = "selectionSession:"

// SelectionSession is one user's working set of chosen slots, scoped to a
// single (court group, date) pair. Retargeting the scope resets the set so a
// stale selection can never reference a different date.
type SelectionSession struct {
	ID           string                `json:"id"`
	CourtGroupID string                `json:"courtGroupId"`
	Date         string                `json:"date"` // "YYYY-MM-DD"
	Slots        []models.SelectedSlot `json:"slots"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// SessionStore keeps selection sessions in Redis with a TTL, refreshed on
// every mutation.
type SessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func (st *SessionStore) Create(ctx context.Context, courtGroupID, date string) (*SelectionSession, error) {
	now := time.Now()
	session := &SelectionSession{
		ID:           uuid.New().String(),
		CourtGroupID: courtGroupID,
		Date:         models.NormalizeDate(date),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := st.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (st *SessionStore) Get(ctx context.Context, sessionID string) (*SelectionSession, error) {
	data, err := st.Client.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load selection session: %w", err)
	}
	var session SelectionSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse selection session: %w", err)
	}
	return &session, nil
}

func (st *SessionStore) save(ctx context.Context, session *SelectionSession) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal selection session: %w", err)
	}
	if err := st.Client.Set(ctx, sessionPrefix+session.ID, data, st.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save selection session: %w", err)
	}
	return nil
}

func (st *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return st.Client.Del(ctx, sessionPrefix+sessionID).Err()
}

// Retarget moves a session to a new (group, date) scope. Any scope change
// clears the working set; retargeting to the current scope is a no-op.
func (st *SessionStore) Retarget(ctx context.Context, sessionID, courtGroupID, date string) (*SelectionSession, error) {
	session, err := st.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	date = models.NormalizeDate(date)
	if session.CourtGroupID == courtGroupID && session.Date == date {
		return session, nil
	}
	session.CourtGroupID = courtGroupID
	session.Date = date
	session.Slots = nil
	if err := st.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ToggleSlot flips one grid cell in the session's working set and persists
// the result. A session without a chosen date rejects toggles.
func (st *SessionStore) ToggleSlot(ctx context.Context, sessionID string, courtID int, slot models.TimeSlot) (*SelectionSession, error) {
	session, err := st.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Date == "" {
		return nil, &ValidationError{Code: CodeNoDate, Message: "select a date before choosing slots"}
	}
	session.Slots = Toggle(session.Slots, courtID, slot, session.Date)
	if err := st.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
