package reading

import (
	"encoding/json"
	"log"
	"math"
	"sync"
	"time"

	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

// SnapshotKey is the settings key under which the active session is mirrored.
const SnapshotKey = entities.SettingKeyActiveSession

// focusPenaltyPerMinute is how many focus points each full paused minute costs.
const focusPenaltyPerMinute = 8

// SnapshotStore is the persistence port the tracker mirrors the active
// session through, so a crashed process can pick the session back up.
type SnapshotStore interface {
	Get(key string) (string, error) // empty string when the key is absent
	Set(key, value string) error
	Clear(key string) error
}

// Session is the single in-memory reading session, running or paused.
type Session struct {
	BookID        string     `json:"bookId"`
	StartedAt     time.Time  `json:"startedAt"`
	LastResumedAt time.Time  `json:"lastResumedAt"`
	PausedAt      *time.Time `json:"pausedAt,omitempty"`
	TotalPausedMs int64      `json:"totalPausedMs"`
}

// Paused reports whether the session is currently paused.
func (s *Session) Paused() bool {
	return s != nil && s.PausedAt != nil
}

// Tracker measures active reading time for at most one session at a time.
// All operations are total: acting on a missing session is a no-op, never an
// error. The zero tracker is not usable; construct with NewTracker.
type Tracker struct {
	mu     sync.Mutex
	active *Session
	store  SnapshotStore
	now    func() time.Time
}

// NewTracker creates a tracker, restoring a previously snapshotted session
// if one is present. A corrupt snapshot degrades to no active session.
func NewTracker(store SnapshotStore) *Tracker {
	t := &Tracker{
		store: store,
		now:   time.Now,
	}
	t.restore()
	return t
}

func (t *Tracker) restore() {
	if t.store == nil {
		return
	}
	raw, err := t.store.Get(SnapshotKey)
	if err != nil || raw == "" {
		return
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil || s.BookID == "" {
		log.Printf("Discarding unreadable session snapshot")
		if err := t.store.Clear(SnapshotKey); err != nil {
			log.Printf("Failed to clear session snapshot: %v", err)
		}
		return
	}
	t.active = &s
}

func (t *Tracker) snapshot() {
	if t.store == nil {
		return
	}
	if t.active == nil {
		if err := t.store.Clear(SnapshotKey); err != nil {
			log.Printf("Failed to clear session snapshot: %v", err)
		}
		return
	}
	raw, err := json.Marshal(t.active)
	if err != nil {
		log.Printf("Failed to encode session snapshot: %v", err)
		return
	}
	if err := t.store.Set(SnapshotKey, string(raw)); err != nil {
		log.Printf("Failed to save session snapshot: %v", err)
	}
}

// Active returns a copy of the current session, or nil when idle.
func (t *Tracker) Active() *Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return nil
	}
	copied := *t.active
	return &copied
}

// Start begins a session for the given book. Starting while a session is
// already active preserves the existing session and returns false.
func (t *Tracker) Start(bookID string) bool {
	if bookID == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		return false
	}

	now := t.now()
	t.active = &Session{
		BookID:        bookID,
		StartedAt:     now,
		LastResumedAt: now,
		TotalPausedMs: 0,
	}
	t.snapshot()
	return true
}

// Pause stops the active-time clock. No-op when idle or already paused.
func (t *Tracker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil || t.active.PausedAt != nil {
		return
	}
	now := t.now()
	t.active.PausedAt = &now
	t.snapshot()
}

// Resume restarts the active-time clock, folding the pause into the running
// total. No-op when idle or not paused.
func (t *Tracker) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil || t.active.PausedAt == nil {
		return
	}
	now := t.now()
	t.active.TotalPausedMs += now.Sub(*t.active.PausedAt).Milliseconds()
	t.active.PausedAt = nil
	t.active.LastResumedAt = now
	t.snapshot()
}

// SetVisibility is the hook for the client's visibilitychange events:
// hidden auto-pauses, visible auto-resumes.
func (t *Tracker) SetVisibility(hidden bool) {
	if hidden {
		t.Pause()
	} else {
		t.Resume()
	}
}

// End finishes the session and folds it into an immutable record. A session
// ended while paused counts the final pause interval as paused time.
// Returns nil when idle.
func (t *Tracker) End(pages int) *entities.SessionRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return nil
	}

	s := t.active
	endedAt := t.now()

	pausedMs := s.TotalPausedMs
	if s.PausedAt != nil {
		pausedMs += endedAt.Sub(*s.PausedAt).Milliseconds()
	}

	activeMs := endedAt.Sub(s.StartedAt).Milliseconds() - pausedMs
	if activeMs < 0 {
		activeMs = 0
	}

	record := &entities.SessionRecord{
		BookID:          s.BookID,
		DurationMinutes: roundMinutes(activeMs),
		Pages:           pages,
		FocusScore:      focusScore(pausedMs),
		PausedMinutes:   roundMinutes(pausedMs),
		Date:            endedAt,
	}

	t.active = nil
	t.snapshot()
	return record
}

func roundMinutes(ms int64) int {
	return int(math.Round(float64(ms) / 60000))
}

// focusScore penalizes paused time: 100 minus 8 points per paused minute,
// clamped to [0, 100].
func focusScore(pausedMs int64) int {
	score := math.Round(100 - float64(pausedMs)/60000*focusPenaltyPerMinute)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}
