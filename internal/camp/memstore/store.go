// Package memstore keeps profiles and daily logs in process memory. It backs the
// "memory" storage mode and the unit tests; all data is lost on restart.
package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Stitchbit30/BattleLog/internal/apperr"
	"github.com/Stitchbit30/BattleLog/internal/camp/dailylogs"
	"github.com/Stitchbit30/BattleLog/internal/camp/profiles"
)

// Store is the shared state. Profiles and Logs are views over it, so deleting a
// profile removes its logs and writing a log checks that the profile exists.
type Store struct {
	mu            sync.RWMutex
	profiles      map[int]profiles.Profile
	logs          map[dailylogs.Key]dailylogs.DailyLog
	nextProfileID int
	nextLogID     int

	// serializes read-modify-write per log key
	logLocks *keyedMutex[dailylogs.Key]
}

func New() *Store {
	return &Store{
		profiles:      make(map[int]profiles.Profile),
		logs:          make(map[dailylogs.Key]dailylogs.DailyLog),
		nextProfileID: 1,
		nextLogID:     1,
		logLocks:      newKeyedMutex[dailylogs.Key](),
	}
}

func (s *Store) Profiles() *ProfilesRepo {
	return &ProfilesRepo{store: s}
}

func (s *Store) Logs() *LogsRepo {
	return &LogsRepo{store: s}
}

type ProfilesRepo struct {
	store *Store
}

func (r *ProfilesRepo) Add(_ context.Context, profile profiles.Profile) (*profiles.Profile, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	profile.ID = s.nextProfileID
	s.nextProfileID++
	s.profiles[profile.ID] = profile
	return &profile, nil
}

func (r *ProfilesRepo) Get(_ context.Context, id int) (*profiles.Profile, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[id]
	if !ok {
		return nil, profiles.ErrProfileNotFound
	}
	return &profile, nil
}

// List returns the newest created profiles first.
func (r *ProfilesRepo) List(_ context.Context) ([]profiles.Profile, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]profiles.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		list = append(list, p)
	}
	slices.SortFunc(list, func(a, b profiles.Profile) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return list, nil
}

func (r *ProfilesRepo) Update(_ context.Context, id int, patch profiles.Patch) (*profiles.Profile, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.profiles[id]
	if !ok {
		return nil, profiles.ErrProfileNotFound
	}
	updated, err := patch.Apply(current)
	if err != nil {
		return nil, err
	}
	s.profiles[id] = updated
	return &updated, nil
}

func (r *ProfilesRepo) Delete(_ context.Context, id int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return profiles.ErrProfileNotFound
	}
	delete(s.profiles, id)
	for key := range s.logs {
		if key.ProfileID == id {
			delete(s.logs, key)
		}
	}
	return nil
}

type LogsRepo struct {
	store *Store
}

func cloneLog(l dailylogs.DailyLog) dailylogs.DailyLog {
	l.CompletedItems = slices.Clone(l.CompletedItems)
	if l.CompletedItems == nil {
		l.CompletedItems = []string{}
	}
	return l
}

func (r *LogsRepo) Get(_ context.Context, key dailylogs.Key) (*dailylogs.DailyLog, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.logs[key]
	if !ok {
		return nil, dailylogs.ErrLogNotFound
	}
	l = cloneLog(l)
	return &l, nil
}

// ListByProfile returns the logs of one profile, newest date first.
func (r *LogsRepo) ListByProfile(_ context.Context, profileID int) ([]dailylogs.DailyLog, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]dailylogs.DailyLog, 0)
	for key, l := range s.logs {
		if key.ProfileID == profileID {
			list = append(list, cloneLog(l))
		}
	}
	slices.SortFunc(list, func(a, b dailylogs.DailyLog) int {
		return b.Date.Time().Compare(a.Date.Time())
	})
	return list, nil
}

// modify runs the read-modify-write for key under the key's lock. fn gets the
// current log (nil when absent) and returns the log to store.
func (r *LogsRepo) modify(key dailylogs.Key, fn func(current *dailylogs.DailyLog) (dailylogs.DailyLog, error)) (*dailylogs.DailyLog, error) {
	s := r.store
	unlock := s.logLocks.Lock(key)
	defer unlock()

	s.mu.RLock()
	_, profileExists := s.profiles[key.ProfileID]
	current, logExists := s.logs[key]
	s.mu.RUnlock()

	if !profileExists {
		return nil, fmt.Errorf("profile %d: %w", key.ProfileID, apperr.ErrReferential)
	}

	var currentPtr *dailylogs.DailyLog
	if logExists {
		current = cloneLog(current)
		currentPtr = &current
	}
	updated, err := fn(currentPtr)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// the profile may have been deleted while fn ran
	if _, ok := s.profiles[key.ProfileID]; !ok {
		return nil, fmt.Errorf("profile %d: %w", key.ProfileID, apperr.ErrReferential)
	}
	if updated.ID == 0 {
		updated.ID = s.nextLogID
		s.nextLogID++
	}
	s.logs[key] = updated

	stored := cloneLog(updated)
	return &stored, nil
}

func (r *LogsRepo) Upsert(_ context.Context, key dailylogs.Key, patch dailylogs.Patch, now time.Time) (*dailylogs.DailyLog, error) {
	return r.modify(key, func(current *dailylogs.DailyLog) (dailylogs.DailyLog, error) {
		base := dailylogs.Empty(key)
		if current != nil {
			base = *current
		}
		return patch.Apply(base, now), nil
	})
}

func (r *LogsRepo) Update(_ context.Context, key dailylogs.Key, patch dailylogs.Patch, now time.Time) (*dailylogs.DailyLog, error) {
	s := r.store
	s.mu.RLock()
	_, exists := s.logs[key]
	s.mu.RUnlock()
	if !exists {
		return nil, dailylogs.ErrLogNotFound
	}

	return r.modify(key, func(current *dailylogs.DailyLog) (dailylogs.DailyLog, error) {
		if current == nil {
			return dailylogs.DailyLog{}, dailylogs.ErrLogNotFound
		}
		return patch.Apply(*current, now), nil
	})
}

func (r *LogsRepo) ToggleItem(_ context.Context, key dailylogs.Key, itemID string, now time.Time) (*dailylogs.DailyLog, error) {
	return r.modify(key, func(current *dailylogs.DailyLog) (dailylogs.DailyLog, error) {
		base := dailylogs.Empty(key)
		if current != nil {
			base = *current
		}
		items := dailylogs.ToggledItems(base.CompletedItems, itemID)
		return dailylogs.Patch{CompletedItems: &items}.Apply(base, now), nil
	})
}
