package profiles

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Stitchbit30/BattleLog/internal/telemetry/metrics"
	"github.com/Stitchbit30/BattleLog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=profiles_test

type profilesRepo interface {
	Add(ctx context.Context, profile Profile) (*Profile, error)
	Get(ctx context.Context, id int) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Update(ctx context.Context, id int, patch Patch) (*Profile, error)
	Delete(ctx context.Context, id int) error
}

type profilesCache interface {
	Get(ctx context.Context, id int) (*Profile, error)
	Set(ctx context.Context, profile *Profile) error
	Invalidate(ctx context.Context, id int) error
}

type Service struct {
	repo    profilesRepo
	cache   profilesCache
	metrics *metrics.Manager
	loads   singleflight.Group
	nowFunc func() time.Time

	// writes bumps a profile's counter after each write; a load that saw a bump
	// while it was in flight drops what it cached
	writesMu sync.Mutex
	writes   map[int]uint64
}

func NewService(repo profilesRepo, cache profilesCache, metricsManager *metrics.Manager) *Service {
	if cache == nil {
		cache = NoopCache{}
	}
	return &Service{
		repo:    repo,
		cache:   cache,
		metrics: metricsManager,
		nowFunc: time.Now,
		writes:  map[int]uint64{},
	}
}

func (s *Service) writeCount(id int) uint64 {
	s.writesMu.Lock()
	defer s.writesMu.Unlock()
	return s.writes[id]
}

// wrote marks id as changed and drops its cached copy. In-flight loads started
// before the write are forgotten so later readers do not join them.
func (s *Service) wrote(ctx context.Context, id int) {
	s.writesMu.Lock()
	s.writes[id]++
	s.writesMu.Unlock()

	s.loads.Forget(strconv.Itoa(id))
	if err := s.cache.Invalidate(ctx, id); err != nil {
		log.Errorf("profile cache invalidate [%d]: %s", id, err)
	}
}

func (s *Service) Create(ctx context.Context, newProfile NewProfile) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profiles.create")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := newProfile.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.repo.Add(ctx, newProfile.ToProfile(s.nowFunc().UTC()))
	if err != nil {
		return nil, fmt.Errorf("add profile: %w", err)
	}
	return profile, nil
}

// Get reads through the cache. A failing cache is logged and bypassed.
func (s *Service) Get(ctx context.Context, id int) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profiles.get")
	defer func() {
		if err != nil && !errors.Is(err, ErrProfileNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	cached, err := s.cache.Get(ctx, id)
	if err == nil {
		s.countCache("hit")
		return cached, nil
	}
	if !errors.Is(err, errCacheMiss) {
		log.Errorf("profile cache get [%d]: %s", id, err)
	}
	s.countCache("miss")

	v, err, _ := s.loads.Do(strconv.Itoa(id), func() (any, error) {
		// the load is shared, one caller going away must not fail the others
		loadCtx := context.WithoutCancel(ctx)

		before := s.writeCount(id)
		profile, err := s.repo.Get(loadCtx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(loadCtx, profile); err != nil {
			log.Errorf("profile cache set [%d]: %s", id, err)
		}
		if s.writeCount(id) != before {
			// a write landed while loading, the copy just cached may predate it
			if err := s.cache.Invalidate(loadCtx, id); err != nil {
				log.Errorf("profile cache invalidate [%d]: %s", id, err)
			}
		}
		return profile, nil
	})
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get profile %d: %w", id, err)
	}

	profile := *v.(*Profile)
	return &profile, nil
}

func (s *Service) List(ctx context.Context) (_ []Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profiles.list")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

func (s *Service) Patch(ctx context.Context, id int, patch Patch) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profiles.patch")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update profile %d: %w", id, err)
	}

	s.wrote(ctx, id)
	return updated, nil
}

// Delete is the full reset of a profile: the profile and all of its daily logs.
func (s *Service) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profiles.delete")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete profile %d: %w", id, err)
	}
	s.wrote(ctx, id)
	return nil
}

func (s *Service) countCache(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.CounterProfileCache.WithLabelValues(result).Inc()
}
