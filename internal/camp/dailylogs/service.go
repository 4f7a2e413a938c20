package dailylogs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Stitchbit30/BattleLog/internal/apperr"
	"github.com/Stitchbit30/BattleLog/internal/telemetry/metrics"
	"github.com/Stitchbit30/BattleLog/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=dailylogs_test

// logsRepo persists logs. Writes to the same key must be serialized by the implementation.
type logsRepo interface {
	Get(ctx context.Context, key Key) (*DailyLog, error)
	ListByProfile(ctx context.Context, profileID int) ([]DailyLog, error)
	// Upsert creates the log with defaults when absent, then merges patch over it.
	Upsert(ctx context.Context, key Key, patch Patch, now time.Time) (*DailyLog, error)
	// Update merges patch over an existing log, ErrLogNotFound otherwise.
	Update(ctx context.Context, key Key, patch Patch, now time.Time) (*DailyLog, error)
	ToggleItem(ctx context.Context, key Key, itemID string, now time.Time) (*DailyLog, error)
}

type Service struct {
	repo    logsRepo
	metrics *metrics.Manager
	nowFunc func() time.Time
}

func NewService(repo logsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:    repo,
		metrics: metricsManager,
		nowFunc: time.Now,
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func keyAttributes(key Key) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("log.profile_id", key.ProfileID),
		attribute.String("log.date", key.Date.String()),
	}
}

// Get returns ErrLogNotFound when nothing was written for key yet.
func (s *Service) Get(ctx context.Context, key Key) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dailylogs.get")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(keyAttributes(key)...)

	log, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrLogNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get log %s: %w", key, err)
	}
	return log, nil
}

// GetOrEmpty never fails for a missing log: it returns the empty default view instead.
func (s *Service) GetOrEmpty(ctx context.Context, key Key) (*DailyLog, error) {
	log, err := s.Get(ctx, key)
	if errors.Is(err, ErrLogNotFound) {
		empty := Empty(key)
		return &empty, nil
	}
	return log, err
}

func (s *Service) ListByProfile(ctx context.Context, profileID int) (_ []DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dailylogs.list")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int("log.profile_id", profileID))

	logs, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list logs of profile %d: %w", profileID, err)
	}
	return logs, nil
}

// Upsert merges the provided fields into the log at key, creating it first when needed.
func (s *Service) Upsert(ctx context.Context, key Key, patch Patch) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dailylogs.upsert")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(keyAttributes(key)...)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	log, err := s.repo.Upsert(ctx, key, patch.Normalized(), s.nowFunc().UTC())
	if err != nil {
		return nil, fmt.Errorf("upsert log %s: %w", key, err)
	}
	s.countWrite("upsert")
	return log, nil
}

// Patch merges into an existing log only. A missing log is ErrLogNotFound and nothing is created.
func (s *Service) Patch(ctx context.Context, key Key, patch Patch) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dailylogs.patch")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(keyAttributes(key)...)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	log, err := s.repo.Update(ctx, key, patch.Normalized(), s.nowFunc().UTC())
	if err != nil {
		if errors.Is(err, ErrLogNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("patch log %s: %w", key, err)
	}
	s.countWrite("patch")
	return log, nil
}

// ToggleItem flips itemID in the completed set of the log at key. Toggling twice
// restores the previous set. The id is not checked against the day's schedule.
func (s *Service) ToggleItem(ctx context.Context, key Key, itemID string) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dailylogs.toggle")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(keyAttributes(key)...)
	span.SetAttributes(attribute.String("log.item_id", itemID))

	if itemID == "" {
		return nil, apperr.NewValidationError("itemId", errors.New("cannot be blank"))
	}
	if len(itemID) > 64 {
		return nil, apperr.NewValidationError("itemId", errors.New("must be at most 64 characters long"))
	}

	log, err := s.repo.ToggleItem(ctx, key, itemID, s.nowFunc().UTC())
	if err != nil {
		return nil, fmt.Errorf("toggle item %s on log %s: %w", itemID, key, err)
	}
	s.countWrite("toggle")
	if s.metrics != nil {
		s.metrics.CounterItemToggles.Inc()
	}
	return log, nil
}

func (s *Service) countWrite(op string) {
	if s.metrics == nil {
		return
	}
	s.metrics.CounterLogWrites.WithLabelValues(op).Inc()
}
