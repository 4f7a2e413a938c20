package dailylogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Stitchbit30/BattleLog/internal/apperr"
	"github.com/Stitchbit30/BattleLog/internal/telemetry/tracing"
	"github.com/Stitchbit30/BattleLog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const logColumns = `
	id, profile_id, date, completed_items, journal_entry, weight, mood, sleep_hours,
	sleep_quality, hrv, resting_hr, active_calories, daily_focus, created_at, updated_at
`

// Repo stores logs in postgres. Every write is either a single statement or a
// transaction holding the row lock, so writes to one (profile_id, date) never interleave.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanLog(row pgx.Row) (*DailyLog, error) {
	var (
		log          DailyLog
		sleepQuality *string
	)
	if err := row.Scan(
		&log.ID, &log.ProfileID, &log.Date, &log.CompletedItems, &log.JournalEntry,
		&log.Weight, &log.Mood, &log.SleepHours, &sleepQuality, &log.HRV, &log.RestingHR,
		&log.ActiveCalories, &log.DailyFocus, &log.CreatedAt, &log.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if sleepQuality != nil {
		q := SleepQuality(*sleepQuality)
		log.SleepQuality = &q
	}
	if log.CompletedItems == nil {
		log.CompletedItems = []string{}
	}
	return &log, nil
}

// patchArgs flattens a patch into nullable query args; NULL means "not provided".
func patchArgs(patch Patch) ([]any, error) {
	var completedItems *string
	if patch.CompletedItems != nil {
		itemsJson, err := json.Marshal(*patch.CompletedItems)
		if err != nil {
			return nil, fmt.Errorf("marshal completed items: %w", err)
		}
		s := string(itemsJson)
		completedItems = &s
	}
	var sleepQuality *string
	if patch.SleepQuality != nil {
		s := string(*patch.SleepQuality)
		sleepQuality = &s
	}
	return []any{
		completedItems, patch.JournalEntry, patch.Weight, patch.Mood, patch.SleepHours,
		sleepQuality, patch.HRV, patch.RestingHR, patch.ActiveCalories, patch.DailyFocus,
	}, nil
}

func (r *Repo) Get(ctx context.Context, key Key) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylogs.get")
	defer func() {
		if err != nil && !errors.Is(err, ErrLogNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("log.key", key.String()))

	log, err := scanLog(r.db.QueryRow(ctx, `
		SELECT `+logColumns+`
		FROM daily_log
		WHERE profile_id = $1 AND date = $2
	`, key.ProfileID, key.Date))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrLogNotFound
	}
	if err != nil {
		return nil, err
	}
	return log, nil
}

func (r *Repo) ListByProfile(ctx context.Context, profileID int) (_ []DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylogs.list")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	rows, err := r.db.Query(ctx, `
		SELECT `+logColumns+`
		FROM daily_log
		WHERE profile_id = $1
		ORDER BY date DESC
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]DailyLog, 0)
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// Upsert merges in one statement: absent args are NULL and COALESCE keeps the stored value.
func (r *Repo) Upsert(ctx context.Context, key Key, patch Patch, now time.Time) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylogs.upsert")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("log.key", key.String()))

	args, err := patchArgs(patch)
	if err != nil {
		return nil, err
	}
	args = append([]any{key.ProfileID, key.Date, now}, args...)

	log, err := scanLog(r.db.QueryRow(ctx, `
		INSERT INTO daily_log (
			profile_id, date, created_at, updated_at,
			completed_items, journal_entry, weight, mood, sleep_hours,
			sleep_quality, hrv, resting_hr, active_calories, daily_focus
		)
		VALUES (
			$1, $2, $3, $3,
			COALESCE($4::jsonb, '[]'::jsonb), COALESCE($5::text, ''), $6, $7, $8,
			$9, $10, $11, $12, $13
		)
		ON CONFLICT (profile_id, date) DO UPDATE SET
			completed_items = COALESCE($4::jsonb, daily_log.completed_items),
			journal_entry = COALESCE($5::text, daily_log.journal_entry),
			weight = COALESCE($6, daily_log.weight),
			mood = COALESCE($7, daily_log.mood),
			sleep_hours = COALESCE($8, daily_log.sleep_hours),
			sleep_quality = COALESCE($9, daily_log.sleep_quality),
			hrv = COALESCE($10, daily_log.hrv),
			resting_hr = COALESCE($11, daily_log.resting_hr),
			active_calories = COALESCE($12, daily_log.active_calories),
			daily_focus = COALESCE($13, daily_log.daily_focus),
			updated_at = $3
		RETURNING `+logColumns, args...))
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("profile %d: %w", key.ProfileID, apperr.ErrReferential)
		}
		return nil, err
	}
	return log, nil
}

func (r *Repo) Update(ctx context.Context, key Key, patch Patch, now time.Time) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylogs.update")
	defer func() {
		if err != nil && !errors.Is(err, ErrLogNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("log.key", key.String()))

	args, err := patchArgs(patch)
	if err != nil {
		return nil, err
	}
	args = append([]any{key.ProfileID, key.Date, now}, args...)

	log, err := scanLog(r.db.QueryRow(ctx, `
		UPDATE daily_log SET
			completed_items = COALESCE($4::jsonb, completed_items),
			journal_entry = COALESCE($5::text, journal_entry),
			weight = COALESCE($6, weight),
			mood = COALESCE($7, mood),
			sleep_hours = COALESCE($8, sleep_hours),
			sleep_quality = COALESCE($9, sleep_quality),
			hrv = COALESCE($10, hrv),
			resting_hr = COALESCE($11, resting_hr),
			active_calories = COALESCE($12, active_calories),
			daily_focus = COALESCE($13, daily_focus),
			updated_at = $3
		WHERE profile_id = $1 AND date = $2
		RETURNING `+logColumns, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrLogNotFound
	}
	if err != nil {
		return nil, err
	}
	return log, nil
}

// ToggleItem makes sure the row exists, locks it, then writes the toggled set back.
func (r *Repo) ToggleItem(ctx context.Context, key Key, itemID string, now time.Time) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylogs.toggle")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("log.key", key.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO daily_log (profile_id, date, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (profile_id, date) DO NOTHING
	`, key.ProfileID, key.Date, now)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("profile %d: %w", key.ProfileID, apperr.ErrReferential)
		}
		return nil, err
	}

	var current []string
	err = tx.QueryRow(ctx, `
		SELECT completed_items
		FROM daily_log
		WHERE profile_id = $1 AND date = $2
		FOR UPDATE
	`, key.ProfileID, key.Date).Scan(&current)
	if err != nil {
		return nil, err
	}

	itemsJson, err := json.Marshal(ToggledItems(DedupeItems(current), itemID))
	if err != nil {
		return nil, fmt.Errorf("marshal completed items: %w", err)
	}

	log, err := scanLog(tx.QueryRow(ctx, `
		UPDATE daily_log
		SET completed_items = $3::jsonb, updated_at = $4
		WHERE profile_id = $1 AND date = $2
		RETURNING `+logColumns,
		key.ProfileID, key.Date, string(itemsJson), now,
	))
	if err != nil {
		return nil, err
	}
	return log, nil
}
