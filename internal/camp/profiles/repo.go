package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/Stitchbit30/BattleLog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, profile Profile) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.add")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	err = r.db.QueryRow(ctx, `
		INSERT INTO profile (name, weight, height, belt, start_date, competition_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		profile.Name, profile.Weight, profile.Height, profile.Belt,
		profile.StartDate, profile.CompetitionDate, profile.CreatedAt,
	).Scan(&profile.ID)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.get")
	defer func() {
		if err != nil && !errors.Is(err, ErrProfileNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("profile.id", id))

	profile := &Profile{}
	err = r.db.QueryRow(ctx, `
		SELECT id, name, weight, height, belt, start_date, competition_date, created_at
		FROM profile
		WHERE id = $1
	`, id).Scan(
		&profile.ID, &profile.Name, &profile.Weight, &profile.Height, &profile.Belt,
		&profile.StartDate, &profile.CompetitionDate, &profile.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *Repo) List(ctx context.Context) (_ []Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.list")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, weight, height, belt, start_date, competition_date, created_at
		FROM profile
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]Profile, 0)
	for rows.Next() {
		var p Profile
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Weight, &p.Height, &p.Belt,
			&p.StartDate, &p.CompetitionDate, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// Update applies the patch inside a transaction, so the date-order check and the
// write see the same row.
func (r *Repo) Update(ctx context.Context, id int, patch Patch) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.update")
	defer func() {
		if err != nil && !errors.Is(err, ErrProfileNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("profile.id", id))

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

	current := Profile{}
	err = tx.QueryRow(ctx, `
		SELECT id, name, weight, height, belt, start_date, competition_date, created_at
		FROM profile
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(
		&current.ID, &current.Name, &current.Weight, &current.Height, &current.Belt,
		&current.StartDate, &current.CompetitionDate, &current.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	updated, err := patch.Apply(current)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE profile
		SET name = $1, weight = $2, height = $3, belt = $4, start_date = $5, competition_date = $6
		WHERE id = $7
	`,
		updated.Name, updated.Weight, updated.Height, updated.Belt,
		updated.StartDate, updated.CompetitionDate, id,
	)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes the profile; its daily logs go with it (ON DELETE CASCADE).
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.delete")
	defer func() {
		if err != nil && !errors.Is(err, ErrProfileNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM profile WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}
