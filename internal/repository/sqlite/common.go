package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"assignment-tracker/internal/errors"
)

// storeError maps a driver failure onto the application error types.
func storeError(ctx context.Context, op string, err error) error {
	timedOut := stderrors.Is(err, context.DeadlineExceeded)
	if !timedOut && ctx != nil {
		timedOut = stderrors.Is(ctx.Err(), context.DeadlineExceeded)
	}
	if timedOut {
		return errors.NewTimeoutError(op, err.Error())
	}
	return errors.NewDatabaseError(op, err)
}

func exec(ctx context.Context, db *sql.DB, op, query string, args ...any) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return storeError(ctx, op, err)
	}
	return nil
}

// queryEntry loads one entry; a missing row yields (nil, nil).
func queryEntry(ctx context.Context, db *sql.DB, query string, args ...any) (*Entry, error) {
	entry, err := scanEntry(db.QueryRowContext(ctx, query, args...))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(ctx, "read entry", err)
	}
	return entry, nil
}
