package postgresql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/database"
)

// WithTransaction commits the work of fn, or rolls it back when fn fails or panics.
func WithTransaction(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		p := recover()
		if p == nil && err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("transaction rollback failed", "error", rbErr)
		}
		if p != nil {
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
