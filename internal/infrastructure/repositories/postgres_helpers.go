package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/core/ports"
)

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// mapError turns driver errors into repository sentinels.
func mapError(entity string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s not found: %w", entity, ports.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s already exists (%s): %w", entity, pqErr.Constraint, ports.ErrConflict)
	}
	return err
}

// requireAffected reports ErrNotFound when an update or delete matched nothing.
func requireAffected(entity string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s not found: %w", entity, ports.ErrNotFound)
	}
	return nil
}

func logDBError(logger *logrus.Logger, fields logrus.Fields, err error, msg string) {
	if logger == nil || errors.Is(err, sql.ErrNoRows) {
		return
	}
	logger.WithFields(fields).WithError(err).Error(msg)
}
