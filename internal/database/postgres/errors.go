package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/QRHunt_Go/internal/domain"
)

// classify wraps a driver error with the domain sentinel it corresponds to
// so callers can use errors.Is across layers. Unrecognised errors are only annotated.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrTimeout) || errors.Is(err, domain.ErrUnavailable) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err):
		return fmt.Errorf("%w: %s: %w", domain.ErrTimeout, op, err)
	case isConnectionError(err):
		return fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, op, err)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

func isConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, PgErrorClassConnection) ||
			pgErr.Code == PgErrorCodeAdminShutdown ||
			pgErr.Code == PgErrorCodeCannotConnectNow ||
			pgErr.Code == PgErrorCodeTooManyConnections
	}

	if pgconn.SafeToRetry(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
