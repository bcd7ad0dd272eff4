package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// RevocationPurger deletes revocation entries whose token has expired.
type RevocationPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// RunPurgeRevocations removes expired entries from the revocation ledger. supported is
// false for ledgers that expire entries themselves, in which case nothing is done.
func RunPurgeRevocations(
	ctx context.Context,
	purger RevocationPurger,
	supported bool,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if !supported {
		logger.Info("revocation ledger expires entries on its own, nothing to purge")
		if format == "json" {
			writeJSON(writer, map[string]any{"count": 0, "supported": false})
		} else {
			_, _ = fmt.Fprintln(writer, "The configured revocation ledger expires entries on its own, nothing to purge")
		}
		return nil
	}

	count, err := purger.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge revocations: %w", err)
	}

	if format == "json" {
		writeJSON(writer, map[string]any{"count": count, "supported": true})
	} else {
		_, _ = fmt.Fprintf(writer, "Successfully purged %d expired revocation(s)\n", count)
	}

	logger.Info("purge completed", slog.Int64("count", count))
	return nil
}
