package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
)

// Close closes closer and logs the failure. A nil closer is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// Copy streams src into dst and returns the number of bytes copied. Errors
// are logged because the response header has usually been sent already.
func Copy(ctx context.Context, dst io.Writer, src io.Reader) int64 {
	n, err := io.Copy(dst, src)
	if err != nil {
		logging.From(ctx).Error("Failed to copy", slog.Any("error", err), slog.Int64("copied", n))
	}
	return n
}
