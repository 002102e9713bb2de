package node

import (
	"context"
	"time"

	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/rejection"

	"github.com/tokenized/pkg/logger"
)

// Middleware wraps a Handler to run code before and after it.
type Middleware func(Handler) Handler

// wrapMiddleware wraps a handler with some middleware. The first middleware in the slice is
// the outermost.
func wrapMiddleware(handler Handler, mw []Middleware) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			handler = mw[i](handler)
		}
	}

	return handler
}

// Log writes one line per request with its outcome and duration. Rejections are logged as
// warnings, other failures as errors.
func Log(next Handler) Handler {
	return func(ctx context.Context, w *ResponseWriter, dbConn db.Conn, m *Message) error {
		v, ok := ctx.Value(KeyValues).(*Values)
		if !ok {
			return ErrMissingValues
		}

		err := next(ctx, w, dbConn, m)
		elapsed := time.Since(v.Now)

		switch {
		case err == nil:
			logger.Verbose(ctx, "%s : %s (%s) : %s", v.TraceID, m.Action, m.Sender, elapsed)
		case rejection.IsRejection(err):
			logger.Warn(ctx, "%s : %s (%s) rejected %s : %s", v.TraceID, m.Action, m.Sender,
				rejection.CategoryName(rejection.Category(err)), err)
		default:
			logger.Error(ctx, "%s : %s (%s) failed : %s", v.TraceID, m.Action, m.Sender, err)
		}

		return err
	}
}
