package node

import (
	"context"
	"time"

	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/platform/host"
	"github.com/dhiraj-inti/aml-application/pkg/actions"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	sync "github.com/sasha-s/go-deadlock"
	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

// ctxKey represents the type of value for the context key.
type ctxKey int

// KeyValues is how request values or stored/retrieved.
const KeyValues ctxKey = 1

// Values represent state for each request.
type Values struct {
	TraceID string
	Now     time.Time
	Action  string
}

// Message is a single request to the contract. Sender has already been validated by the host.
type Message struct {
	Action  string
	Sender  host.Address
	Funds   actions.Coins
	Payload []byte
}

// A Handler is a type that handles a contract request within our own little mini framework.
// dbConn is the request's write group, so nothing a handler writes is stored unless it
// returns nil.
type Handler func(ctx context.Context, w *ResponseWriter, dbConn db.Conn, m *Message) error

// App is the entrypoint into our application and what configures our context object for each
// of our handlers. Requests are applied one at a time.
type App struct {
	lock     sync.RWMutex
	masterDB *db.DB
	handlers map[string]Handler
	queries  map[string]Handler
	mw       []Middleware
}

// New creates an App value that handle a set of actions for the contract.
func New(masterDB *db.DB, mw ...Middleware) *App {
	return &App{
		masterDB: masterDB,
		handlers: make(map[string]Handler),
		queries:  make(map[string]Handler),
		mw:       mw,
	}
}

// Handle is our mechanism for mounting Handlers for a given execute action.
func (a *App) Handle(action string, handler Handler, mw ...Middleware) {
	a.handlers[action] = wrapMiddleware(wrapMiddleware(handler, mw), a.mw)
}

// HandleQuery mounts a read only Handler for a given query.
func (a *App) HandleQuery(query string, handler Handler, mw ...Middleware) {
	a.queries[query] = wrapMiddleware(wrapMiddleware(handler, mw), a.mw)
}

// Execute applies a state changing request. The handler's writes are committed as one group
// when it succeeds and dropped when it fails.
func (a *App) Execute(ctx context.Context, m *Message) (*ResponseWriter, error) {
	handler, exists := a.handlers[m.Action]
	if !exists {
		return nil, errors.Wrapf(ErrUnknownAction, "execute %s", m.Action)
	}

	a.lock.Lock()
	defer a.lock.Unlock()

	tx := a.masterDB.Begin()
	w := &ResponseWriter{}

	if err := a.run(ctx, handler, w, tx, m); err != nil {
		tx.Discard()
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error(ctx, "Failed to commit %s : %s", m.Action, err)
		return nil, errors.Wrap(err, "commit")
	}

	return w, nil
}

// Query runs a read only request. Anything the handler writes is discarded.
func (a *App) Query(ctx context.Context, m *Message) (*ResponseWriter, error) {
	handler, exists := a.queries[m.Action]
	if !exists {
		return nil, errors.Wrapf(ErrUnknownAction, "query %s", m.Action)
	}

	a.lock.RLock()
	defer a.lock.RUnlock()

	tx := a.masterDB.Begin()
	defer tx.Discard()

	w := &ResponseWriter{}
	if err := a.run(ctx, handler, w, tx, m); err != nil {
		return nil, err
	}

	return w, nil
}

func (a *App) run(ctx context.Context, handler Handler, w *ResponseWriter, dbConn db.Conn,
	m *Message) error {

	// Start trace span.
	ctx, span := trace.StartSpan(ctx, "internal.platform.node")
	defer span.End()

	// Set the context with the required values to process the request.
	v := Values{
		TraceID: span.SpanContext().TraceID.String(),
		Now:     time.Now(),
		Action:  m.Action,
	}
	if !span.SpanContext().IsSampled() {
		uid, _ := uuid.NewRandom()
		v.TraceID = uid.String()
	}
	ctx = context.WithValue(ctx, KeyValues, &v)

	return handler(ctx, w, dbConn, m)
}
