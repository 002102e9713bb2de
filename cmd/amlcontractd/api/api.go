// Package api exposes the contract over HTTP. Execute routes take the caller identity from
// the X-Sender header, which is set by the gateway in front of the daemon.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/platform/host"
	"github.com/dhiraj-inti/aml-application/internal/platform/node"
	"github.com/dhiraj-inti/aml-application/internal/rejection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
)

// SenderHeader carries the caller identity.
const SenderHeader = "X-Sender"

const maxBodySize = 1 << 20

// Server routes HTTP requests into the contract application.
type Server struct {
	ctx       context.Context
	app       *node.App
	masterDB  *db.DB
	validator host.AddressValidator
}

// NewServer returns a Server. ctx carries the logger used for every request.
func NewServer(ctx context.Context, app *node.App, masterDB *db.DB,
	validator host.AddressValidator) *Server {

	return &Server{
		ctx:       ctx,
		app:       app,
		masterDB:  masterDB,
		validator: validator,
	}
}

// Router returns the HTTP handler with every route mounted.
func (s *Server) Router(corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  corsOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", SenderHeader},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	router.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
		c.Next()
	})

	router.Use(s.requestLogger)

	router.GET("/health", s.Health)

	router.POST("/instantiate", s.Instantiate)
	router.GET("/admin", s.GetAdmin)

	router.POST("/oracle-data", s.UpdateOracleData)
	router.GET("/oracle-data", s.GetOracleData)
	router.POST("/oracle-key", s.UpdateOracleKey)
	router.GET("/oracle-key", s.GetOracleKey)

	router.POST("/add-transaction", s.AddTransaction)
	router.GET("/valid-transactions", s.GetValidTransactions)

	router.POST("/send", s.Send)

	return router
}

// Health reports whether storage is reachable.
func (s *Server) Health(c *gin.Context) {
	if err := s.masterDB.StatusCheck(s.requestContext(c)); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestLogger gives each request a trace ID and logs it once it completes.
func (s *Server) requestLogger(c *gin.Context) {
	start := time.Now()
	uid, _ := uuid.NewRandom()
	c.Set(requestIDKey, uid.String())

	c.Next()

	logger.Verbose(s.requestContext(c), "%s %s %d (%s)", c.Request.Method,
		c.Request.URL.Path, c.Writer.Status(), time.Since(start))
}

const requestIDKey = "request_id"

func (s *Server) requestContext(c *gin.Context) context.Context {
	return node.ContextWithLogTrace(s.ctx, c.GetString(requestIDKey))
}

// sender resolves the caller identity of an execute request.
func (s *Server) sender(c *gin.Context) (host.Address, error) {
	address, err := s.validator.ValidateAddress(c.GetHeader(SenderHeader))
	if err != nil {
		return "", errors.Wrap(err, SenderHeader)
	}

	return address, nil
}

// execute runs m and writes the events and payments it produced.
func (s *Server) execute(c *gin.Context, m *node.Message) {
	sender, err := s.sender(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	m.Sender = sender

	w, err := s.app.Execute(s.requestContext(c), m)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":   w.Events,
		"payments": w.Payments,
	})
}

// query runs m and writes its result.
func (s *Server) query(c *gin.Context, m *node.Message) {
	w, err := s.app.Query(s.requestContext(c), m)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, w.Data)
}

// StatusCode returns the HTTP status for an error returned by the contract.
func StatusCode(err error) int {
	switch rejection.Category(err) {
	case rejection.CategoryAuthorization:
		return http.StatusForbidden
	case rejection.CategoryValidation, rejection.CategoryVerification:
		return http.StatusBadRequest
	case rejection.CategoryConfiguration:
		return http.StatusConflict
	case rejection.CategoryUnsupportedKeyType:
		return http.StatusNotImplemented
	}

	return http.StatusInternalServerError
}

func (s *Server) respondError(c *gin.Context, err error) {
	status := StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error(s.requestContext(c), "Request failed : %s", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	c.JSON(status, gin.H{
		"error":    err.Error(),
		"category": rejection.CategoryName(rejection.Category(err)),
	})
}

// bind decodes the JSON body into v.
func (s *Server) bind(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return errors.Wrapf(node.ErrInvalidPayload, "%s", err)
	}

	return nil
}
