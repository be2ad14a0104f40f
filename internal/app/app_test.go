package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"github.com/GlebRadaev/payledger/internal/config"
)

type ApplicationSuite struct {
	suite.Suite
	app *Application
}

func TestApplication(t *testing.T) {
	suite.Run(t, &ApplicationSuite{})
}

func (s *ApplicationSuite) SetupTest() {
	s.app = New()
}

func (s *ApplicationSuite) TestSetup_InMemory() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := &config.Config{
		Address:    "localhost:0",
		JWTSecret:  "secret",
		KafkaTopic: "payledger.events",
		Workers:    2,
	}
	s.Require().NoError(s.app.setup(ctx, cfg))

	s.NotNil(s.app.repo)
	s.NotNil(s.app.srv)
	s.NotNil(s.app.api)
	s.Len(s.app.srv.Resumers, 2)
	s.Len(s.app.publisher, 1)
	s.Empty(s.app.closers)

	router := chi.NewRouter()
	s.app.api.InitRoutes(router)

	for _, path := range []string{"/health", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		s.Equal(http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ApplicationSuite) TestSetup_WithPublishers() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := &config.Config{
		JWTSecret:   "secret",
		KafkaBroker: "localhost:9092",
		KafkaTopic:  "payledger.events",
		WebhookURL:  "http://localhost:9999/hook",
		Workers:     1,
	}
	s.Require().NoError(s.app.setup(ctx, cfg))

	s.Len(s.app.publisher, 3)
	s.Len(s.app.closers, 1)
}

func (s *ApplicationSuite) TestSetup_BadDatabase() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := s.app.setup(ctx, &config.Config{Database: "://not-a-dsn", Workers: 1})
	s.Require().Error(err)
	s.Contains(err.Error(), "can't build pgx pool")
}

func (s *ApplicationSuite) TestWait() {
	ctx, cancel := context.WithCancel(context.Background())

	s.app.errCh = make(chan error)
	go func() {
		s.app.errCh <- fmt.Errorf("mock error")
	}()

	err := s.app.Wait(ctx, cancel)

	s.Require().Error(err)
	s.Contains(err.Error(), "mock error")
}
