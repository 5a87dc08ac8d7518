package http

import (
	"net/http"

	"github.com/timrmills-svg/nhh-squash-ladder/internal/challenge"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/config"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/engine"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/ladder"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/metrics"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/notifier"
)

func NewServer(players ladder.Store, challenges challenge.Store, eng *engine.Engine, notifier notifier.Notifier, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Players:        players,
		Challenges:     challenges,
		Engine:         eng,
		Notifier:       notifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/players/join", Chain(s.JoinPlayerHandler(), paramsMiddleware))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/matches/record", Chain(s.RecordMatchHandler(), paramsMiddleware))
	s.Router.Handle("/challenges", Chain(s.ListChallengesHandler(), paramsMiddleware))
	s.Router.Handle("/challenges/create", Chain(s.CreateChallengeHandler(), paramsMiddleware))
	s.Router.Handle("/challenges/respond", Chain(s.RespondChallengeHandler(), paramsMiddleware))
	s.Router.Handle("/sweep", Chain(s.SweepHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
