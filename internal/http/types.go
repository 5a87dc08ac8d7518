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

type Server struct {
	Players        ladder.Store
	Challenges     challenge.Store
	Engine         *engine.Engine
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
