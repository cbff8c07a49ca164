package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"carbonledger/internal/access"
	"carbonledger/internal/assets"
	"carbonledger/internal/audit"
	certhandler "carbonledger/internal/certification/handler"
	jwttoken "carbonledger/internal/jwt_token"
	ledgerhandler "carbonledger/internal/ledger/handler"
	markethandler "carbonledger/internal/marketplace/handler"
	"carbonledger/internal/platform/config"
	"carbonledger/pkg/platform/middleware/auth"
	"carbonledger/pkg/platform/middleware/request"
)

const (
	requestTimeout = 30 * time.Second
	maxBodyBytes   = 1 << 20
)

type routeSet interface {
	Register(r chi.Router)
	RegisterPublic(r chi.Router)
}

// newRouter mounts reads publicly and every mutation behind bearer auth.
// The token subject is the caller address.
func newRouter(a *app, cfg config.Config, log *slog.Logger, reg prometheus.Registerer) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(log))
	r.Use(request.RequestID)
	r.Use(request.RequestTime)
	r.Use(request.Logger(log))
	r.Use(request.LatencyMiddleware(request.NewMetrics(reg)))
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(request.BodyLimit(maxBodyBytes))
	r.Use(request.ContentTypeJSON)

	a.health.Register(r)

	routes := []routeSet{
		ledgerhandler.New(a.ledger, log),
		certhandler.New(a.registry, log),
		markethandler.New(a.market, log),
		access.NewHandler(a.access, log),
		assets.NewHandler(a.assets, a.tx, a.access, log),
	}
	for _, rs := range routes {
		rs.RegisterPublic(r)
	}
	audit.NewHandler(a.events, log).Register(r)

	jwt := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.TokenTTL)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(jwttoken.NewValidator(jwt), log))
		for _, rs := range routes {
			rs.Register(r)
		}
	})

	return r
}
