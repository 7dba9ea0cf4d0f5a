package api

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/propagation"

	"github.com/curaious/taskhive/internal/api/authenticator"
	"github.com/curaious/taskhive/internal/api/controllers"
	"github.com/curaious/taskhive/internal/api/response"
	"github.com/curaious/taskhive/internal/config"
	"github.com/curaious/taskhive/internal/perrors"
)

var tracePropagator = propagation.TraceContext{}

func (s *Server) initRoutes() fasthttp.RequestHandler {
	r := router.New()

	r.GET("/api/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		_, _ = ctx.Write([]byte("OK"))
	})

	conf := config.ReadConfig()
	auth := authenticator.New(conf)

	controllers.RegisterAuthRoutes(r, s.services, auth)
	controllers.RegisterAdminRoutes(r, s.services, auth)
	controllers.RegisterTaskRoutes(r, s.services)

	return s.withMiddlewares(r.Handler, auth)
}

func (s *Server) withMiddlewares(next fasthttp.RequestHandler, auth *authenticator.Authenticator) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		applyCORS(ctx)
		if string(ctx.Method()) == fasthttp.MethodOptions {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
			return
		}

		start := time.Now()
		uri := ctx.URI()
		requestURI := string(uri.FullURI())
		slog.Info("Started processing", slog.String("method", string(ctx.Method())), slog.String("request_uri", requestURI))

		h := http.Header{}
		ctx.Request.Header.VisitAll(func(k, v []byte) {
			h[string(k)] = []string{string(v)}
		})
		traceCtx := tracePropagator.Extract(ctx, propagation.HeaderCarrier(h))
		ctx.SetUserValue("traceCtx", traceCtx)

		// Auth check
		if !isPublicRoute(ctx) {
			header := string(ctx.Request.Header.Peek("Authorization"))
			if !strings.HasPrefix(header, "Bearer ") {
				response.NewResponse[any](traceCtx, "Authentication required.", nil).
					WithError(perrors.NewErrUnauthorized("Authentication required.", authenticator.ErrMissingToken)).
					Write(ctx)
				return
			}

			// The resolver only verifies the signature; an expired token
			// still identifies its subject here.
			subject, err := auth.ExtractSubject(strings.TrimPrefix(header, "Bearer "))
			if err != nil || subject == "" {
				response.NewResponse[any](traceCtx, "Invalid token.", nil).
					WithError(perrors.NewErrUnauthorized("Invalid token.", authenticator.ErrInvalidToken)).
					Write(ctx)
				return
			}

			ctx.SetUserValue("principal", subject)
		}

		next(ctx)

		slog.Info("Finished processing", slog.String("method", string(ctx.Method())), slog.String("request_uri", requestURI), slog.Duration("duration", time.Since(start)))
	}
}

func applyCORS(ctx *fasthttp.RequestCtx) {
	headers := &ctx.Response.Header
	headers.Set("Access-Control-Allow-Origin", string(ctx.Request.Header.Peek("Origin")))
	headers.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS,PATCH")
	headers.Set("Access-Control-Allow-Headers", os.Getenv("ALLOWED_HEADERS"))
	headers.Set("Access-Control-Allow-Credentials", "true")
}

func isPublicRoute(ctx *fasthttp.RequestCtx) bool {
	switch string(ctx.Path()) {
	case "/api/health", "/api/register", "/api/login":
		return true
	default:
		return false
	}
}
