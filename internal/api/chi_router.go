// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelhouse/internal/auth"
	"github.com/tomtom215/reelhouse/internal/authz"
	"github.com/tomtom215/reelhouse/internal/cache"
	"github.com/tomtom215/reelhouse/internal/middleware"
)

// Response cache TTLs per route family.
const (
	ttlSeries         = 300 * time.Second
	ttlSeriesDetail   = 300 * time.Second
	ttlEpisode        = 300 * time.Second
	ttlEpisodeDetail  = 600 * time.Second
	ttlFeedback       = 180 * time.Second
	ttlFeedbackDetail = 300 * time.Second
)

// Namespaces cleared by each family of writes. Ratings and episode lists
// are embedded in series responses, so episode and feedback writes clear
// the series namespaces too.
var (
	seriesPatterns = []string{
		cache.Pattern(cache.NamespaceSeries),
		cache.Pattern(cache.NamespaceSeriesDetail),
	}
	episodePatterns = append([]string{
		cache.Pattern(cache.NamespaceEpisode),
		cache.Pattern(cache.NamespaceEpisodeDetail),
	}, seriesPatterns...)
	feedbackPatterns = append([]string{
		cache.Pattern(cache.NamespaceFeedback),
		cache.Pattern(cache.NamespaceFeedbackDetail),
	}, seriesPatterns...)
	// Deleting a series cascades to its episodes and feedback.
	seriesDeletePatterns = append([]string{
		cache.Pattern(cache.NamespaceEpisode),
		cache.Pattern(cache.NamespaceEpisodeDetail),
	}, feedbackPatterns...)
)

// Router wires handlers, guards and middleware into a chi mux.
type Router struct {
	handler       *Handler
	guard         *authz.Guard
	authn         *auth.Middleware
	cache         *cache.ResponseCache
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiMw uses DefaultChiMiddlewareConfig
// and a nil rc disables response caching.
func NewRouter(handler *Handler, guard *authz.Guard, authn *auth.Middleware, rc *cache.ResponseCache, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	if rc == nil {
		rc = cache.NewResponseCache(nil, 0)
	}
	return &Router{
		handler:       handler,
		guard:         guard,
		authn:         authn,
		cache:         rc,
		chiMiddleware: chiMw,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
// This allows our existing middleware to work with Chi's r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// role requires an active account whose role may perform action on resource.
func (router *Router) role(resource, action string) func(http.Handler) http.Handler {
	return chiMiddleware(router.guard.RequireRole(resource, action))
}

// cached serves a GET route through the response cache.
func (router *Router) cached(namespace string, ttl time.Duration) func(http.Handler) http.Handler {
	return chiMiddleware(middleware.CacheResponse(router.cache, namespace, ttl))
}

// invalidates clears patterns after a successful write.
func (router *Router) invalidates(patterns []string) func(http.Handler) http.Handler {
	return chiMiddleware(middleware.InvalidateOnSuccess(router.cache, patterns...))
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(RequestIDWithLogging())      // X-Request-ID header and logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(RecoverJSON)                 // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		// ========================
		// Health Endpoints
		// ========================
		r.Route("/health", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitHealth())
			r.Get("/", h.Health)
			r.Get("/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())

			router.authRoutes(r)
			router.catalogRoutes(r)
			router.relationRoutes(r)
			router.adminRoutes(r)
		})
	})

	return r
}

// authRoutes registers /api/auth. Register and login get the strict limiter.
func (router *Router) authRoutes(r chi.Router) {
	h := router.handler

	r.Route("/auth", func(r chi.Router) {
		r.With(router.chiMiddleware.RateLimitAuth()).Post("/register", h.Register)
		r.With(router.chiMiddleware.RateLimitAuth()).Post("/login", h.Login)
		r.With(chiMiddleware(router.authn.RequireRefresh)).Post("/refresh", h.Refresh)
		r.With(chiMiddleware(router.authn.RequireAuthenticated)).Get("/me", h.Me)
	})
}

// catalogRoutes registers the cached resources plus production houses and
// producers. Reads are public.
func (router *Router) catalogRoutes(r chi.Router) {
	h := router.handler

	r.Route("/series", func(r chi.Router) {
		r.With(router.cached(cache.NamespaceSeries, ttlSeries)).Get("/", h.ListSeries)
		r.With(router.cached(cache.NamespaceSeriesDetail, ttlSeriesDetail)).Get("/{id}", h.GetSeries)
		r.With(router.role(authz.ResourceSeries, authz.ActionCreate), router.invalidates(seriesPatterns)).
			Post("/", h.CreateSeries)
		r.With(router.role(authz.ResourceSeries, authz.ActionUpdate), router.invalidates(seriesPatterns)).
			Put("/{id}", h.UpdateSeries)
		r.With(router.role(authz.ResourceSeries, authz.ActionDelete), router.invalidates(seriesDeletePatterns)).
			Delete("/{id}", h.DeleteSeries)
	})

	r.Route("/episodes", func(r chi.Router) {
		r.With(router.cached(cache.NamespaceEpisode, ttlEpisode)).Get("/", h.ListEpisodes)
		r.With(router.cached(cache.NamespaceEpisodeDetail, ttlEpisodeDetail)).Get("/{id}", h.GetEpisode)
		r.With(router.role(authz.ResourceEpisode, authz.ActionCreate), router.invalidates(episodePatterns)).
			Post("/", h.CreateEpisode)
		r.With(router.role(authz.ResourceEpisode, authz.ActionUpdate), router.invalidates(episodePatterns)).
			Put("/{id}", h.UpdateEpisode)
		r.With(router.role(authz.ResourceEpisode, authz.ActionDelete), router.invalidates(episodePatterns)).
			Delete("/{id}", h.DeleteEpisode)
	})

	r.Route("/feedback", func(r chi.Router) {
		r.With(router.cached(cache.NamespaceFeedback, ttlFeedback)).Get("/", h.ListFeedback)
		r.With(router.cached(cache.NamespaceFeedbackDetail, ttlFeedbackDetail)).Get("/{id}", h.GetFeedback)
		r.With(router.role(authz.ResourceFeedback, authz.ActionCreate), router.invalidates(feedbackPatterns)).
			Post("/", h.CreateFeedback)
		// Update and delete are decided by ownership in the handler
		r.With(chiMiddleware(router.guard.RequireAccount), router.invalidates(feedbackPatterns)).
			Put("/{id}", h.UpdateFeedback)
		r.With(chiMiddleware(router.guard.RequireAccount), router.invalidates(feedbackPatterns)).
			Delete("/{id}", h.DeleteFeedback)
	})

	r.Route("/production-houses", func(r chi.Router) {
		r.Get("/", h.ListProductionHouses)
		r.Get("/{id}", h.GetProductionHouse)
		r.With(router.role(authz.ResourceProductionHouse, authz.ActionCreate)).Post("/", h.CreateProductionHouse)
		r.With(router.role(authz.ResourceProductionHouse, authz.ActionUpdate)).Put("/{id}", h.UpdateProductionHouse)
		r.With(router.role(authz.ResourceProductionHouse, authz.ActionDelete)).Delete("/{id}", h.DeleteProductionHouse)
	})

	r.Route("/producers", func(r chi.Router) {
		r.Get("/", h.ListProducers)
		r.Get("/{id}", h.GetProducer)
		r.With(router.role(authz.ResourceProducer, authz.ActionCreate)).Post("/", h.CreateProducer)
		r.With(router.role(authz.ResourceProducer, authz.ActionUpdate)).Put("/{id}", h.UpdateProducer)
		r.With(router.role(authz.ResourceProducer, authz.ActionDelete)).Delete("/{id}", h.DeleteProducer)
	})
}

// relationRoutes registers the relationship tables. Reads are public.
func (router *Router) relationRoutes(r chi.Router) {
	h := router.handler

	r.Route("/producer-affiliations", func(r chi.Router) {
		r.Get("/", h.ListAffiliations)
		r.With(router.role(authz.ResourceAffiliation, authz.ActionCreate)).Post("/", h.CreateAffiliation)
		r.With(router.role(authz.ResourceAffiliation, authz.ActionDelete)).
			Delete("/{producer_id}/{house_id}", h.DeleteAffiliation)
	})

	r.Route("/telecasts", func(r chi.Router) {
		r.Get("/", h.ListTelecasts)
		r.With(router.role(authz.ResourceTelecast, authz.ActionCreate)).Post("/", h.CreateTelecast)
		r.With(router.role(authz.ResourceTelecast, authz.ActionUpdate)).Put("/{id}", h.UpdateTelecast)
		r.With(router.role(authz.ResourceTelecast, authz.ActionDelete)).Delete("/{id}", h.DeleteTelecast)
	})

	r.Route("/contracts", func(r chi.Router) {
		r.Get("/", h.ListContracts)
		r.With(router.role(authz.ResourceContract, authz.ActionCreate)).Post("/", h.CreateContract)
		r.With(router.role(authz.ResourceContract, authz.ActionUpdate)).Put("/{id}", h.UpdateContract)
		r.With(router.role(authz.ResourceContract, authz.ActionDelete)).Delete("/{id}", h.DeleteContract)
	})

	r.Route("/subtitle-languages", func(r chi.Router) {
		r.Get("/", h.ListSubtitles)
		r.With(router.role(authz.ResourceSubtitle, authz.ActionCreate)).Post("/", h.CreateSubtitle)
		r.With(router.role(authz.ResourceSubtitle, authz.ActionDelete)).
			Delete("/{webseries_id}/{language}", h.DeleteSubtitle)
	})

	r.Route("/releases", func(r chi.Router) {
		r.Get("/", h.ListReleases)
		r.With(router.role(authz.ResourceRelease, authz.ActionCreate)).Post("/", h.CreateRelease)
		r.With(router.role(authz.ResourceRelease, authz.ActionUpdate)).
			Put("/{webseries_id}/{country_name}", h.UpdateRelease)
		r.With(router.role(authz.ResourceRelease, authz.ActionDelete)).
			Delete("/{webseries_id}/{country_name}", h.DeleteRelease)
	})
}

// adminRoutes registers /api/admin. Every route requires the Admin role.
func (router *Router) adminRoutes(r chi.Router) {
	h := router.handler
	read := router.role(authz.ResourceAdmin, authz.ActionRead)
	create := router.role(authz.ResourceAdmin, authz.ActionCreate)
	update := router.role(authz.ResourceAdmin, authz.ActionUpdate)
	remove := router.role(authz.ResourceAdmin, authz.ActionDelete)

	r.Route("/admin", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.With(read).Get("/", h.AdminListUsers)
			r.With(read).Get("/{id}", h.AdminGetUser)
			r.With(update).Put("/{id}/role", h.AdminSetRole)
			r.With(update).Put("/{id}/status", h.AdminSetStatus)
			// Deleting an account cascades its feedback
			r.With(remove, router.invalidates(feedbackPatterns)).Delete("/{id}", h.AdminDeleteUser)
			r.With(update).Post("/{id}/reset-password", h.AdminResetPassword)
		})

		r.With(read).Get("/stats", h.AdminStats)
		r.With(read).Get("/logs", h.AdminLogs)

		r.Route("/countries", func(r chi.Router) {
			r.With(read).Get("/", h.AdminListCountries)
			r.With(create).Post("/", h.AdminCreateCountry)
			r.With(remove).Delete("/{name}", h.AdminDeleteCountry)
		})

		r.Route("/maintenance", func(r chi.Router) {
			r.With(update).Post("/vacuum", h.AdminVacuum)
			r.With(create).Post("/backup", h.AdminBackup)
		})

		r.Route("/cache", func(r chi.Router) {
			r.With(remove).Post("/clear", h.AdminClearCache)
			r.With(remove).Post("/clear/{pattern}", h.AdminClearCachePattern)
			r.With(read).Get("/stats", h.AdminCacheStats)
		})
	})
}
