package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cricboard/league-system/handlers"
	"github.com/cricboard/league-system/middleware"
	"github.com/cricboard/league-system/models"
)

// SetupRoutes wires the public read surface, the admin mutations and the
// websocket endpoint onto the router.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	seasonHandler *handlers.SeasonHandler,
	scheduleHandler *handlers.ScheduleHandler,
	matchHandler *handlers.MatchHandler,
	teamHandler *handlers.TeamHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.NewRateLimiter(10, 30).Handler)

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.Authorize(models.RoleAdmin, models.RoleSuperAdmin)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)
	router.With(authenticate).Get("/users/me", authHandler.Me)

	router.Route("/seasons", func(r chi.Router) {
		r.Get("/", seasonHandler.List)
		r.Get("/{seasonNumber}", seasonHandler.Get)
		r.Get("/{seasonNumber}/schedule", scheduleHandler.GetSeasonSchedule)
		r.Get("/{seasonNumber}/points-table", scheduleHandler.GetPointsTable)
		r.Get("/{seasonNumber}/matches", matchHandler.ListBySeason)
		r.Get("/{seasonNumber}/teams", teamHandler.ListBySeason)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", seasonHandler.Create)
			r.Delete("/{seasonNumber}", seasonHandler.Delete)
			r.Put("/{seasonNumber}/current", seasonHandler.SetCurrent)
			r.Put("/{seasonNumber}/schedule-time", seasonHandler.UpdateScheduleTime)
			r.Post("/{seasonNumber}/schedule", scheduleHandler.GenerateGroups)
			r.Delete("/{seasonNumber}/schedule", scheduleHandler.DeleteGroups)
			r.Delete("/{seasonNumber}/matches", seasonHandler.DeleteMatches)
		})
	})

	router.Get("/schedule/latest", scheduleHandler.GetLatestSchedule)

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", matchHandler.Create)
			// Fixture generation takes ?season=<number or id>.
			r.Post("/generate", seasonHandler.GenerateFixtures)
			r.Patch("/{matchID}/result", matchHandler.UpdateResult)
			r.Patch("/{matchID}/live-score", matchHandler.UpdateLiveScore)
			r.Delete("/{matchID}", matchHandler.Delete)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Post("/", teamHandler.Register)
		r.Get("/{teamID}", teamHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Put("/{teamID}/approve", teamHandler.Approve)
			r.Put("/{teamID}/reject", teamHandler.Reject)
			r.Put("/{teamID}/roster/{slotNo}", teamHandler.BindPlayer)
		})
	})

	router.Get("/ws/matches/{matchID}", webSocketHandler.ServeWs)
}
