package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/skillbridge/skillbridge/internal/access"
	"github.com/skillbridge/skillbridge/internal/assessment"
	"github.com/skillbridge/skillbridge/internal/auth"
	"github.com/skillbridge/skillbridge/internal/dispute"
	"github.com/skillbridge/skillbridge/internal/skill"
	"github.com/skillbridge/skillbridge/internal/skillgap"
	"github.com/skillbridge/skillbridge/internal/training"
	"github.com/skillbridge/skillbridge/internal/transport/middleware"
	"github.com/skillbridge/skillbridge/internal/transport/swagger"
)

type Handlers struct {
	Auth       *auth.Handler
	Skill      *skill.Handler
	Assessment *assessment.Handler
	SkillGap   *skillgap.Handler
	Dispute    *dispute.Handler
	Training   *training.Handler
}

// RegisterAllRoutes wires every endpoint onto the router. Route groups map
// onto the application surfaces: employee routes need any authenticated
// user, team-lead routes the live team_lead surface, admin routes the
// system_administrator surface.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authService *auth.Service, handlers Handlers, metricsHandler http.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Group(func(pr chi.Router) {
			pr.Use(middleware.Authenticate(authService))
			pr.Use(middleware.LoggingMiddleware(logger))

			pr.Get("/users/me", handlers.Auth.Me)

			pr.Route("/skills", func(sr chi.Router) {
				sr.Get("/", handlers.Skill.GetSkills)
				sr.Get("/{id}", handlers.Skill.GetSkillByID)
				sr.Get("/{id}/benchmark", handlers.Skill.GetCurrentBenchmark)

				sr.Group(func(ar chi.Router) {
					ar.Use(middleware.RequireSurface(access.SurfaceSystemAdmin))
					ar.Put("/{id}/benchmark", handlers.Skill.SetBenchmark)
				})
			})

			pr.Route("/assessments", func(ar chi.Router) {
				ar.Get("/{id}", handlers.Assessment.GetAssessment)

				ar.Group(func(lr chi.Router) {
					lr.Use(middleware.RequireSurface(access.SurfaceTeamLead, access.SurfaceSystemAdmin))
					lr.Post("/", handlers.Assessment.RecordAssessment)
					lr.Patch("/{id}", handlers.Assessment.UpdateAssessment)
					lr.Post("/{id}/lock", handlers.Assessment.LockAssessment)
					lr.Post("/{id}/recompute", handlers.SkillGap.RecomputeAssessment)
				})
			})

			pr.Route("/employees/{employeeID}", func(er chi.Router) {
				er.Get("/assessments", handlers.Assessment.ListEmployeeAssessments)
				er.Get("/training-needs", handlers.SkillGap.GetEmployeeTrainingNeeds)
			})

			pr.Route("/cycles", func(cr chi.Router) {
				cr.Get("/", handlers.Assessment.ListCycles)
				cr.Get("/active", handlers.Assessment.GetActiveCycle)

				cr.Group(func(ar chi.Router) {
					ar.Use(middleware.RequireSurface(access.SurfaceSystemAdmin))
					ar.Post("/", handlers.Assessment.CreateCycle)
					ar.Post("/{id}/activate", handlers.Assessment.ActivateCycle)
				})
			})

			pr.Route("/disputes", func(dr chi.Router) {
				dr.Post("/", handlers.Dispute.SubmitDispute)
				dr.Get("/mine", handlers.Dispute.ListMyDisputes)
				dr.Get("/{id}", handlers.Dispute.GetDispute)
				dr.Get("/{id}/audit", handlers.Dispute.GetAuditTrail)

				dr.Group(func(ar chi.Router) {
					ar.Use(middleware.RequireSurface(access.SurfaceSystemAdmin))
					ar.Get("/open", handlers.Dispute.ListOpenDisputes)
					ar.Post("/{id}/resolve", handlers.Dispute.ResolveDispute)
				})
			})

			pr.Route("/training-needs", func(tr chi.Router) {
				tr.Use(middleware.RequireSurface(access.SurfaceSystemAdmin))
				tr.Get("/outstanding", handlers.SkillGap.GetOutstandingTrainingNeeds)
			})

			pr.Route("/training-sessions", func(tr chi.Router) {
				tr.Get("/", handlers.Training.ListSessions)
				tr.Get("/{id}", handlers.Training.GetSession)

				tr.Group(func(ar chi.Router) {
					ar.Use(middleware.RequireSurface(access.SurfaceSystemAdmin))
					ar.Post("/", handlers.Training.ScheduleSession)
					ar.Post("/{id}/assign", handlers.Training.AssignEmployee)
					ar.Post("/{id}/attendance", handlers.Training.MarkAttendance)
					ar.Post("/{id}/complete", handlers.Training.CompleteSession)
				})
			})
		})
	})
}
