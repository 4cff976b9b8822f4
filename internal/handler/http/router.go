package http

import (
	"log/slog"
	"os"

	"github.com/biotrack-io/attendance-engine-go/internal/handler/http/middleware"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	metricsHandler MetricsHandler,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires a service token
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/metrics", func(r chi.Router) {
				r.Get("/daily", metricsHandler.GetDailyMetrics)
				r.Get("/expected-headcount", metricsHandler.GetTEE)
				r.Get("/baseline", metricsHandler.GetBaseline)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/records", attendanceHandler.ListRecords)
				r.Get("/punches", attendanceHandler.ListPunches)
				r.Post("/resolve-missing-punchouts", attendanceHandler.RunResolution)
				r.Post("/rebuild", attendanceHandler.RunRebuild)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily.xlsx", reportHandler.GetDailyWorkbook)
			})
		})
	})
	return r
}
