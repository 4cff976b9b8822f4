package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/config"
	appHTTP "github.com/biotrack-io/attendance-engine-go/internal/handler/http"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/cache"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/cron"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/database"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/jwt"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/keylock"
	"github.com/biotrack-io/attendance-engine-go/internal/repository/postgresql"
	"github.com/biotrack-io/attendance-engine-go/internal/service/aggregator"
	"github.com/biotrack-io/attendance-engine-go/internal/service/classifier"
	"github.com/biotrack-io/attendance-engine-go/internal/service/estimator"
	metricsService "github.com/biotrack-io/attendance-engine-go/internal/service/metrics"
	"github.com/biotrack-io/attendance-engine-go/internal/service/report"
	"github.com/biotrack-io/attendance-engine-go/internal/service/resolver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, database.PoolConfig{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	punchRepo := postgresql.NewPunchRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	recordLocks := keylock.New()
	snapshotCache := cache.New(cfg.Policy.SnapshotCacheTTL, time.Now)

	punchClassifier := classifier.New(classifier.NewPolicy(
		cfg.Policy.GracePeriodMinutes,
		cfg.Policy.LateCheckoutThresholdMins,
	))
	aggregatorSvc := aggregator.NewService(
		db,
		punchRepo,
		employeeRepo,
		attendanceRepo,
		punchClassifier,
		recordLocks,
		aggregator.NewPolicy(cfg.Policy.LatenessCutoff, cfg.Policy.BatchChunkSize),
	)
	estimatorSvc := estimator.NewService(attendanceRepo, cfg.Policy.HeadcountWindowDays, time.Now)
	resolverSvc := resolver.NewService(
		attendanceRepo,
		recordLocks,
		resolver.Policy{
			CreditHours: cfg.Policy.MissingPunchOutCredit,
			ChunkSize:   cfg.Policy.BatchChunkSize,
		},
		time.Now,
	)
	metricsSvc := metricsService.NewCalculator(
		employeeRepo,
		attendanceRepo,
		estimatorSvc,
		snapshotCache,
		cfg.Policy.BiometricCapacity,
		time.Now,
	)
	reportSvc := report.NewService(metricsSvc, attendanceRepo, employeeRepo)

	scheduler := cron.NewScheduler()
	jobs := cron.NewReconciliationJobs(aggregatorSvc, resolverSvc, time.Now)
	jobs.RegisterJobs(scheduler, cfg.Policy.ResolverInterval)
	scheduler.Start()
	defer scheduler.Stop()

	metricsHandler := appHTTP.NewMetricsHandler(metricsSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceRepo, punchRepo, employeeRepo, resolverSvc, aggregatorSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		metricsHandler,
		attendanceHandler,
		reportHandler,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
