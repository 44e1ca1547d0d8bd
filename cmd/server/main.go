package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mpfops/roster/internal/config"
	"github.com/mpfops/roster/internal/database"
	"github.com/mpfops/roster/internal/handler"
	"github.com/mpfops/roster/internal/queue"
	"github.com/mpfops/roster/internal/repository"
	"github.com/mpfops/roster/internal/router"
	"github.com/mpfops/roster/internal/view"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("ensure schema: %v", err)
	}
	// First-boot bootstrap: default admin account and the seed missions.
	if err := database.Seed(ctx, db, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatalf("seed database: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		// Sessions live in Redis; without it nobody can log in.
		log.Fatal("redis unavailable: sessions require a reachable Redis server")
	}

	sessions := repository.NewSessionRepo(rdb, time.Duration(cfg.SessionTTLHours)*time.Hour)
	users := repository.NewUserRepo(db)
	missions := repository.NewMissionRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	onCalls := repository.NewOnCallRepo(db)

	renderer, err := view.New(cfg.TemplateDir)
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer
	e.HideBanner = true

	router.Register(e, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, sessions),
		Dashboard: handler.NewDashboardHandler(users, missions, assignments, onCalls, sessions),
		Users:     handler.NewUsersHandler(cfg, users, sessions),
		Missions:  handler.NewMissionsHandler(missions, sessions),
		Assign:    handler.NewAssignHandler(users, missions, assignments, onCalls, sessions),
		Export:    handler.NewExportHandler(assignments, onCalls),
	}, sessions, cfg, rdb)

	// Audit trail consumer; reconnects on its own and never blocks requests.
	go func() {
		if err := queue.StartRosterConsumer(); err != nil {
			log.Printf("roster consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
