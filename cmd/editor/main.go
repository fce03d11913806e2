package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"scene-editor/internal/common/config"
	"scene-editor/internal/common/middleware"
	"scene-editor/internal/editor/handlers"
	"scene-editor/internal/editor/repository"
	"scene-editor/internal/editor/service"
	"scene-editor/internal/editor/sketch"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Scene Editor Service
// ============================================================

func main() {
	cfg := config.Load()

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), "migrations/001_init_scenes.sql"); err != nil {
		log.Fatalf("init db: %v", err)
	}

	sessions := service.NewSessionManager(service.Config{
		PickRadius: cfg.PickRadius,
		Sketch: sketch.Config{
			SnapStep:         cfg.SnapStep,
			ClosureTolerance: cfg.ClosureTolerance,
			CircleSegments:   cfg.CircleSegments,
			DefaultDepth:     cfg.DefaultDepth,
		},
		DefaultColor: "#8888ff",
		MoveStep:     cfg.SnapStep,
		RotateStep:   math.Pi / 12,
		ScaleStep:    1.1,
	})
	editorHandler := handlers.NewEditorHandler(sessions, repo)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Scene Editor Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Session Routes
	// ============================================================

	app.Post("/sessions", editorHandler.CreateSession)
	app.Delete("/sessions/:token", editorHandler.CloseSession)
	app.Get("/sessions/:token/state", editorHandler.GetState)
	app.Get("/sessions/:token/keymap", editorHandler.Keymap)
	app.Post("/sessions/:token/key", editorHandler.Key)

	// ============================================================
	// Entity Routes
	// ============================================================

	app.Get("/sessions/:token/entities", editorHandler.ListEntities)
	app.Post("/sessions/:token/entities", editorHandler.CreateEntity)
	app.Delete("/sessions/:token/selection", editorHandler.DeleteSelection)
	app.Post("/sessions/:token/pick", editorHandler.Pick)
	app.Post("/sessions/:token/selection/clear", editorHandler.ClearSelection)
	app.Post("/sessions/:token/transform", editorHandler.Transform)
	app.Post("/sessions/:token/group", editorHandler.Group)
	app.Post("/sessions/:token/ungroup", editorHandler.Ungroup)
	app.Post("/sessions/:token/recolor", editorHandler.Recolor)
	app.Post("/sessions/:token/undo", editorHandler.Undo)
	app.Post("/sessions/:token/redo", editorHandler.Redo)
	app.Post("/sessions/:token/edge-pull/start", editorHandler.EdgePullStart)
	app.Post("/sessions/:token/edge-pull/move", editorHandler.EdgePullMove)
	app.Post("/sessions/:token/edge-pull/finish", editorHandler.EdgePullFinish)

	// ============================================================
	// Sketch Routes
	// ============================================================

	app.Post("/sessions/:token/sketch/points", editorHandler.SketchAddPoint)
	app.Post("/sessions/:token/sketch/finish", editorHandler.SketchFinish)
	app.Post("/sessions/:token/sketch/rectangle", editorHandler.SketchRectangle)
	app.Post("/sessions/:token/sketch/circle", editorHandler.SketchCircle)
	app.Post("/sessions/:token/sketch/extrude", editorHandler.SketchExtrude)
	app.Post("/sessions/:token/sketch/clear", editorHandler.SketchClear)

	// ============================================================
	// Scene Routes
	// ============================================================

	app.Get("/sessions/:token/export", editorHandler.ExportScene)
	app.Post("/sessions/:token/import", editorHandler.ImportScene)
	app.Post("/sessions/:token/scenes", editorHandler.SaveScene)
	app.Get("/sessions/:token/scenes", editorHandler.ListScenes)
	app.Post("/sessions/:token/scenes/:id/load", editorHandler.LoadScene)
	app.Delete("/sessions/:token/scenes/:id", editorHandler.DeleteScene)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Scene Editor Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
