package main

import (
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"tasknest/app/config"
	"tasknest/app/controllers"
	"tasknest/app/middleware"
	"tasknest/app/routes"
	"tasknest/app/services"
	"tasknest/app/session"
	"tasknest/app/store"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tasknest",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", "err", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", "path", cfg.DBPath, "err", err)
	}

	// Initialize the service layer
	authService := services.NewAuthService(db)
	listService := services.NewListService(db)
	taskService := services.NewTaskService(db)

	sessionManager := session.NewManager([]byte(cfg.SessionSecret), cfg.SessionName)

	// Initialize the controller layer
	authController := controllers.NewAuthController(authService, sessionManager)
	listController := controllers.NewListController(listService, taskService)
	taskController := controllers.NewTaskController(taskService)

	// Setup HTTP server
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterRoutes(router, authController, listController, taskController, sessionManager)

	handler := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.CORSOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)(router)
	handler = handlers.RecoveryHandler()(handler)

	logger.Info("server listening", "addr", cfg.Addr, "db", cfg.DBPath)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}
