// File: cmd/console/main.go
package main

import (
    "context"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/glebarez/sqlite"
    "github.com/gorilla/mux"
    "gorm.io/gorm"

    "github.com/salucare/triage-console/internal/backend"
    "github.com/salucare/triage-console/internal/config"
    "github.com/salucare/triage-console/internal/handlers"
    "github.com/salucare/triage-console/internal/logger"
    "github.com/salucare/triage-console/internal/middleware"
    "github.com/salucare/triage-console/internal/ratelimit"
    analysisrepo "github.com/salucare/triage-console/internal/repository/analysis"
    authrepo "github.com/salucare/triage-console/internal/repository/auth"
    "github.com/salucare/triage-console/internal/services/analysis"
    "github.com/salucare/triage-console/internal/services/authstore"
    "github.com/salucare/triage-console/internal/services/board"
    "github.com/salucare/triage-console/internal/services/watcher"
)

func main() {
    cfg := config.Load()
    appLog := logger.New("console", cfg.LogFilePath, cfg.IsProduction())

    db, err := gorm.Open(sqlite.Open(cfg.StorePath), &gorm.Config{})
    if err != nil {
        log.Fatalf("DB Error: %v", err)
    }
    if err := authrepo.Migrate(db); err != nil {
        log.Fatalf("DB Migration Error: %v", err)
    }
    if err := analysisrepo.Migrate(db); err != nil {
        log.Fatalf("DB Migration Error: %v", err)
    }

    // --- Repositories ---
    authRepository := authrepo.NewAuthRepository(db)
    analysisRepository := analysisrepo.NewAnalysisRepository(db)

    // --- Backend client + auth store ---
    // The store feeds the client its token; the client's 401 hook tears the
    // store down. Both sides are wired after construction to break the cycle.
    store := authstore.NewStore(nil, authRepository, logger.New("authstore", cfg.LogFilePath, cfg.IsProduction()))

    backendCfg := backend.DefaultConfig(cfg.BackendBaseURL)
    backendCfg.Timeout = cfg.BackendTimeout
    api, err := backend.NewClient(backendCfg, store.Token, logger.New("backend", cfg.LogFilePath, cfg.IsProduction()))
    if err != nil {
        log.Fatalf("FATAL: Failed to initialize backend client: %v", err)
    }
    store.SetBackend(api)

    // --- Services ---
    watchCfg := watcher.Config{PollInterval: cfg.PollInterval, TypingDebounce: cfg.TypingDebounce}
    watchers, err := watcher.NewManager(api, watcher.NewTimerScheduler(), watchCfg, logger.New("watcher", cfg.LogFilePath, cfg.IsProduction()))
    if err != nil {
        log.Fatalf("FATAL: Failed to initialize watcher manager: %v", err)
    }
    analysisService := analysis.NewService(api, analysisRepository, logger.New("analysis", cfg.LogFilePath, cfg.IsProduction()))
    requestBoard := board.New(api, logger.New("board", cfg.LogFilePath, cfg.IsProduction()))

    guard := middleware.NewSessionGuard()
    loginLimiter := ratelimit.New(ratelimit.LoginConfig())
    defer loginLimiter.Close()

    // A 401 from any call logs everyone out: watchers stop, the persisted
    // session is cleared, every browser cookie dies.
    api.OnUnauthorized(func() {
        appLog.Warn("backend returned 401, tearing session down")
        watchers.CloseAll()
        store.ForceLogout()
        guard.RevokeAll()
    })

    // Restore the persisted session so a restart does not log operators out.
    store.Init(context.Background())

    // --- Handlers ---
    authHandler := handlers.NewAuthHandler(store, guard, loginLimiter, watchers, logger.New("auth", cfg.LogFilePath, cfg.IsProduction()))
    pageHandler := handlers.NewPageHandler(api, store, requestBoard, watchers, logger.New("pages", cfg.LogFilePath, cfg.IsProduction()))
    conversationHandler := handlers.NewConversationHandler(api, watchers, logger.New("conversation", cfg.LogFilePath, cfg.IsProduction()))
    boardHandler := handlers.NewBoardHandler(api, requestBoard, analysisService, logger.New("requests", cfg.LogFilePath, cfg.IsProduction()))
    departmentHandler := handlers.NewDepartmentHandler(api, logger.New("departments", cfg.LogFilePath, cfg.IsProduction()))

    // --- Router Setup ---
    r := mux.NewRouter()
    authMiddleware := middleware.RequireAuth(store, guard, appLog)
    adminMiddleware := middleware.RequireAdmin(store, appLog)

    r.Use(middleware.RecoverPanic(appLog))
    r.Use(middleware.RequestLogging(appLog))

    // --- Public Routes ---
    r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
    r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("OK"))
    }).Methods("GET")
    r.HandleFunc("/login", authHandler.ShowLoginPage).Methods("GET")
    r.Handle("/login", middleware.LoginRateLimit(loginLimiter, appLog)(http.HandlerFunc(authHandler.Login))).Methods("POST")
    r.HandleFunc("/logout", authHandler.Logout).Methods("POST")
    r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
        http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
    }).Methods("GET")

    // --- Protected Pages ---
    protected := r.PathPrefix("/").Subrouter()
    protected.Use(authMiddleware)
    protected.HandleFunc("/dashboard", pageHandler.ShowDashboard).Methods("GET")
    protected.HandleFunc("/requests", pageHandler.ShowRequests).Methods("GET")
    protected.HandleFunc("/conversation/{sessionID}", pageHandler.ShowConversation).Methods("GET")
    protected.HandleFunc("/my-conversations", pageHandler.ShowMyConversations).Methods("GET")

    // --- Protected JSON endpoints the pages poll ---
    console := protected.PathPrefix("/console").Subrouter()
    console.HandleFunc("/sessions/{sessionID}/messages", conversationHandler.Messages).Methods("GET")
    console.HandleFunc("/sessions/{sessionID}/typing", conversationHandler.Typing).Methods("POST")
    console.HandleFunc("/sessions/{sessionID}/send", conversationHandler.Send).Methods("POST")
    console.HandleFunc("/sessions/{sessionID}/refresh", conversationHandler.Refresh).Methods("POST")
    console.HandleFunc("/sessions/{sessionID}/close", conversationHandler.Close).Methods("POST")
    console.HandleFunc("/sessions/{sessionID}/intervene", conversationHandler.Intervene).Methods("POST")
    console.HandleFunc("/sessions/{sessionID}/notes", conversationHandler.Notes).Methods("GET")
    console.HandleFunc("/sessions/{sessionID}/notes", conversationHandler.AddNote).Methods("POST")
    console.HandleFunc("/sessions/{sessionID}/analysis", boardHandler.Analysis).Methods("GET")
    console.HandleFunc("/sessions/{sessionID}/analysis/note", boardHandler.AnalysisNote).Methods("POST")
    console.HandleFunc("/sessions/{sessionID}/analysis", boardHandler.InvalidateAnalysis).Methods("DELETE")
    console.HandleFunc("/requests", boardHandler.List).Methods("GET")
    console.HandleFunc("/requests/select", boardHandler.Select).Methods("POST")
    console.HandleFunc("/requests/{handoffID}/respond", boardHandler.Respond).Methods("POST")
    console.HandleFunc("/requests/{handoffID}/resolve", boardHandler.Resolve).Methods("POST")
    console.HandleFunc("/requests/{handoffID}/reassign", boardHandler.Reassign).Methods("POST")
    console.HandleFunc("/agents", boardHandler.Agents).Methods("GET")

    // --- Admin-only department management ---
    adminPageRoutes := r.PathPrefix("/departments").Subrouter()
    adminPageRoutes.Use(authMiddleware)
    adminPageRoutes.Use(adminMiddleware)
    adminPageRoutes.HandleFunc("", pageHandler.ShowDepartments).Methods("GET")

    adminAPIRoutes := r.PathPrefix("/console/departments").Subrouter()
    adminAPIRoutes.Use(authMiddleware)
    adminAPIRoutes.Use(adminMiddleware)
    adminAPIRoutes.HandleFunc("", departmentHandler.List).Methods("GET")
    adminAPIRoutes.HandleFunc("", departmentHandler.Create).Methods("POST")
    adminAPIRoutes.HandleFunc("/{departmentID}", departmentHandler.Update).Methods("PUT")
    adminAPIRoutes.HandleFunc("/{departmentID}/toggle", departmentHandler.Toggle).Methods("PATCH")

    // --- Custom Error Handlers ---
    r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        pageHandler.ShowErrorPage(w, "404", "Página no encontrada", "La página que buscás no existe.")
    })
    r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        pageHandler.ShowErrorPage(w, "405", "Método no permitido", "El método no está permitido para este recurso.")
    })

    srv := &http.Server{
        Addr:    ":" + cfg.ServerPort,
        Handler: r,
    }

    appLog.Info("console starting",
        "port", cfg.ServerPort,
        "backend", cfg.BackendBaseURL,
        "store", cfg.StorePath,
        "environment", cfg.Environment,
    )

    go func() {
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("Server startup failed: %v", err)
        }
    }()

    // --- Graceful Shutdown ---
    stop := make(chan os.Signal, 1)
    signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
    <-stop

    appLog.Info("shutting down")
    watchers.CloseAll()

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := srv.Shutdown(ctx); err != nil {
        appLog.Error("shutdown error", "error", err)
    }
}
