package main

import (
	"database/sql"
	"log"
	"net/http"

	_ "github.com/go-sql-driver/mysql"

	"rentloBack/internal/config"
	"rentloBack/internal/handlers"
	"rentloBack/internal/repositories"
	"rentloBack/internal/services"
	"rentloBack/utils"
)

type application struct {
	errorLog       *log.Logger
	infoLog        *log.Logger
	signingKey     string
	db             *sql.DB
	wsManager      *WebSocketManager
	userRepo       *repositories.UserRepository
	userHandler    *handlers.UserHandler
	postHandler    *handlers.PostHandler
	rentalHandler  *handlers.RentalHandler
	messageHandler *handlers.MessageHandler
	messageService *services.MessageService
	fcmHandler     *handlers.FCMHandler
}

func initializeApp(db *sql.DB, cfg config.Config, fcmHandler *handlers.FCMHandler, errorLog, infoLog *log.Logger) *application {
	storage := utils.NewS3Storage(
		cfg.Storage.Endpoint,
		cfg.Storage.Region,
		cfg.Storage.Bucket,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
	)

	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	postRepo := repositories.PostRepository{DB: db}
	rentalRepo := repositories.RentalRepository{DB: db}
	messageRepo := repositories.MessageRepository{DB: db}

	// Services
	userService := &services.UserService{
		UserRepo:   &userRepo,
		PostRepo:   &postRepo,
		RentalRepo: &rentalRepo,
		Storage:    storage,
		SigningKey: cfg.JWT.SigningKey,
		NoImageURL: storage.ObjectURL("users", "no-img.png"),
	}
	postService := &services.PostService{
		PostRepo:   &postRepo,
		RentalRepo: &rentalRepo,
		UserRepo:   &userRepo,
		Storage:    storage,
	}
	rentalService := &services.RentalService{
		RentalRepo: &rentalRepo,
		PostRepo:   &postRepo,
		UserRepo:   &userRepo,
	}
	messageService := &services.MessageService{
		MessageRepo: &messageRepo,
		UserRepo:    &userRepo,
	}

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService, Storage: storage}
	postHandler := &handlers.PostHandler{Service: postService, Storage: storage}
	rentalHandler := &handlers.RentalHandler{Service: rentalService}
	messageHandler := &handlers.MessageHandler{MessageService: messageService}

	return &application{
		errorLog:       errorLog,
		infoLog:        infoLog,
		signingKey:     cfg.JWT.SigningKey,
		db:             db,
		wsManager:      NewWebSocketManager(fcmHandler),
		userRepo:       &userRepo,
		userHandler:    userHandler,
		postHandler:    postHandler,
		rentalHandler:  rentalHandler,
		messageHandler: messageHandler,
		messageService: messageService,
		fcmHandler:     fcmHandler,
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Embedder-Policy", "require-corp")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
