package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Cdiksha/Smart-ToDo/internal/config"
	"github.com/Cdiksha/Smart-ToDo/internal/handler"
	"github.com/Cdiksha/Smart-ToDo/internal/mailer"
	"github.com/Cdiksha/Smart-ToDo/internal/repo"
	"github.com/Cdiksha/Smart-ToDo/internal/scheduler"
	"github.com/Cdiksha/Smart-ToDo/internal/service"
	"github.com/Cdiksha/Smart-ToDo/internal/session"
	"github.com/Cdiksha/Smart-ToDo/internal/view"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключаем БД
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to Database.")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Failed to ping the Database.")
	}
	logger.Info("Successfully connected to the Database!")

	// Схема создается при старте, если ее еще нет
	if err := repo.EnsureSchema(context.Background(), pool); err != nil {
		logger.Fatal("Failed to ensure schema", zap.Error(err))
	}

	users := repo.NewUserRepo(pool)
	columns := repo.NewColumnRepo(pool)
	tasks := repo.NewTaskRepo(pool)

	boardService := service.NewBoardService(tasks, columns)
	authService := service.NewAuthService(users, boardService)

	sessions := session.NewManager(cfg.SecretKey)

	renderer, err := view.New(logger)
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	authHandler := handler.NewAuthHandler(authService, sessions, renderer, logger)
	boardHandler := handler.NewBoardHandler(boardService, users, sessions, renderer, logger)
	taskHandler := handler.NewTaskHandler(boardService, sessions, logger)

	r := handler.NewRouter(authHandler, boardHandler, taskHandler, sessions)

	// Фоновый цикл напоминаний
	smtp := mailer.NewSMTP(cfg.Mail)
	if !smtp.Configured() {
		logger.Info("Mail credentials are not set, reminders will be skipped")
	}
	reminder := scheduler.NewReminder(tasks, users, smtp, logger, cfg.ReminderInterval)
	reminder.Start(context.Background())

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	reminder.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	logger.Info("Server stopped succsessfully!")
}
