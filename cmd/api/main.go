package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tecknovice/blogapi/internal/auth"
	"github.com/tecknovice/blogapi/internal/blogs"
	"github.com/tecknovice/blogapi/internal/config"
	"github.com/tecknovice/blogapi/internal/content"
	"github.com/tecknovice/blogapi/internal/db"
	"github.com/tecknovice/blogapi/internal/httpserver"
	"github.com/tecknovice/blogapi/internal/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	if err := db.Migrate(dbConn); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	userStore := users.NewPostgresStore(dbConn)
	blogStore := blogs.NewPostgresStore(dbConn)
	denylist := auth.NewPostgresDenylist(dbConn)

	ctx := context.Background()
	if cfg.AdminSeedPath != "" {
		if err := users.SeedAdmins(ctx, userStore, cfg.AdminSeedPath); err != nil {
			log.Fatalf("seed admins: %v", err)
		}
	}

	authSvc := auth.NewService(userStore, denylist, cfg.JWTSecret, cfg.JWTTTL)
	userSvc := users.NewService(userStore, blogStore)
	blogSvc := blogs.NewService(blogStore, userStore)
	contentSvc := content.NewService(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.ContentTimeout, logger)

	handler := httpserver.NewRouter(
		authSvc,
		auth.NewHandler(authSvc),
		users.NewHandler(userSvc),
		blogs.NewHandler(blogSvc),
		content.NewHandler(contentSvc),
	)
	server := httpserver.New(":"+cfg.Port, handler, logger)

	// drop denylist rows once the tokens behind them have expired
	pruneCtx, stopPrune := context.WithCancel(ctx)
	defer stopPrune()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-pruneCtx.Done():
				return
			case <-ticker.C:
				if n, err := denylist.PruneExpired(pruneCtx); err != nil {
					logger.Error("denylist prune failed", "err", err)
				} else if n > 0 {
					logger.Info("denylist pruned", "removed", n)
				}
			}
		}
	}()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	logger.Info("server exited")
}
