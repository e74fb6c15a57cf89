package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "launchboard/docs"
	"launchboard/internal/cache"
	"launchboard/internal/config"
	"launchboard/internal/domain/product"
	"launchboard/internal/domain/user"
	"launchboard/internal/domain/vote"
	api "launchboard/internal/http"
	"launchboard/internal/metrics"
	"launchboard/internal/migrate"
	"launchboard/internal/platform/database"
	jwtpkg "launchboard/internal/platform/jwt"
	"launchboard/internal/repository/postgres"
	"launchboard/internal/worker"
)

// @title           Launchboard API
// @version         1.0
// @description     Community product-launch board with JWT auth
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	db, err := database.NewPostgres(cfg.DB_DSN)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	if err := migrate.Up(context.Background(), db); err != nil {
		log.Fatalf("migrate error: %v", err)
	}

	metrics.Register()

	userRepo := postgres.NewUserRepo(db)
	productRepo := postgres.NewProductRepo(db)
	voteRepo := postgres.NewVoteRepo(db)

	listings := cache.New[product.Product](cfg.CacheTTL)

	userSvc := user.NewService(userRepo)
	productSvc := product.NewService(productRepo, listings)
	voteSvc := vote.NewService(voteRepo, listings)

	jwtMgr := jwtpkg.NewManager(cfg.JWTSecret, "launchboard")

	voteCh := make(chan worker.VoteEvent, 100)
	statsWorker := worker.NewStatsWorker(voteCh)

	router := api.NewRouter(userSvc, productSvc, voteSvc, jwtMgr, voteCh, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go statsWorker.Run(ctx)

	go func() {
		log.Printf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}

	log.Println("server stopped")
}
