package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/configs"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/logger"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/pkg/taskqueue"
	"github.com/luis-eduardo-caicedo/SistemaGestionDePedidos/routes"
)

func main() {
	cfg := configs.LoadConfig()

	log := logger.New()
	defer log.Sync()

	// DB
	db, err := configs.OpenDB(cfg)
	if err != nil {
		log.Fatal("open database failed", zap.Error(err))
	}

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	if err := configs.SeedAdmin(db, cfg); err != nil {
		log.Fatal("seed admin failed", zap.Error(err))
	}

	// background workers for reports and bulk imports
	queue := taskqueue.New(cfg.QueueWorkers, log)
	defer queue.Close()

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, queue, log)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("server running", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
