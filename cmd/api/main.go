package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rs/cors"

	"fin-letter/api/router"
	"fin-letter/config"
	"fin-letter/internal/bootstrap"
	"fin-letter/internal/logger"
)

func main() {
	config.InitApp()
	logger.InitFromEnv("LOG_LEVEL")

	p, err := bootstrap.BuildProcessor(context.Background())
	if err != nil {
		log.Fatal("failed to build pipeline:", err)
	}

	r := router.New(p)
	handler := cors.Default().Handler(r)

	addr := config.GetConfig().HTTP.ListenAddr
	if addr == "" {
		addr = ":8080"
	}

	logger.Log.Infof("api server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal("api server stopped:", err)
	}
}
