package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"course-platform-backend/pkg/container"
	"course-platform-backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	logger.Init(os.Getenv("APP_ENV"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	c, err := container.New(ctx)
	cancel()
	if err != nil {
		logger.Error("failed to initialize application", err)
		os.Exit(1)
	}
	defer c.Close()

	if err := Serve(c); err != nil {
		logger.Error("server terminated", err)
		os.Exit(1)
	}
}
