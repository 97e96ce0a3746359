package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/amp1re/tinkoff-invest-bot/cmd"
	"github.com/amp1re/tinkoff-invest-bot/internal/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	handler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.WithValue(context.Background(), logger.ContextKey, logger.New())

	err = handler.Scheduler.Start(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer handler.Scheduler.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
}
