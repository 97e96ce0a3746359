package main

import (
	"context"
	"log"

	"github.com/amp1re/tinkoff-invest-bot/cmd"
	"github.com/amp1re/tinkoff-invest-bot/internal"
	"github.com/amp1re/tinkoff-invest-bot/internal/logger"
	"github.com/joho/godotenv"
)

// Computes and prints one buy plan without submitting any orders.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	handler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.WithValue(context.Background(), logger.ContextKey, logger.New())

	response, err := handler.Rebalancer.ComputePlan(ctx)
	if err != nil {
		log.Fatal(err)
	}

	internal.Pprint(response.Rows)
	internal.Pprint(response.Plan)
}
