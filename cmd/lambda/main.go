package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"biobag/internal/config"
	"biobag/internal/logger"
	"biobag/internal/server"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	echoadapter "github.com/awslabs/aws-lambda-go-api-proxy/echo"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// API Gateway(REST)の裏で同じルーターを動かす
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)
	decimal.MarshalJSONWithoutQuotes = true

	//コールドスタート時に1回だけ組み立てる
	app, err := server.Build(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	adapter := echoadapter.New(app.Echo)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
