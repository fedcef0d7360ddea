// Command publication-approved records publication evaluation results on
// property records.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/AndreiLesi/aws-serverless-developer-ws/approvals"
	"github.com/AndreiLesi/aws-serverless-developer-ws/internal/config"
	"github.com/AndreiLesi/aws-serverless-developer-ws/store"
)

func main() {
	cfg, err := config.Load(config.PublicationApprovedEnv...)
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg, os.Stdout)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	s := store.New(dynamodb.NewFromConfig(awsCfg), cfg.Store)
	h := approvals.NewHandler(cfg, s, logger)
	lambda.Start(h.HandleEvent)
}
