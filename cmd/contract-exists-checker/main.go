// Command contract-exists-checker is the approval workflow task that checks
// a contract status exists for a property.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/AndreiLesi/aws-serverless-developer-ws/contracts"
	"github.com/AndreiLesi/aws-serverless-developer-ws/internal/config"
	"github.com/AndreiLesi/aws-serverless-developer-ws/store"
)

func main() {
	cfg, err := config.Load(config.ContractExistsCheckerEnv...)
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
	h := contracts.NewHandler(cfg, s, logger)
	lambda.Start(h.InvokeExistsCheck)
}
