// Command upload-images is the custom resource that fills the property image
// bucket on stack creation and empties it on deletion.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/AndreiLesi/aws-serverless-developer-ws/images"
	"github.com/AndreiLesi/aws-serverless-developer-ws/internal/config"
)

func main() {
	cfg, err := config.Load(config.UploadImagesEnv...)
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

	h := images.NewHandler(cfg, s3.NewFromConfig(awsCfg), &http.Client{Timeout: 2 * time.Minute}, logger)
	lambda.Start(cfn.LambdaWrap(h.Handle))
}
