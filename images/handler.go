package images

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/cfn"

	"github.com/AndreiLesi/aws-serverless-developer-ws/internal/config"
)

// ErrUnknownRequestType is returned for custom resource requests other than
// Create, Update and Delete.
var ErrUnknownRequestType = errors.New("images: unknown request type")

// Handler is the CloudFormation custom resource behind the image bucket.
type Handler struct {
	provisioner *Provisioner
	httpClient  *http.Client
	archiveURL  string
	bucket      string
	logger      *slog.Logger
}

// NewHandler creates a custom resource handler for cfg.ImageBucket.
// A nil httpClient uses http.DefaultClient.
func NewHandler(cfg *config.Config, client S3API, httpClient *http.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger = logger.With("service", cfg.ServiceNamespace)
	return &Handler{
		provisioner: NewProvisioner(client, cfg.ImageBucket, logger),
		httpClient:  httpClient,
		archiveURL:  cfg.ImageArchiveURL,
		bucket:      cfg.ImageBucket,
		logger:      logger,
	}
}

// Handle implements cfn.CustomResourceFunction. The bucket name is the
// physical resource id.
func (h *Handler) Handle(ctx context.Context, event cfn.Event) (string, map[string]interface{}, error) {
	h.logger.Info("custom resource request",
		"requestType", event.RequestType,
		"logicalResourceId", event.LogicalResourceID,
		"bucket", h.bucket,
	)

	switch event.RequestType {
	case cfn.RequestCreate, cfn.RequestUpdate:
		n, err := h.populate(ctx)
		if err != nil {
			return h.bucket, nil, err
		}
		return h.bucket, map[string]interface{}{"ObjectCount": n}, nil
	case cfn.RequestDelete:
		return h.bucket, nil, h.provisioner.Teardown(ctx)
	default:
		return h.bucket, nil, fmt.Errorf("%w: %q", ErrUnknownRequestType, event.RequestType)
	}
}

func (h *Handler) populate(ctx context.Context) (int, error) {
	h.logger.Info("downloading image archive", "url", h.archiveURL)
	zr, err := FetchArchive(ctx, h.httpClient, h.archiveURL)
	if err != nil {
		return 0, err
	}

	dir, err := fs.Sub(zr, ArchiveDir)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", ArchiveDir, err)
	}
	return h.provisioner.Seed(ctx, dir)
}
