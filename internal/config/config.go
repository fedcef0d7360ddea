// Package config loads function configuration from environment variables.
//
// A Config is built once in main and passed to handler constructors.
// Nothing in this module reads the environment outside of Load.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/AndreiLesi/aws-serverless-developer-ws/store"
)

// Environment variable names.
const (
	EnvServiceNamespace    = "SERVICE_NAMESPACE"
	EnvLogLevel            = "LOG_LEVEL"
	EnvPropertiesTable     = "DYNAMODB_TABLE"
	EnvContractStatusTable = "CONTRACT_STATUS_TABLE"
	EnvImageBucket         = "DESTINATION_BUCKET"
	EnvImageArchiveURL     = "IMAGE_ARCHIVE_URL"
)

// Variables each function requires. All of them name the service, which
// handler constructors attach to every log line.
var (
	PublicationApprovedEnv   = []string{EnvServiceNamespace, EnvPropertiesTable}
	ContractStatusChangedEnv = []string{EnvServiceNamespace, EnvContractStatusTable}
	ContractExistsCheckerEnv = []string{EnvServiceNamespace, EnvContractStatusTable}
	UploadImagesEnv          = []string{EnvServiceNamespace, EnvImageBucket}
)

// DefaultImageArchiveURL is the location of the sample property image archive.
const DefaultImageArchiveURL = "https://ws-assets-prod-iad-r-iad-ed304a55c2ca1aee.s3.us-east-1.amazonaws.com/9a27e484-7336-4ed0-8f90-f2747e4ac65c/property_images.zip"

// Config holds configuration shared by all functions.
type Config struct {
	// ServiceNamespace names the service in logs, e.g. "unicorn.properties".
	ServiceNamespace string

	// LogLevel is the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// Store holds the DynamoDB table names.
	Store store.Config

	// ImageBucket is the bucket seeded with sample property images.
	ImageBucket string

	// ImageArchiveURL is where the sample image archive is downloaded from.
	ImageArchiveURL string
}

// Load reads configuration from the environment. Each name in required must
// be set to a non-empty value; the returned error lists every one that isn't.
func Load(required ...string) (*Config, error) {
	v := viper.New()
	for _, env := range []string{
		EnvServiceNamespace,
		EnvLogLevel,
		EnvPropertiesTable,
		EnvContractStatusTable,
		EnvImageBucket,
		EnvImageArchiveURL,
	} {
		if err := v.BindEnv(env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	v.SetDefault(EnvLogLevel, "info")
	v.SetDefault(EnvImageArchiveURL, DefaultImageArchiveURL)

	var missing []string
	for _, env := range required {
		if v.GetString(env) == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return &Config{
		ServiceNamespace: v.GetString(EnvServiceNamespace),
		LogLevel:         v.GetString(EnvLogLevel),
		Store: store.Config{
			PropertiesTable:     v.GetString(EnvPropertiesTable),
			ContractStatusTable: v.GetString(EnvContractStatusTable),
		},
		ImageBucket:     v.GetString(EnvImageBucket),
		ImageArchiveURL: v.GetString(EnvImageArchiveURL),
	}, nil
}
