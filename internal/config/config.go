package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	JWTSecret          string `envconfig:"JWT_SECRET" required:"true"`

	S3URL       string `envconfig:"S3_URL" required:"true"`
	S3Region    string `envconfig:"S3_REGION" required:"true"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY" required:"true"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY" required:"true"`

	// ContentBucket holds uploaded lesson objects, CertificateBucket the
	// generated certificate PDFs.
	ContentBucket     string `envconfig:"CONTENT_BUCKET" required:"true"`
	CertificateBucket string `envconfig:"CERTIFICATE_BUCKET" required:"true"`

	// SignedURLTTLSec is the validity window of issued content URLs.
	SignedURLTTLSec int `envconfig:"SIGNED_URL_TTL_SEC" default:"3600"`

	// Telemetry / completion-event settings
	GCPProjectID                  string `envconfig:"GCP_PROJECT_ID"`
	TelemetryTopic                string `envconfig:"TELEMETRY_TOPIC" default:"content_access_events"`
	CompletionEndpointURL         string `envconfig:"COMPLETION_ENDPOINT_URL"`
	PubSubPushServiceAccountEmail string `envconfig:"PUBSUB_PUSH_SERVICE_ACCOUNT_EMAIL"`
	PubSubEmulatorHost            string `envconfig:"PUBSUB_EMULATOR_HOST"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
