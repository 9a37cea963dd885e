package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"webnotas/cmd/internal/utils/validators"
)

const (
	envVarsPrefix = "/webnotas/prod/"
	ssmRegion     = "us-east-2"
)

type Config struct {
	// UpstreamURL is where the WEBNOTAS API lives; API paths are joined to it.
	UpstreamURL   string        `env:"UPSTREAM_URL" envDefault:"http://localhost:8000" validate:"required,httpbase"`
	HTTPAddr      string        `env:"HTTP_ADDR" envDefault:":7070" validate:"required"`
	PollInterval  time.Duration `env:"POLL_INTERVAL" envDefault:"3s" validate:"gt=0"`
	SequenceGuard bool          `env:"SEQUENCE_GUARD" envDefault:"false"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error off"`

	// XML downloads are enabled only when a bucket is set.
	S3Bucket     string `env:"S3_BUCKET_NAME" validate:"omitempty,nospaces"`
	S3Region     string `env:"AWS_S3_REGION" validate:"required_with=S3Bucket"`
	XMLKeyPrefix string `env:"XML_KEY_PREFIX"`
}

func (c Config) XMLEnabled() bool {
	return c.S3Bucket != ""
}

// Load reads the environment, from SSM Parameter Store in production or from
// an optional .env file otherwise, and returns the validated configuration.
func Load(ctx context.Context) (Config, error) {
	if os.Getenv("GO_ENV") == "production" {
		if err := loadProdEnv(ctx); err != nil {
			return Config{}, err
		}
	} else if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}
	return Parse()
}

// Parse builds the configuration from the current process environment.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.UpstreamURL = strings.TrimRight(cfg.UpstreamURL, "/")
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	validate := validator.New()
	validators.Register(validate)
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Lvl maps LogLevel to the gommon level.
func (c Config) Lvl() log.Lvl {
	switch c.LogLevel {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

type parametersByPath interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

func loadProdEnv(ctx context.Context) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(ssmRegion))
	if err != nil {
		return fmt.Errorf("load SDK config: %w", err)
	}

	n, err := exportParameters(ctx, ssm.NewFromConfig(cfg), envVarsPrefix)
	if err != nil {
		return err
	}
	log.Debugf("loaded %d prod environment variables", n)
	return nil
}

// exportParameters sets every parameter under prefix as an environment
// variable named after the rest of its path.
func exportParameters(ctx context.Context, client parametersByPath, prefix string) (int, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	count := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return count, fmt.Errorf("load prod environment: %w", err)
		}

		for _, param := range out.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), prefix)
			if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return count, fmt.Errorf("set environment variable %s: %w", key, err)
			}
			count++
		}
	}
	return count, nil
}
