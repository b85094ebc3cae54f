package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

const (
	errLoadAWSConfig           = "failed to load AWS config: %w"
	errGetSecretFromAWSSecrets = "failed to get secret from AWS Secrets Manager: %w"
	errParseSecretJSON         = "failed to parse secret JSON: %w"
	errParseSecretBinary       = "failed to parse secret binary: %w"
)

var errNoSecretDataFound = errors.New("no secret data found in AWS Secrets Manager")

// SecretsOverlay represents the structure of secrets stored in AWS Secrets Manager
type SecretsOverlay struct {
	DatabasePassword string `json:"database_password"`
	APITokenHash     string `json:"api_token_hash"`
	APIToken         string `json:"api_token"`
}

// SecretsClient is the part of the Secrets Manager API used here
type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// NewSecretsClient builds a Secrets Manager client for region from the default AWS credential chain
func NewSecretsClient(ctx context.Context, region string) (*secretsmanager.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf(errLoadAWSConfig, err)
	}
	return secretsmanager.NewFromConfig(awsCfg), nil
}

// fetchSecrets retrieves and decodes the secret document
func fetchSecrets(ctx context.Context, client SecretsClient, secretName string) (*SecretsOverlay, error) {
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return nil, fmt.Errorf(errGetSecretFromAWSSecrets, err)
	}

	return parseSecretData(result)
}

// parseSecretData parses secret data from AWS response
func parseSecretData(result *secretsmanager.GetSecretValueOutput) (*SecretsOverlay, error) {
	var secrets SecretsOverlay
	switch {
	case result.SecretString != nil:
		if err := json.Unmarshal([]byte(*result.SecretString), &secrets); err != nil {
			return nil, fmt.Errorf(errParseSecretJSON, err)
		}
	case result.SecretBinary != nil:
		if err := json.Unmarshal(result.SecretBinary, &secrets); err != nil {
			return nil, fmt.Errorf(errParseSecretBinary, err)
		}
	default:
		return nil, errNoSecretDataFound
	}
	return &secrets, nil
}

// overlaySecretsOnConfig applies non-empty secrets to configuration
func overlaySecretsOnConfig(cfg *Config, secrets *SecretsOverlay) {
	if secrets.DatabasePassword != "" {
		cfg.Database.Password = secrets.DatabasePassword
	}
	if secrets.APITokenHash != "" {
		cfg.Auth.TokenHash = secrets.APITokenHash
	}
	if secrets.APIToken != "" {
		cfg.Client.Token = secrets.APIToken
	}
}

// ApplySecrets fetches secretName through client and overlays it onto cfg
func ApplySecrets(ctx context.Context, cfg *Config, client SecretsClient, secretName string) error {
	secrets, err := fetchSecrets(ctx, client, secretName)
	if err != nil {
		return err
	}
	overlaySecretsOnConfig(cfg, secrets)
	return nil
}

// LoadSecretsFromAWS retrieves secrets from AWS Secrets Manager and overlays them onto the configuration
func LoadSecretsFromAWS(ctx context.Context, cfg *Config, region string, secretName string) error {
	client, err := NewSecretsClient(ctx, region)
	if err != nil {
		return err
	}
	return ApplySecrets(ctx, cfg, client, secretName)
}

// LoadSecretsFromEnv applies the AWS overlay when AWS_SECRETS_ENABLED is
// true, reading AWS_REGION and AWS_SECRET_NAME.
func LoadSecretsFromEnv(ctx context.Context, cfg *Config) error {
	if os.Getenv("AWS_SECRETS_ENABLED") != "true" {
		return nil
	}

	region := os.Getenv("AWS_REGION")
	secretName := os.Getenv("AWS_SECRET_NAME")
	if region == "" || secretName == "" {
		return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
	}

	return LoadSecretsFromAWS(ctx, cfg, region, secretName)
}

// LoadAndValidate loads configPath with defaults, applies the optional
// secrets overlay and validates the result.
func LoadAndValidate(ctx context.Context, configPath string) (*Config, error) {
	cfg, err := LoadWithDefaults(configPath)
	if err != nil {
		return nil, err
	}
	if err := LoadSecretsFromEnv(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
