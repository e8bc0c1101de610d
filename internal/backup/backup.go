// Package backup copies saved reconciliations to an S3-compatible
// bucket so the books survive a database loss. Everything here is
// best-effort: callers log failures and move on.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"clinica-caja/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

type Service struct {
	client *s3.Client
	bucket string
}

// NewService builds the uploader. It returns nil (no error) when the
// bucket is not configured; the caller treats a nil service as
// "backups disabled".
func NewService(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.Bucket == "" || cfg.AccessKey == "" {
		return nil, nil
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load backup credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	log.Printf("[Backup] Respaldo de arqueos habilitado (bucket %s)", cfg.Bucket)
	return &Service{client: client, bucket: cfg.Bucket}, nil
}

// ArchivarArqueo uploads the reconciliation as JSON under
// arqueos/<fecha>/<id>.json
func (s *Service) ArchivarArqueo(ctx context.Context, a *models.Arqueo) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal arqueo %d: %w", a.IDArqueo, err)
	}

	key := fmt.Sprintf("arqueos/%s/%d.json", a.Fecha, a.IDArqueo)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload arqueo %d: %w", a.IDArqueo, err)
	}

	log.Printf("[Backup] Arqueo %d respaldado en %s", a.IDArqueo, key)
	return nil
}
