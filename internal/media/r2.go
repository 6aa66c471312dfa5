package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/bilgisen/contentfeed/internal/config"
)

// R2Presigner serves uploads through presigned GET URLs on a Cloudflare R2 bucket.
// Signing is local; no request reaches R2.
type R2Presigner struct {
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration
}

func NewR2Presigner(ctx context.Context, cfg *config.Config) (*R2Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKey, cfg.R2SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2Endpoint)
		o.UsePathStyle = true
	})

	return &R2Presigner{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.R2Bucket,
		ttl:     cfg.R2PresignTTL,
	}, nil
}

func (p *R2Presigner) ObjectURL(ctx context.Context, path string) (string, error) {
	req, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(strings.TrimLeft(path, "/")),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", path, err)
	}
	return req.URL, nil
}
