// File: internal/blob/s3.go
package blob

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Options S3 相容物件儲存設定 (支援 MinIO 自訂 endpoint)
type S3Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

type s3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage 以公開讀取的 bucket 儲存通報圖片
type S3Storage struct {
	client s3Client
	opts   S3Options
}

func NewS3Storage(ctx context.Context, opts S3Options) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
	})

	return &S3Storage{client: client, opts: opts}, nil
}

// objectKey 以日期分層加上隨機 uuid，保留原始副檔名
func objectKey(filename string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("reports/%04d/%02d/%02d/%s%s",
		d.Year(), d.Month(), d.Day(), uuid.NewString(), path.Ext(filename))
}

func (s *S3Storage) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := objectKey(filename)
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.publicURL(key), nil
}

func (s *S3Storage) Remove(ctx context.Context, url string) error {
	prefix := s.publicURL("")
	if !strings.HasPrefix(url, prefix) {
		return fmt.Errorf("remove: url %q outside bucket", url)
	}
	key := strings.TrimPrefix(url, prefix)
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) publicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.opts.Endpoint, "/"), s.opts.Bucket, key)
}
