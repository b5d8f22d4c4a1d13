package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"rental/config"
	"rental/infras/otel"
	"rental/shared/constant"
)

// Object is a single file written to a bucket. An empty Bucket means the
// configured notification bucket.
type Object struct {
	Bucket      string
	Directory   string
	Name        string
	ContentType string
	Body        []byte
}

// Key is the object key inside the bucket.
func (o Object) Key() string {
	return path.Join(o.Directory, o.Name)
}

type S3 interface {
	PutObject(ctx context.Context, object Object) (key string, err error)
}

type s3Impl struct {
	client        *s3.Client
	defaultBucket string
	otel          otel.Otel
}

func (svc *s3Impl) PutObject(ctx context.Context, object Object) (key string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".PutObject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := object.Bucket
	if bucket == constant.Empty {
		bucket = svc.defaultBucket
	}

	key = object.Key()
	scope.SetAttributes(map[string]any{
		"bucket": bucket,
		"key":    key,
		"bytes":  len(object.Body),
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(object.Body),
		ContentType:   aws.String(object.ContentType),
		ContentLength: aws.Int64(int64(len(object.Body))),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("put s3 object %s/%s: %w", bucket, key, err)
	}

	return key, nil
}

// New builds a path-style client. APIEndpoint points it at MinIO or LocalStack.
func New(cfg *config.Config, otel otel.Otel) S3 {
	settings := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(settings.Region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, "")),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load AWS configuration.")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if settings.APIEndpoint != constant.Empty {
			o.BaseEndpoint = aws.String(settings.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		client:        client,
		defaultBucket: cfg.Notification.Bucket,
		otel:          otel,
	}
}
