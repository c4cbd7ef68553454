package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"quickcourt/config"
	"quickcourt/infras/otel"
	"quickcourt/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

// Object is a file ready to be stored.
type Object struct {
	Directory   string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (o Object) Key() string {
	return path.Join(o.Directory, o.FileName)
}

type S3 interface {
	Upload(ctx context.Context, object Object) (url string, err error)
	Delete(ctx context.Context, url string) error
}

type s3Impl struct {
	client *s3.Client
	config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) Upload(ctx context.Context, object Object) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()

	bucket := svc.config.External.S3.BucketName
	objectKey := object.Key()

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          object.Body,
		ContentType:   aws.String(object.ContentType),
		ContentLength: aws.Int64(object.Size),
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str(otelAttrObjectKey, objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return PublicURL(svc.config.External.S3.PublicDomain, objectKey), nil
}

// Delete removes the object previously returned by Upload. URLs that do not
// belong to the configured bucket are ignored.
func (svc *s3Impl) Delete(ctx context.Context, url string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()

	bucket := svc.config.External.S3.BucketName

	objectKey := ObjectKeyFromURL(svc.config.External.S3.PublicDomain, svc.config.External.S3.APIEndpoint, bucket, url)
	if objectKey == constant.Empty {
		log.Warn().Str("url", url).Msg("url does not point to the configured bucket, skipping delete")

		return nil
	}

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func PublicURL(publicDomain, objectKey string) string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(publicDomain, "/"), objectKey)
}

// ObjectKeyFromURL reverses PublicURL. Path style API URLs
// ("<endpoint>/<bucket>/<key>") are accepted as well.
func ObjectKeyFromURL(publicDomain, apiEndpoint, bucket, url string) string {
	if publicDomain != "" {
		prefix := strings.TrimSuffix(publicDomain, "/") + "/"
		if key, ok := strings.CutPrefix(url, prefix); ok {
			return key
		}
	}

	if apiEndpoint != "" {
		prefix := fmt.Sprintf("%s/%s/", strings.TrimSuffix(apiEndpoint, "/"), bucket)
		if key, ok := strings.CutPrefix(url, prefix); ok {
			return key
		}
	}

	return constant.Empty
}

func New(config *config.Config, otel otel.Otel) S3 {
	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := config.External.S3.APIEndpoint; endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}

		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Impl{
		client: s3Client,
		config: config,
		otel:   otel,
	}
}
