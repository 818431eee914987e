package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
)

// DefaultLinkTTL is how long presigned plot links stay valid.
const DefaultLinkTTL = time.Hour

// S3Publisher uploads rendered plots to a bucket and hands back presigned links.
type S3Publisher struct {
	bucket   string
	prefix   string
	linkTTL  time.Duration
	uploader s3manageriface.UploaderAPI
	client   s3iface.S3API
}

// NewS3Publisher creates a publisher writing to bucket under prefix.
func NewS3Publisher(cfg client.ConfigProvider, bucket, prefix string) *S3Publisher {
	return newS3Publisher(s3manager.NewUploader(cfg), s3.New(cfg), bucket, prefix)
}

func newS3Publisher(uploader s3manageriface.UploaderAPI, client s3iface.S3API, bucket, prefix string) *S3Publisher {
	return &S3Publisher{
		bucket:   bucket,
		prefix:   prefix,
		linkTTL:  DefaultLinkTTL,
		uploader: uploader,
		client:   client,
	}
}

// Key returns the object key a local file is uploaded to.
func (p *S3Publisher) Key(localPath string) string {
	return path.Join(p.prefix, filepath.Base(localPath))
}

// PublishFile uploads the file at localPath and returns a presigned GET link.
func (p *S3Publisher) PublishFile(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("could not open %s: %w", localPath, err)
	}
	defer f.Close()

	key := p.Key(localPath)
	_, err = p.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload %s to s3://%s/%s: %w", localPath, p.bucket, key, err)
	}

	link, err := p.presign(key)
	if err != nil {
		return "", err
	}

	slog.Info("Published plot", "bucket", p.bucket, "key", key)
	return link, nil
}

// PublishFiles uploads every file and returns the links in the same order.
func (p *S3Publisher) PublishFiles(ctx context.Context, paths []string) ([]string, error) {
	links := make([]string, 0, len(paths))
	for _, lp := range paths {
		link, err := p.PublishFile(ctx, lp)
		if err != nil {
			return links, err
		}
		links = append(links, link)
	}
	return links, nil
}

func (p *S3Publisher) presign(key string) (string, error) {
	req, _ := p.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	urlStr, err := req.Presign(p.linkTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign request for %s: %w", key, err)
	}
	return urlStr, nil
}
