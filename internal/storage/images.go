package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const imageExtension = ".jpg"

var ErrInvalidImageHandle = errors.New("invalid image handle")

type ImageStore interface {
	Save(ctx context.Context, data []byte) (string, error)
	Location(handle string) string
}

// ValidImageHandle reports whether handle has the <uuid>.jpg form that image
// stores hand out.
func ValidImageHandle(handle string) bool {
	name, found := strings.CutSuffix(handle, imageExtension)
	if !found {
		return false
	}
	id, err := uuid.Parse(name)
	return err == nil && id.String() == name
}

func newImageHandle() string {
	return uuid.NewString() + imageExtension
}

// FileImageStore writes images under a local directory.
type FileImageStore struct {
	directory string
}

func NewFileImageStore(directory string) *FileImageStore {
	return &FileImageStore{directory: directory}
}

func (store *FileImageStore) Save(_ context.Context, data []byte) (string, error) {
	if err := os.MkdirAll(store.directory, 0755); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}

	handle := newImageHandle()
	if err := os.WriteFile(store.Location(handle), data, 0644); err != nil {
		return "", fmt.Errorf("writing image %s: %w", handle, err)
	}
	return handle, nil
}

func (store *FileImageStore) Location(handle string) string {
	return filepath.Join(store.directory, handle)
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStore uploads images to a bucket and resolves them to public URLs.
type S3ImageStore struct {
	client    objectPutter
	bucket    string
	publicURL string
}

func NewS3ImageStore(ctx context.Context, bucket, region, publicURL string) (*S3ImageStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return newS3ImageStore(s3.NewFromConfig(cfg), bucket, publicURL), nil
}

func newS3ImageStore(client objectPutter, bucket, publicURL string) *S3ImageStore {
	return &S3ImageStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (store *S3ImageStore) Save(ctx context.Context, data []byte) (string, error) {
	handle := newImageHandle()
	_, err := store.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(objectKey(handle)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading image %s: %w", handle, err)
	}
	return handle, nil
}

func (store *S3ImageStore) Location(handle string) string {
	return store.publicURL + "/" + objectKey(handle)
}

func objectKey(handle string) string {
	return "images/" + handle
}
