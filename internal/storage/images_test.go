package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

func TestValidImageHandle(t *testing.T) {
	id := uuid.NewString()
	tests := []struct {
		handle string
		want   bool
	}{
		{handle: id + ".jpg", want: true},
		{handle: id, want: false},
		{handle: id + ".png", want: false},
		{handle: "../" + id + ".jpg", want: false},
		{handle: "urn:uuid:" + id + ".jpg", want: false},
		{handle: ".jpg", want: false},
	}

	for _, test := range tests {
		if got := ValidImageHandle(test.handle); got != test.want {
			t.Errorf("ValidImageHandle(%q) = %v, want %v", test.handle, got, test.want)
		}
	}
}

func TestFileImageStore_Save(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "images")
	store := NewFileImageStore(directory)
	data := []byte{0xff, 0xd8, 0xff, 0xe0}

	handle, err := store.Save(context.Background(), data)
	if err != nil {
		t.Fatalf("saving image: %v", err)
	}
	if !ValidImageHandle(handle) {
		t.Errorf("expected valid handle, got %q", handle)
	}

	location := store.Location(handle)
	if location != filepath.Join(directory, handle) {
		t.Errorf("unexpected location %s", location)
	}
	written, err := os.ReadFile(location)
	if err != nil {
		t.Fatalf("reading image: %v", err)
	}
	if !bytes.Equal(written, data) {
		t.Error("expected stored bytes to match")
	}
}

type fakeObjectPutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (putter *fakeObjectPutter) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if putter.err != nil {
		return nil, putter.err
	}
	putter.input = input
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	putter.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3ImageStore_Save(t *testing.T) {
	putter := &fakeObjectPutter{}
	store := newS3ImageStore(putter, "meal-images", "https://cdn.example.com/")

	handle, err := store.Save(context.Background(), []byte("jpeg"))
	if err != nil {
		t.Fatalf("saving image: %v", err)
	}

	if got := aws.ToString(putter.input.Bucket); got != "meal-images" {
		t.Errorf("expected bucket meal-images, got %s", got)
	}
	if got := aws.ToString(putter.input.Key); got != "images/"+handle {
		t.Errorf("unexpected key %s", got)
	}
	if got := aws.ToString(putter.input.ContentType); got != "image/jpeg" {
		t.Errorf("unexpected content type %s", got)
	}
	if string(putter.body) != "jpeg" {
		t.Errorf("unexpected body %q", putter.body)
	}
	if got := store.Location(handle); got != "https://cdn.example.com/images/"+handle {
		t.Errorf("unexpected location %s", got)
	}
}

func TestS3ImageStore_SaveError(t *testing.T) {
	failure := errors.New("access denied")
	store := newS3ImageStore(&fakeObjectPutter{err: failure}, "meal-images", "https://cdn.example.com")

	if _, err := store.Save(context.Background(), []byte("jpeg")); !errors.Is(err, failure) {
		t.Errorf("expected wrapped upload error, got %v", err)
	}
}
