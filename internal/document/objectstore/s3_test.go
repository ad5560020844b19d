package objectstore_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/khusela/internal/document/objectstore"
)

type fakeS3 struct {
	put     []*s3.PutObjectInput
	deleted []*s3.DeleteObjectInput
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = append(f.put, params)
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, params)
	return &s3.DeleteObjectOutput{}, f.err
}

type fakeSigner struct {
	expires time.Duration
}

func (f *fakeSigner) PresignGetObject(_ context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*objectstore.PresignedRequest, error) {
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	f.expires = opts.Expires

	return &objectstore.PresignedRequest{URL: "https://r2.example/" + aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)}, nil
}

func TestStore_Put(t *testing.T) {
	client := &fakeS3{}
	store := objectstore.New(client, &fakeSigner{}, "khusela-documents")

	require.NoError(t, store.Put(context.Background(), "applications/a/payslip_1.pdf", "application/pdf", strings.NewReader("pdf")))

	require.Len(t, client.put, 1)
	assert.Equal(t, "khusela-documents", aws.ToString(client.put[0].Bucket))
	assert.Equal(t, "applications/a/payslip_1.pdf", aws.ToString(client.put[0].Key))
	assert.Equal(t, "application/pdf", aws.ToString(client.put[0].ContentType))
}

func TestStore_Put_Error(t *testing.T) {
	store := objectstore.New(&fakeS3{err: errors.New("denied")}, &fakeSigner{}, "bucket")

	err := store.Put(context.Background(), "k", "image/png", strings.NewReader("png"))

	assert.EqualError(t, err, "putting k: denied")
}

func TestStore_SignedURL(t *testing.T) {
	signer := &fakeSigner{}
	store := objectstore.New(&fakeS3{}, signer, "bucket")

	url, err := store.SignedURL(context.Background(), "employees/e/id_copy_1.png", 15*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, "https://r2.example/bucket/employees/e/id_copy_1.png", url)
	assert.Equal(t, 15*time.Minute, signer.expires)
}

func TestStore_Delete(t *testing.T) {
	client := &fakeS3{}
	store := objectstore.New(client, &fakeSigner{}, "bucket")

	require.NoError(t, store.Delete(context.Background(), "k"))
	require.Len(t, client.deleted, 1)
	assert.Equal(t, "k", aws.ToString(client.deleted[0].Key))
}
