package docs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/warrantyreminder/internal/netx"
)

type fakeS3 struct {
	data   []byte
	err    error
	bucket string
	key    string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket, f.key = aws.ToString(in.Bucket), aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.data))}, nil
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := ParseS3URL("s3://docs/users/1/invoice.pdf")
	require.NoError(t, err)
	assert.Equal(t, "docs", bucket)
	assert.Equal(t, "users/1/invoice.pdf", key)

	for _, bad := range []string{"s3://docs", "s3:///key", "http://docs/key"} {
		_, _, err := ParseS3URL(bad)
		assert.ErrorIs(t, err, ErrInvalidS3URL, bad)
	}
}

func TestFetch_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pdf-bytes"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), S3Config{})
	data, name, err := f.Fetch(context.Background(), srv.URL+"/files/manual.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
	assert.Equal(t, "manual.pdf", name)
}

func TestFetch_S3WithFakeClient(t *testing.T) {
	fake := &fakeS3{data: []byte("doc")}
	f := NewFetcher(nil, S3Config{}, WithS3Client(fake))

	data, name, err := f.Fetch(context.Background(), "s3://bucket/a/b/receipt.png")
	require.NoError(t, err)
	assert.Equal(t, "doc", string(data))
	assert.Equal(t, "receipt.png", name)
	assert.Equal(t, "bucket", fake.bucket)
	assert.Equal(t, "a/b/receipt.png", fake.key)
}

func TestFetch_S3Error(t *testing.T) {
	f := NewFetcher(nil, S3Config{}, WithS3Client(&fakeS3{err: errors.New("access denied")}))

	_, _, err := f.Fetch(context.Background(), "s3://bucket/key")
	require.ErrorContains(t, err, "get s3://bucket/key")
}

func TestFetch_S3TooLarge(t *testing.T) {
	f := NewFetcher(nil, S3Config{}, WithS3Client(&fakeS3{data: make([]byte, 11)}), WithMaxBytes(10))

	_, _, err := f.Fetch(context.Background(), "s3://bucket/key")
	require.ErrorIs(t, err, netx.ErrTooLarge)
}

func TestFetch_S3PathStyleEndpoint(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("from-minio"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), S3Config{
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "minio",
		SecretKey: "minio123",
	})

	data, name, err := f.Fetch(context.Background(), "s3://warranties/docs/w1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "from-minio", string(data))
	assert.Equal(t, "w1.pdf", name)
	assert.Equal(t, "/warranties/docs/w1.pdf", gotPath)
}

func TestFetch_UnsupportedScheme(t *testing.T) {
	_, _, err := NewFetcher(nil, S3Config{}).Fetch(context.Background(), "ftp://host/file")
	require.ErrorIs(t, err, ErrUnsupportedScheme)
}
