package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBucket struct {
	mu          sync.Mutex
	name        string
	objects     map[string]int
	contentType map[string]string
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	switch {
	case r.Method == http.MethodPut && strings.HasPrefix(path, b.name+"/"):
		body, _ := io.ReadAll(r.Body)
		key := strings.TrimPrefix(path, b.name+"/")
		b.objects[key] = len(body)
		b.contentType[key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet && strings.TrimSuffix(path, "/") == b.name:
		prefix := r.URL.Query().Get("prefix")
		w.Header().Set("Content-Type", "application/xml")
		var sb strings.Builder
		sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
		sb.WriteString(`<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
		sb.WriteString(`<Name>` + b.name + `</Name><IsTruncated>false</IsTruncated>`)
		for key := range b.objects {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			sb.WriteString(`<Contents><Key>` + key + `</Key><Size>12</Size>`)
			sb.WriteString(`<LastModified>2024-01-02T03:04:05.000Z</LastModified></Contents>`)
		}
		sb.WriteString(`</ListBucketResult>`)
		_, _ = io.WriteString(w, sb.String())
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func newTestService(t *testing.T) (*S3Service, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{name: "archive", objects: map[string]int{}, contentType: map[string]string{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(srv.URL),
		UsePathStyle: true,
		Credentials:  aws.AnonymousCredentials{},
	})
	return NewS3Service(client), bucket
}

func TestS3ServicePutAndList(t *testing.T) {
	ctx := context.Background()
	svc, bucket := newTestService(t)

	key := ArchiveKey("exports", 7, "csv")
	location, err := svc.Put(ctx, "archive", key, strings.NewReader("id,amount\n"), "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "s3://archive/"+key, location)
	assert.Contains(t, bucket.objects, key)
	assert.Equal(t, "text/csv", bucket.contentType[key])

	objects, err := svc.ListObjects(ctx, "archive", UserPrefix("exports", 7))
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, key, objects[0].Key)
	assert.Equal(t, int64(12), objects[0].Size)
	require.NotNil(t, objects[0].LastModified)

	objects, err = svc.ListObjects(ctx, "archive", UserPrefix("exports", 8))
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestS3ServiceRequiresBucket(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Put(context.Background(), "", "k", strings.NewReader("x"), "")
	assert.Error(t, err)
	_, err = svc.Put(context.Background(), "archive", "/", strings.NewReader("x"), "")
	assert.Error(t, err)
	_, err = svc.ListObjects(context.Background(), "", "")
	assert.Error(t, err)
}

func TestArchiveKey(t *testing.T) {
	assert.Equal(t, "user-3/", UserPrefix("", 3))
	assert.Equal(t, "exports/user-3/", UserPrefix("/exports/", 3))

	key := ArchiveKey("exports", 3, ".xlsx")
	assert.True(t, strings.HasPrefix(key, "exports/user-3/"))
	assert.True(t, strings.HasSuffix(key, ".xlsx"))
	assert.NotEqual(t, key, ArchiveKey("exports", 3, "xlsx"))
}
