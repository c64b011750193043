package minio

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Nadro-J/filebase-go/errs"
	"github.com/Nadro-J/filebase-go/objstore"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCID = "QmV5NrBfHTBmYYfENtUxfJNWnBo2HYZ2QUws22i1TqM2rJ"

const listBucketsXML = `<?xml version="1.0" encoding="UTF-8"?>
<ListAllMyBucketsResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Owner><ID>owner</ID><DisplayName>owner</DisplayName></Owner>
  <Buckets>
    <Bucket><Name>demo-bucket</Name><CreationDate>2023-02-12T20:51:47.000Z</CreationDate></Bucket>
    <Bucket><Name>second-bucket</Name><CreationDate>2023-03-01T08:00:00.000Z</CreationDate></Bucket>
  </Buckets>
</ListAllMyBucketsResult>`

// fakeS3 is a minimal S3-compatible server: enough wire protocol for the
// driver's single-call operations, nothing more.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte // "bucket/key" -> payload
	buckets []string
}

func newFakeS3(t *testing.T) (*fakeS3, *httptest.Server) {
	t.Helper()
	f := &fakeS3{objects: map[string][]byte{}}

	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(listBucketsXML))
	})
	r.Put("/{bucket}", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		f.buckets = append(f.buckets, chi.URLParam(req, "bucket"))
		f.mu.Unlock()
	})
	r.Put("/{bucket}/*", func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		f.mu.Lock()
		f.objects[objKey(req)] = body
		f.mu.Unlock()
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
	})
	r.Head("/{bucket}/*", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		body, ok := f.objects[objKey(req)]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		w.Header().Set("X-Amz-Meta-Cid", testCID)
	})
	r.Delete("/{bucket}/*", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		delete(f.objects, objKey(req))
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv
}

func objKey(req *http.Request) string {
	return chi.URLParam(req, "bucket") + "/" + chi.URLParam(req, "*")
}

func testDriver(t *testing.T, srv *httptest.Server, legacy bool) *Driver {
	t.Helper()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	d, err := New(context.Background(), &objstore.Config{
		Endpoint:           u.Host,
		AccessKey:          "key",
		SecretKey:          "secret",
		UseSSL:             false,
		Region:             "us-east-1",
		LegacyStatusReason: legacy,
	})
	require.NoError(t, err)
	return d
}

func TestDriver_ListBuckets(t *testing.T) {
	_, srv := newFakeS3(t)
	d := testDriver(t, srv, false)

	buckets, err := d.ListBuckets(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "demo-bucket", buckets[0].Name)
	assert.Equal(t, 2023, buckets[0].CreatedAt.Year())
	assert.Equal(t, "second-bucket", buckets[1].Name)
}

func TestDriver_CreateBucket(t *testing.T) {
	f, srv := newFakeS3(t)
	d := testDriver(t, srv, false)

	require.NoError(t, d.CreateBucket(context.Background(), "newbucket"))
	assert.Equal(t, []string{"newbucket"}, f.buckets)
}

func TestDriver_PutObject_ReturnsCID(t *testing.T) {
	f, srv := newFakeS3(t)
	d := testDriver(t, srv, false)

	payload := []byte("hello filebase")
	info, err := d.PutObject(context.Background(), "demo-bucket", "greeting.txt",
		bytes.NewReader(payload), int64(len(payload)), objstore.PutOptions{ContentType: "text/plain"})
	require.NoError(t, err)

	assert.Equal(t, testCID, info.CID)
	assert.Equal(t, "demo-bucket", info.Bucket)
	assert.Equal(t, "greeting.txt", info.Key)
	assert.Equal(t, payload, f.objects["demo-bucket/greeting.txt"])
}

func TestDriver_StatObject(t *testing.T) {
	f, srv := newFakeS3(t)
	f.objects["demo-bucket/greeting.txt"] = []byte("hello")
	d := testDriver(t, srv, false)

	info, err := d.StatObject(context.Background(), "demo-bucket", "greeting.txt")
	require.NoError(t, err)
	assert.Equal(t, testCID, info.CID)
	assert.Equal(t, int64(5), info.Size)
}

func TestDriver_StatObject_NotFound(t *testing.T) {
	_, srv := newFakeS3(t)
	d := testDriver(t, srv, false)

	_, err := d.StatObject(context.Background(), "demo-bucket", "missing.txt")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.True(t, errs.IsBackend(err))
	assert.Equal(t, http.StatusNotFound, errs.StatusOf(err))
}

func TestDriver_StatObject_NotFound_LegacyReason(t *testing.T) {
	_, srv := newFakeS3(t)
	d := testDriver(t, srv, true)

	_, err := d.StatObject(context.Background(), "demo-bucket", "missing.txt")
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusNotFound, e.Status)
	assert.Equal(t, strconv.Itoa(e.Status), e.Reason)
}

func TestDriver_DeleteObject(t *testing.T) {
	f, srv := newFakeS3(t)
	f.objects["demo-bucket/stale.txt"] = []byte("x")
	d := testDriver(t, srv, false)

	require.NoError(t, d.DeleteObject(context.Background(), "demo-bucket", "stale.txt"))
	assert.NotContains(t, f.objects, "demo-bucket/stale.txt")
}

func TestDriver_Ping_ConnectionFailure(t *testing.T) {
	d, err := New(context.Background(), &objstore.Config{
		Endpoint:  "127.0.0.1:1",
		AccessKey: "key",
		SecretKey: "secret",
		Region:    "us-east-1",
	})
	require.NoError(t, err)

	err = d.Ping(context.Background())
	assert.True(t, errs.IsConnectionFailed(err))
}

func TestCidFromMetadata(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]string
		want string
	}{
		{"canonical key", map[string]string{"Cid": testCID}, testCID},
		{"upper key", map[string]string{"CID": testCID}, testCID},
		{"lower key", map[string]string{"cid": testCID}, testCID},
		{"absent", map[string]string{"Other": "x"}, ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cidFromMetadata(tt.meta))
		})
	}
}
