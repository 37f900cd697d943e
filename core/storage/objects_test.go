package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"bom-merger/core/storage"
	"bom-merger/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "reports/run-1.xlsx", storage.ReportKey("run-1"))
	assert.Equal(t, "inputs/run-1/parts.csv", storage.InputKey("run-1", "../../parts.csv"))
	assert.Equal(t, "inputs/run-1/", storage.InputPrefix("run-1"))
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "bom").Return(true, nil)

		require.NoError(t, storage.EnsureBucket(ctx, m, "bom", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "bom").Return(false, nil)
		m.On("MakeBucket", ctx, "bom", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		require.NoError(t, storage.EnsureBucket(ctx, m, "bom", "eu-west-1"))
		m.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "bom").Return(false, errors.New("dial tcp: refused"))

		err := storage.EnsureBucket(ctx, m, "bom", "")
		assert.ErrorContains(t, err, "refused")
	})
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	m.On("PutObject", ctx, "bom", "reports/r.xlsx", mock.Anything, int64(3), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
		return o.ContentType == storage.XLSXContentType
	})).Return(minio.UploadInfo{Key: "reports/r.xlsx"}, nil)

	err := storage.Upload(ctx, m, "bom", "reports/r.xlsx", []byte("abc"), storage.XLSXContentType)
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", ctx, "bom", "inputs/p.csv", minio.GetObjectOptions{}).
			Return(io.NopCloser(strings.NewReader("Ref,Part\nR1,RES")), nil)

		data, err := storage.Download(ctx, m, "bom", "inputs/p.csv")
		require.NoError(t, err)
		assert.Equal(t, "Ref,Part\nR1,RES", string(data))
	})

	t.Run("NotFound", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", ctx, "bom", "missing", minio.GetObjectOptions{}).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."})

		_, err := storage.Download(ctx, m, "bom", "missing")
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})
}

func TestRemovePrefix(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)

	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "inputs/run-1/parts.csv"}
	ch <- minio.ObjectInfo{Key: "inputs/run-1/xy.csv"}
	close(ch)

	m.On("ListObjects", ctx, "bom", minio.ListObjectsOptions{Prefix: "inputs/run-1/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))
	m.On("RemoveObject", ctx, "bom", mock.AnythingOfType("string"), minio.RemoveObjectOptions{}).Return(nil)

	n, err := storage.RemovePrefix(ctx, m, "bom", "inputs/run-1/")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	m.AssertNumberOfCalls(t, "RemoveObject", 2)
}
