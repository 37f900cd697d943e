package reconciliation_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"bom-merger/core/reconcile"
	"bom-merger/core/storage"
	"bom-merger/feature/mapping"
	"bom-merger/feature/reconciliation"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createRun(t *testing.T, svc *reconciliation.Service) *reconciliation.RunView {
	t.Helper()
	parts, placement := testInputs()
	view, err := svc.Create(context.Background(), reconciliation.CreateRequest{Parts: parts, Placement: placement})
	require.NoError(t, err)
	return view
}

func designatorsOf(records []reconcile.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Designator)
	}
	return out
}

// TestService_Create tests a full run: ingestion, panel resolution, join and auto-suppression.
func TestService_Create(t *testing.T) {
	svc, client := newTestService(t)
	view := createRun(t, svc)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "bom.csv", view.Name)
	assert.Equal(t, []string{"R1", "R2", "R3", "TP1", "U9", "C1"}, designatorsOf(view.Records))

	s := view.Summary
	assert.Equal(t, 6, s.TotalRecords)
	assert.Equal(t, 3, s.Matched)
	assert.Equal(t, 2, s.PlacementOnly)
	assert.Equal(t, 1, s.PartsOnly)
	assert.Equal(t, 1, s.Suppressed)
	assert.Equal(t, 1, s.PlacementErrors)
	assert.False(t, view.Exportable)

	r1 := view.Records[0]
	require.NotNil(t, r1.Y)
	assert.Equal(t, 10.0, *r1.Y)
	assert.Equal(t, "RES-10K", r1.PartNumber)
	assert.Equal(t, reconcile.LayerBottom, view.Records[1].Layer)
	assert.True(t, view.Records[3].Suppressed)

	client.AssertCalled(t, "PutObject", mock.Anything, testBucket, "inputs/"+view.ID+"/bom.csv", mock.Anything, int64(len(partsCSV)), mock.Anything)
	client.AssertCalled(t, "PutObject", mock.Anything, testBucket, "inputs/"+view.ID+"/xy.csv", mock.Anything, int64(len(placementCSV)), mock.Anything)
}

func TestService_CreateErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	parts, placement := testInputs()

	t.Run("UnmappedColumn", func(t *testing.T) {
		m := reconcile.Mapping{PartsDesignator: "Reference", PlacementDesignator: "Designator"}
		_, err := svc.Create(ctx, reconciliation.CreateRequest{Mapping: &m, Parts: parts, Placement: placement})
		assert.ErrorIs(t, err, reconcile.ErrConfiguration)
	})

	t.Run("UnknownProfile", func(t *testing.T) {
		_, err := svc.Create(ctx, reconciliation.CreateRequest{Profile: "missing", Parts: parts, Placement: placement})
		assert.ErrorIs(t, err, mapping.ErrNotFound)
	})

	t.Run("BadDelimiter", func(t *testing.T) {
		_, err := svc.Create(ctx, reconciliation.CreateRequest{Delimiter: "pipe", Parts: parts, Placement: placement})
		assert.ErrorIs(t, err, reconcile.ErrConfiguration)
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		bad := reconciliation.Input{Name: "bom.pdf", Data: []byte("%PDF")}
		_, err := svc.Create(ctx, reconciliation.CreateRequest{Parts: bad, Placement: placement})
		assert.ErrorContains(t, err, "parts table")
	})
}

func TestService_CreateFromStorage(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	client.On("GetObject", mock.Anything, testBucket, "uploads/bom.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader(partsCSV)), nil)
	client.On("GetObject", mock.Anything, testBucket, "uploads/xy.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader(placementCSV)), nil)

	view, err := svc.CreateFromStorage(ctx, reconciliation.ObjectRequest{
		Name:         "Board A",
		PartsKey:     "uploads/bom.csv",
		PlacementKey: "uploads/xy.csv",
	})
	require.NoError(t, err)
	assert.Equal(t, "Board A", view.Name)
	assert.Equal(t, "bom.csv", view.PartsFile)
	assert.Len(t, view.Records, 6)

	_, err = svc.CreateFromStorage(ctx, reconciliation.ObjectRequest{PartsKey: "uploads/bom.csv"})
	assert.ErrorContains(t, err, "placement_key")
}

// TestService_ReviewAndExport tests the export gate through reviewer actions.
func TestService_ReviewAndExport(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	view := createRun(t, svc)

	_, err := svc.Export(ctx, view.ID)
	assert.ErrorIs(t, err, reconciliation.ErrNotExportable)

	remark := "DNP on rev B"
	rec, err := svc.UpdateRecord(ctx, view.ID, "r2", reconciliation.RecordPatch{Remark: &remark})
	require.NoError(t, err)
	assert.Equal(t, "R2", rec.Designator)
	assert.Equal(t, remark, rec.Remark)

	count, err := svc.Suppress(ctx, view.ID, reconciliation.SuppressRequest{Pattern: "u*"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	key, err := svc.Export(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "reports/"+view.ID+".xlsx", key)
	client.AssertCalled(t, "PutObject", mock.Anything, testBucket, key, mock.Anything, mock.Anything,
		mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == storage.XLSXContentType }))

	got, err := svc.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.True(t, got.Exportable)
	assert.Equal(t, key, got.ReportKey)
	assert.Equal(t, remark, got.Records[1].Remark)

	// Un-suppressing reopens the gate.
	off := false
	_, err = svc.UpdateRecord(ctx, view.ID, "U9", reconciliation.RecordPatch{Suppressed: &off})
	require.NoError(t, err)
	_, err = svc.Export(ctx, view.ID)
	assert.ErrorIs(t, err, reconciliation.ErrNotExportable)

	_, err = svc.UpdateRecord(ctx, view.ID, "Q99", reconciliation.RecordPatch{Suppressed: &off})
	assert.ErrorIs(t, err, reconciliation.ErrRecordNotFound)
}

func TestService_BOM(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	view := createRun(t, svc)

	lines, err := svc.BOM(ctx, view.ID, "")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "R1, R2, R3", lines[0].Location)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "C1", lines[1].Location)

	bottom, err := svc.BOM(ctx, view.ID, "bottom")
	require.NoError(t, err)
	require.Len(t, bottom, 1)
	assert.Equal(t, "R2", bottom[0].Location)

	_, err = svc.BOM(ctx, view.ID, "inner2")
	assert.ErrorIs(t, err, reconciliation.ErrInvalidLayer)

	_, err = svc.BOM(ctx, "missing", "")
	assert.ErrorIs(t, err, reconciliation.ErrRunNotFound)
}

func TestService_ListAndDelete(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	view := createRun(t, svc)

	runs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, view.ID, runs[0].ID)

	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "inputs/" + view.ID + "/bom.csv"}
	ch <- minio.ObjectInfo{Key: "inputs/" + view.ID + "/xy.csv"}
	close(ch)
	client.On("ListObjects", mock.Anything, testBucket, minio.ListObjectsOptions{Prefix: "inputs/" + view.ID + "/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))
	client.On("RemoveObject", mock.Anything, testBucket, mock.AnythingOfType("string"), mock.Anything).Return(nil)

	require.NoError(t, svc.Delete(ctx, view.ID))
	client.AssertNumberOfCalls(t, "RemoveObject", 3)

	_, err = svc.Get(ctx, view.ID)
	assert.ErrorIs(t, err, reconciliation.ErrRunNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, view.ID), reconciliation.ErrRunNotFound)
}

func TestService_WithoutStorage(t *testing.T) {
	svc, _ := newTestService(t)
	view := createRun(t, svc)

	noStore := reconciliation.NewService(nil, nil, nil, "", nil)
	_, err := noStore.Export(context.Background(), view.ID)
	assert.ErrorIs(t, err, reconciliation.ErrStorageDisabled)
}
