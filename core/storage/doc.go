// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so that both AWS S3
// and self-hosted MinIO can hold uploaded input tables and exported workbooks,
// and so that tests can use the testify mock in core/storage/mocks.
//
// # Layout
//
//   - inputs/<run-id>/<file>: parts and placement tables uploaded with a run
//   - reports/<run-id>.xlsx: production workbook exported for a run
//
// # Helpers
//
//   - EnsureBucket: creates the bucket on first start.
//   - Upload / Download: whole-object transfers.
//   - RemovePrefix: deletes every object under a prefix (used when a run is deleted).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
