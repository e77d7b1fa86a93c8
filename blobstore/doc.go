// Package blobstore provides storage backends for encoded splat archives.
//
// Store is the interface for publishing and retrieving archives by name.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with atomic writes
//   - MemoryStore: In-memory store for testing
//   - s3.Store: Amazon S3 with multipart uploads
//   - minio.Store: MinIO and other S3-compatible storage
//
// Wrap any backend with NewCompressedStore to compress archives at rest.
package blobstore
