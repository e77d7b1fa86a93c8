// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// Uploads use the SDK's multipart uploader and may be throttled with an
// optional byte-rate limit:
//
//	store := s3.NewStore(client, "my-bucket", "scenes/", func(o *s3.Options) {
//		o.UploadLimitBytesPerSec = 10 << 20 // 10 MiB/s
//	})
package s3
