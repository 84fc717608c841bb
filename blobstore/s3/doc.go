// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("graphs/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = export.Write(ctx, store, "run.json.zst", doc)
//
// # Features
//
//   - Multipart uploads for large documents
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
