// Package export turns a Mapper result into a self-contained graph document
// and moves it to and from blob storage.
//
// Documents are plain JSON, optionally compressed with LZ4 or Zstandard.
// Decode detects the compression from the frame magic, so readers need no
// out-of-band metadata:
//
//	doc := export.FromResult(res, len(points))
//	err := export.Write(ctx, store, "graphs/run.json.zst", doc,
//	    export.WithCompression(export.CompressionZstd))
//
// Node hints (relative size, colour, title) are rendering suggestions for
// a visualisation layer; the graph itself is fully described by the node
// and edge lists.
package export
