// Package resource implements the Controller for run-wide limits.
//
// The Controller manages three resource types:
//
//   - Memory: Track and limit per-cell working memory
//   - Concurrency: Limit the number of cells clustered at once
//   - IO: Rate-limit export uploads
//
// # Memory Management
//
// AcquireMemory waits while concurrent reservations leave too little room,
// so the limit bounds peak usage without making success depend on how many
// cells run at once. Only a single request larger than the whole limit
// returns ErrMemoryLimitExceeded, which the engine treats as fatal:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30,
//	})
//	if err := rc.AcquireMemory(ctx, n); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(n)
//
// # Worker Limits
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
// # IO Rate Limiting
//
//	w := resource.NewRateLimitedWriter(ctx, dst, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
