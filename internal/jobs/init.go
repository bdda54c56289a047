package jobs

import (
	"context"
	"time"

	"mas-astro/nightwatch/internal/astro"
	"mas-astro/nightwatch/internal/metrics"
)

// InitializeJobs initializes and starts all background jobs. startupPost
// fires an immediate digest on boot (non-production deployments); the
// repost guard keeps a crash-loop from spamming the channel.
func InitializeJobs(
	ctx context.Context,
	builder *astro.Builder,
	publisher Publisher,
	location *time.Location,
	postHour int,
	reg *metrics.MetricsRegistry,
	directoryUp bool,
	startupPost bool,
) *DigestJob {
	digestJob := NewDigestJob(builder, publisher, location, postHour, reg)

	// Daily digest at postHour local time
	go digestJob.RunScheduled(ctx)

	if startupPost {
		go func() {
			_, _ = digestJob.TryPublish(ctx, "startup")
		}()
	}

	// Hourly liveness line
	go NewHeartbeatJob(directoryUp).RunScheduled(ctx, 1*time.Hour)

	return digestJob
}
