package jobs

import (
	"context"
	"sync"
	"time"

	"mas-astro/nightwatch/internal/astro"
	"mas-astro/nightwatch/internal/logging"
	"mas-astro/nightwatch/internal/metrics"
)

// repostGuard suppresses a second digest post this close to the previous
// one. Covers the restart-near-schedule case and double manual triggers.
const repostGuard = 5 * time.Minute

// Publisher delivers an assembled digest. Implemented by the bot package's
// webhook and channel publishers.
type Publisher interface {
	Publish(ctx context.Context, digest *astro.Digest) error
}

// DigestJob assembles and posts the daily astronomy digest: once a day at
// the configured hour, and on demand through TryPublish.
type DigestJob struct {
	builder   *astro.Builder
	publisher Publisher
	metrics   *metrics.MetricsRegistry
	location  *time.Location
	postHour  int
	now       func() time.Time

	mu         sync.Mutex
	lastPostAt time.Time
}

// NewDigestJob creates a new digest job instance. postHour is the local
// hour (in location) of the daily post.
func NewDigestJob(
	builder *astro.Builder,
	publisher Publisher,
	location *time.Location,
	postHour int,
	reg *metrics.MetricsRegistry,
) *DigestJob {
	if location == nil {
		location = time.UTC
	}
	return &DigestJob{
		builder:   builder,
		publisher: publisher,
		metrics:   reg,
		location:  location,
		postHour:  postHour,
		now:       time.Now,
	}
}

// TryPublish assembles and posts the digest unless one was posted within
// the last repostGuard window. Returns false when the post was suppressed.
//
// The timestamp is stamped before assembly begins, so a second trigger
// arriving while the providers are still being queried is suppressed too.
func (j *DigestJob) TryPublish(ctx context.Context, trigger string) (bool, error) {
	j.mu.Lock()
	now := j.now()
	if !j.lastPostAt.IsZero() && now.Sub(j.lastPostAt) < repostGuard {
		since := now.Sub(j.lastPostAt)
		j.mu.Unlock()
		logging.Info("Digest post suppressed, posted recently",
			"trigger", trigger, "since_last", since.Truncate(time.Second).String())
		j.count(trigger, "skipped")
		return false, nil
	}
	previous := j.lastPostAt
	j.lastPostAt = now
	j.mu.Unlock()

	start := time.Now()
	digest := j.builder.Build(ctx)

	if err := j.publisher.Publish(ctx, digest); err != nil {
		// Give the stamp back so a retry isn't locked out for the window
		j.mu.Lock()
		j.lastPostAt = previous
		j.mu.Unlock()

		logging.Error("Digest publish failed", "trigger", trigger, "error", err.Error())
		j.count(trigger, "error")
		return false, err
	}

	logging.Info("Digest published",
		"trigger", trigger,
		"fields", len(digest.Fields),
		"duration", time.Since(start).Truncate(time.Millisecond).String())
	j.count(trigger, "success")
	return true, nil
}

// RunScheduled posts the digest at postHour local time every day until the
// context is cancelled.
func (j *DigestJob) RunScheduled(ctx context.Context) {
	for {
		wait := j.untilNextPost()
		logging.Info("Next scheduled digest",
			"at", j.now().Add(wait).In(j.location).Format(time.RFC3339))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			if _, err := j.TryPublish(ctx, "scheduled"); err != nil {
				logging.Error("Scheduled digest run failed", "error", err.Error())
			}
		case <-ctx.Done():
			timer.Stop()
			logging.Info("Shutting down digest scheduler")
			return
		}
	}
}

// untilNextPost returns the duration until the next postHour boundary in
// the job's location.
func (j *DigestJob) untilNextPost() time.Duration {
	now := j.now().In(j.location)
	next := time.Date(now.Year(), now.Month(), now.Day(), j.postHour, 0, 0, 0, j.location)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func (j *DigestJob) count(trigger, result string) {
	if j.metrics != nil {
		j.metrics.DigestPublishesTotal.WithLabelValues(trigger, result).Inc()
	}
}
