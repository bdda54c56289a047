package jobs

import (
	"context"
	"time"

	"mas-astro/nightwatch/internal/db"
	"mas-astro/nightwatch/internal/logging"
)

// HeartbeatJob periodically logs a liveness line and, when the directory is
// configured, pings it so a silently dropped Mongo connection shows up in
// the logs before a member hits it.
type HeartbeatJob struct {
	started       time.Time
	pingDirectory bool
}

func NewHeartbeatJob(pingDirectory bool) *HeartbeatJob {
	return &HeartbeatJob{started: time.Now(), pingDirectory: pingDirectory}
}

// RunScheduled logs a liveness line on the given interval until the
// context is cancelled.
func (j *HeartbeatJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			uptime := time.Since(j.started).Truncate(time.Second).String()

			if !j.pingDirectory {
				logging.Info("Heartbeat", "uptime", uptime)
				continue
			}

			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := db.Ping(pingCtx)
			cancel()

			if err != nil {
				logging.Warn("Heartbeat: directory unreachable",
					"uptime", uptime, "error", err.Error())
			} else {
				logging.Info("Heartbeat", "uptime", uptime, "directory", "ok")
			}
		case <-ctx.Done():
			logging.Info("Shutting down heartbeat")
			return
		}
	}
}
