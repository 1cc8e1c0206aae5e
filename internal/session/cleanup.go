package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// cleanupTimeout bounds a single sweep of the store.
const cleanupTimeout = 30 * time.Second

// CleanupService handles automatic cleanup of expired sessions
type CleanupService struct {
	manager  SessionManager
	interval time.Duration
	logger   zerolog.Logger

	mutex   sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// CleanupConfig contains configuration for the cleanup service
type CleanupConfig struct {
	CleanupInterval time.Duration
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(manager SessionManager, config CleanupConfig, logger zerolog.Logger) *CleanupService {
	return &CleanupService{
		manager:  manager,
		interval: config.CleanupInterval,
		logger:   logger.With().Str("component", "cleanup_service").Logger(),
	}
}

// Run sweeps expired sessions every interval until ctx is done.
func (c *CleanupService) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Info().
		Dur("interval", c.interval).
		Msg("Starting session cleanup service")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("Session cleanup service stopped")
			return nil
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, cleanupTimeout)
			if _, err := c.RunOnce(sweepCtx); err != nil {
				c.logger.Error().
					Err(err).
					Msg("Cleanup operation failed")
			}
			cancel()
		}
	}
}

// Start runs the service in the background until Stop is called or ctx is
// done. Starting a running service does nothing.
func (c *CleanupService) Start(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.cancel != nil {
		c.logger.Warn().Msg("Cleanup service is already running")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	c.cancel, c.stopped = cancel, stopped
	go func() {
		defer close(stopped)
		_ = c.Run(ctx)
	}()
}

// Stop halts a service started with Start and waits for it to finish.
func (c *CleanupService) Stop() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.stopped
	c.cancel, c.stopped = nil, nil
}

// IsRunning returns whether the cleanup service is currently running
func (c *CleanupService) IsRunning() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.cancel != nil
}

// RunOnce performs a single cleanup operation
func (c *CleanupService) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()
	deleted, err := c.manager.CleanupExpiredSessions(ctx)
	if err != nil {
		return 0, err
	}

	c.logger.Debug().
		Int("deleted_count", deleted).
		Dur("duration", time.Since(start)).
		Msg("Session cleanup completed")
	return deleted, nil
}
