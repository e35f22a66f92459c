// Package supervisor owns the fleet of client connections: staggered
// startup, automatic reconnect with backoff, and the operator command
// surface used to drive individual bots from one process.
package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ardenlabs/voxelbot/internal/client"
	"github.com/ardenlabs/voxelbot/internal/config"
)

// Supervisor runs one client.Client per configured bot identity and keeps
// it connected for the lifetime of the process.
type Supervisor struct {
	cfg config.Config
	log *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client.Client
}

func New(cfg config.Config, log *slog.Logger) *Supervisor {
	if log == nil {
		log = slog.Default()
	}
	return &Supervisor{
		cfg:     cfg,
		log:     log,
		clients: make(map[string]*client.Client, len(cfg.Clients)),
	}
}

// Client returns the named bot's client, or nil if no bot with that
// username was configured.
func (s *Supervisor) Client(username string) *client.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients[username]
}

// Usernames lists every configured bot, in config order.
func (s *Supervisor) Usernames() []string {
	names := make([]string, 0, len(s.cfg.Clients))
	for _, cc := range s.cfg.Clients {
		names = append(names, cc.Username)
	}
	return names
}

// Run launches every configured client, staggering their startup, and
// blocks until ctx is cancelled or one client gives up on reconnecting;
// that client's error cancels the others and is returned.
func (s *Supervisor) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	stagger := time.Duration(s.cfg.Supervisor.StartupStagger) * time.Millisecond

	for i, cc := range s.cfg.Clients {
		cc := cc
		delay := stagger * time.Duration(i)
		g.Go(func() error {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			return s.runClient(ctx, cc)
		})
	}

	return g.Wait()
}

func (s *Supervisor) runClient(ctx context.Context, cc config.ClientConfig) error {
	log := s.log.With("bot", cc.Username)
	c := client.New(client.Config{
		Host:            s.cfg.Server.Host,
		Port:            s.cfg.Server.Port,
		ProtocolVersion: s.cfg.Server.ProtocolVersion,
		Username:        cc.Username,
	}, log)

	s.mu.Lock()
	s.clients[cc.Username] = c
	s.mu.Unlock()

	var attempts int
	for {
		log.Info("connecting")
		err := s.runOnce(ctx, c, cc)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		attempts++
		log.Warn("disconnected", "attempt", attempts, "error", err)

		if max := s.cfg.Supervisor.MaxReconnectAttempts; max > 0 && attempts >= max {
			return fmt.Errorf("bot %s: giving up after %d attempts: %w", cc.Username, attempts, err)
		}

		delay := s.reconnectDelay(attempts)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// runOnce runs a single connection attempt, racing it against a liveness
// watchdog: the client only ever echoes the server's keep-alive, so it is
// the supervisor's job to notice a connection that has gone silent and
// force it closed so runClient can retry.
func (s *Supervisor) runOnce(ctx context.Context, c *client.Client, cc config.ClientConfig) error {
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	timeout := time.Duration(cc.KeepAliveInterval) * time.Second * 3
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(timeout / 3)
		defer ticker.Stop()
		for {
			select {
			case <-connCtx.Done():
				return
			case <-ticker.C:
				if last := c.LastActivity(); !last.IsZero() && time.Since(last) > timeout {
					s.log.Warn("keep-alive timeout, closing connection", "bot", cc.Username, "idle", time.Since(last))
					c.Close()
					return
				}
			}
		}
	}()

	err := c.Connect(connCtx)
	cancel()
	<-done
	return err
}

func (s *Supervisor) reconnectDelay(attempts int) time.Duration {
	base := time.Duration(s.cfg.Supervisor.ReconnectDelay) * time.Millisecond
	if !s.cfg.Supervisor.ExponentialBackoff {
		return base
	}
	delay := base
	for i := 1; i < attempts && delay < 30*time.Second; i++ {
		delay *= 2
	}
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	return delay
}
