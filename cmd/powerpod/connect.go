package main

import (
	"context"
	"fmt"
	"time"

	"github.com/bucko909/powerpod/internal/config"
	"github.com/bucko909/powerpod/internal/link"
	"github.com/bucko909/powerpod/internal/transport"
)

// dialHost opens the configured serial port and wraps it in a host-
// role link protocol, retrying with exponential backoff until ctx is
// canceled.
func dialHost(ctx context.Context, cfg *config.Config) (*link.Protocol, transport.ByteChannel, error) {
	ch, err := connectSerialWithRetry(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return link.New(ch, link.RoleHost, logger), ch, nil
}

// connectSerialWithRetry opens the serial port, retrying with
// exponential backoff (1s, capped at 60s) until it succeeds or ctx is
// canceled. Mirrors the teacher's connectWithRetry.
func connectSerialWithRetry(ctx context.Context, cfg *config.Config) (transport.ByteChannel, error) {
	backoff := time.Second
	const maxBackoff = 60 * time.Second

	for attempt := 1; ; attempt++ {
		ch, err := transport.OpenSerial(cfg.Serial.Port, cfg.Serial.Baud)
		if err == nil {
			return ch, nil
		}
		logger.Printf("[powerpod] connect to %s failed (attempt %d): %v", cfg.Serial.Port, attempt, err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect: canceled: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
