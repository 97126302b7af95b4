package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"territory/internal/amqp"
	"territory/internal/core"
	"territory/internal/log"
	"territory/internal/settings"
)

// SettingsService orchestrates target settings across the store and AMQP.
// Saves are coalesced so a burst of edits produces one store write; the
// sync message for the worker is published after the write lands. Store
// and publish failures are logged, never surfaced to the editing user.
type SettingsService struct {
	store      settings.Store
	amqpClient *amqp.Client
	coalescer  *settings.WriteCoalescer
	logger     *log.Logger
}

func NewSettingsService(store settings.Store, amqpClient *amqp.Client, debounce time.Duration, logger *log.Logger) *SettingsService {
	s := &SettingsService{
		store:      store,
		amqpClient: amqpClient,
		logger:     logger.WithComponent("settings"),
	}
	s.coalescer = settings.NewWriteCoalescer(debounce, s.write)
	return s
}

// Get returns the current settings for an owner. A snapshot still waiting
// in the coalescer window takes precedence over the store, so readers see
// a save the moment it is accepted rather than when it is persisted.
// settings.ErrNotFound passes through so callers can distinguish absent
// from zero.
func (s *SettingsService) Get(ctx context.Context, ownerID string) (core.TargetSettings, error) {
	if ts, ok := s.coalescer.Pending(ownerID); ok {
		return ts, nil
	}
	return s.store.Get(ctx, ownerID)
}

// Save queues the settings for a coalesced write. Rapid successive saves
// for the same pass collapse to the last value.
func (s *SettingsService) Save(ctx context.Context, ts core.TargetSettings) error {
	if err := ts.Validate(); err != nil {
		return err
	}
	s.coalescer.Enqueue(ts)
	return nil
}

// Delete removes the owner's settings and notifies the sync worker. A
// save still waiting in the coalescer window is discarded so it cannot
// resurrect the record after the delete.
func (s *SettingsService) Delete(ctx context.Context, ownerID string) error {
	hadPending := s.coalescer.Discard(ownerID)
	if err := s.store.Delete(ctx, ownerID); err != nil {
		// A record that only ever existed as a pending save is still a
		// successful delete from the caller's view.
		if !(errors.Is(err, settings.ErrNotFound) && hadPending) {
			return err
		}
	}
	s.publish(ctx, amqp.NewSettingsDeleteMessage(ownerID))
	return nil
}

// write is the coalescer sink. It runs on the timer goroutine, outside any
// request, so failures can only be logged.
func (s *SettingsService) write(ts core.TargetSettings) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.store.Put(ctx, ts); err != nil {
		s.logger.Error("settings write failed",
			log.FieldOwner, ts.OwnerID,
			log.FieldError, err)
		return
	}
	s.publish(ctx, amqp.NewSettingsSyncMessage(ts.OwnerID))
}

func (s *SettingsService) publish(ctx context.Context, msg *amqp.SettingsSyncMessage) {
	if s.amqpClient == nil {
		s.logger.Debug("AMQP client not available, skipping sync message",
			log.FieldOwner, msg.Owner)
		return
	}
	if err := s.amqpClient.PublishSettingsSync(ctx, msg); err != nil {
		s.logger.Error("failed to publish sync message",
			log.FieldOwner, msg.Owner,
			log.FieldError, err)
	}
}

// Flush writes any pending coalesced settings immediately.
func (s *SettingsService) Flush() {
	s.coalescer.Flush()
}

// Close flushes pending writes and closes the AMQP connection.
func (s *SettingsService) Close() error {
	s.coalescer.Flush()
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp: %w", err)
		}
	}
	return nil
}
