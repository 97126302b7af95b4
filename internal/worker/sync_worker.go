// Package worker mirrors target settings changes from the store to an
// external spreadsheet, driven by AMQP sync messages.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"territory/internal/amqp"
	"territory/internal/settings"
	"territory/internal/sheets"
)

// SyncWorker applies settings sync messages against the spreadsheet mirror.
// The message carries only the owner and operation; the current settings
// are read from the store at handling time, so stale or reordered messages
// converge on the latest state.
type SyncWorker struct {
	store  settings.Store
	mirror sheets.SettingsMirror
}

func NewSyncWorker(store settings.Store, mirror sheets.SettingsMirror) *SyncWorker {
	return &SyncWorker{
		store:  store,
		mirror: mirror,
	}
}

// HandleMessage processes a single settings sync message from AMQP
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.SettingsSyncMessage) error {
	slog.InfoContext(ctx, "Processing settings sync message",
		"owner", msg.Owner,
		"op", msg.Op)

	switch msg.Op {
	case amqp.OpUpsert:
		return w.handleUpsert(ctx, msg.Owner)
	case amqp.OpDelete:
		return w.handleDelete(ctx, msg.Owner)
	default:
		// Unknown ops are dropped, not requeued
		slog.WarnContext(ctx, "Unknown sync op, dropping message",
			"owner", msg.Owner,
			"op", msg.Op)
		return nil
	}
}

func (w *SyncWorker) handleUpsert(ctx context.Context, ownerID string) error {
	ts, err := w.store.Get(ctx, ownerID)
	if errors.Is(err, settings.ErrNotFound) {
		// Deleted between publish and consume: the delete message will
		// clear the mirror, nothing to upsert now.
		slog.InfoContext(ctx, "Settings gone before sync, skipping", "owner", ownerID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get settings from store: %w", err)
	}

	if err := w.mirror.UpsertSettings(ctx, ts); err != nil {
		return fmt.Errorf("mirror settings: %w", err)
	}

	slog.InfoContext(ctx, "Settings mirrored", "owner", ownerID)
	return nil
}

func (w *SyncWorker) handleDelete(ctx context.Context, ownerID string) error {
	if err := w.mirror.DeleteSettings(ctx, ownerID); err != nil {
		return fmt.Errorf("delete mirrored settings: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored settings cleared", "owner", ownerID)
	return nil
}

// Run consumes sync messages until the context is cancelled.
func (w *SyncWorker) Run(ctx context.Context, client *amqp.Client) error {
	return client.ConsumeSettingsSync(ctx, func(msg *amqp.SettingsSyncMessage) error {
		return w.HandleMessage(ctx, msg)
	})
}
