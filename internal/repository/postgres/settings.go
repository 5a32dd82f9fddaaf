package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jwalitptl/salon-api/internal/model"
)

// Settings lives in a single fixed row; Get falls back to defaults
// until the admin has saved once.

func (r *settingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	query := `
		SELECT auto_confirm, whatsapp_reminder, auto_send_reminders,
			   reminder_hours, updated_at
		FROM settings
		WHERE id = 1
	`
	var settings model.Settings
	err := r.db.GetContext(ctx, &settings, query)
	if err == sql.ErrNoRows {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *model.Settings) error {
	query := `
		INSERT INTO settings (
			id, auto_confirm, whatsapp_reminder, auto_send_reminders,
			reminder_hours, updated_at
		) VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			auto_confirm = EXCLUDED.auto_confirm,
			whatsapp_reminder = EXCLUDED.whatsapp_reminder,
			auto_send_reminders = EXCLUDED.auto_send_reminders,
			reminder_hours = EXCLUDED.reminder_hours,
			updated_at = EXCLUDED.updated_at
	`
	settings.UpdatedAt = time.Now()

	if _, err := r.db.ExecContext(ctx, query,
		settings.AutoConfirm,
		settings.WhatsappReminder,
		settings.AutoSendReminders,
		settings.ReminderHours,
		settings.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
