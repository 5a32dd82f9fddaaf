package model

import "time"

// Settings is the single process-wide booking configuration row,
// mutated from the admin settings form.
type Settings struct {
	AutoConfirm       bool      `db:"auto_confirm" json:"auto_confirm"`
	WhatsappReminder  bool      `db:"whatsapp_reminder" json:"whatsapp_reminder"`
	AutoSendReminders bool      `db:"auto_send_reminders" json:"auto_send_reminders"`
	ReminderHours     int       `db:"reminder_hours" json:"reminder_hours"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultSettings returns the configuration used before the admin has
// saved anything.
func DefaultSettings() *Settings {
	return &Settings{
		AutoConfirm:       true,
		WhatsappReminder:  true,
		AutoSendReminders: false,
		ReminderHours:     2,
	}
}

type UpdateSettingsRequest struct {
	AutoConfirm       *bool `json:"auto_confirm"`
	WhatsappReminder  *bool `json:"whatsapp_reminder"`
	AutoSendReminders *bool `json:"auto_send_reminders"`
	ReminderHours     *int  `json:"reminder_hours" binding:"omitempty,gt=0"`
}
