package models

import "time"

// ConfirmationCode is the single live registration code for an email address.
// Issuing a new code replaces the old row; there is no expiry.
type ConfirmationCode struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Code      string    `json:"confirmation_code" gorm:"size:32;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (ConfirmationCode) TableName() string {
	return "confirmation_codes"
}
