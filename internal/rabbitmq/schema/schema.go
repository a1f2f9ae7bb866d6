package schema

import (
	"encoding/json"
	"errors"
	"time"
)

// PasswordResetNotification is the queued request to email a reset link.
type PasswordResetNotification struct {
	UserID          int64     `json:"userId"`
	Email           string    `json:"email"`
	PasswordResetID int64     `json:"passwordResetId"`
	Token           string    `json:"token"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

func (n *PasswordResetNotification) Marshal() ([]byte, error) {
	return json.Marshal(n)
}

func (n *PasswordResetNotification) Unmarshal(data []byte) error {
	if err := json.Unmarshal(data, n); err != nil {
		return err
	}
	return n.Validate()
}

func (n *PasswordResetNotification) Validate() error {
	if n.UserID == 0 {
		return errors.New("user ID must be set")
	}
	if n.Email == "" {
		return errors.New("email must be set")
	}
	if n.Token == "" {
		return errors.New("token must be set")
	}
	if n.ExpiresAt.IsZero() {
		return errors.New("expiration must be set")
	}
	return nil
}
