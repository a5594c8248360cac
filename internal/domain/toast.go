package domain

import (
	"encoding/json"
	"time"
)

type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
)

// Toast is a transient notification. A zero Duration never expires.
type Toast struct {
	ID       string
	Message  string
	Type     ToastType
	Duration time.Duration
}

func (t Toast) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string    `json:"id"`
		Message  string    `json:"message"`
		Type     ToastType `json:"type"`
		Duration int64     `json:"duration"` // milliseconds
	}{t.ID, t.Message, t.Type, t.Duration.Milliseconds()})
}
