package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNotification(t *testing.T) {
	tests := []struct {
		name    string
		kind    NotificationKind
		message string
		want    Notification
	}{
		{
			name:    "success",
			kind:    NotificationSuccess,
			message: "Login successful!",
			want:    Notification{Message: "Login successful!", Kind: NotificationSuccess},
		},
		{
			name:    "empty message drops kind",
			kind:    NotificationError,
			message: "",
			want:    Notification{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewNotification(tt.kind, tt.message)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.message == "", got.Empty())
		})
	}
}

func TestNotificationKind_Variant(t *testing.T) {
	assert.Equal(t, "success", NotificationSuccess.Variant())
	assert.Equal(t, "warning", NotificationWarning.Variant())
	assert.Equal(t, "danger", NotificationError.Variant())
	assert.Equal(t, "", NotificationNone.Variant())
}
