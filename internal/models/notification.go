package models

// NotificationKind is the severity of a user-facing notification.
type NotificationKind string

const (
	NotificationNone    NotificationKind = ""
	NotificationSuccess NotificationKind = "success"
	NotificationWarning NotificationKind = "warning"
	NotificationError   NotificationKind = "error"
)

// Variant returns the alert style used to render the kind.
func (k NotificationKind) Variant() string {
	switch k {
	case NotificationSuccess:
		return "success"
	case NotificationWarning:
		return "warning"
	case NotificationError:
		return "danger"
	default:
		return ""
	}
}

// Notification is a dismissible message shown above the login form.
// An empty message always carries NotificationNone.
type Notification struct {
	Message string
	Kind    NotificationKind
}

// NewNotification builds a notification, collapsing an empty message to the
// empty notification.
func NewNotification(kind NotificationKind, message string) Notification {
	if message == "" {
		return Notification{}
	}
	return Notification{Message: message, Kind: kind}
}

// Empty reports whether there is nothing to show.
func (n Notification) Empty() bool {
	return n.Message == ""
}
