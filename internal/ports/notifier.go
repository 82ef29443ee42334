package ports

type NotificationLevel string

const (
	NotifyInfo    NotificationLevel = "info"
	NotifyWarning NotificationLevel = "warning"
	NotifyError   NotificationLevel = "error"
)

type Notifier interface {
	Notify(level NotificationLevel, message string)
}

type NopNotifier struct{}

func (NopNotifier) Notify(NotificationLevel, string) {}
