package lognotify

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/appearance-snapshots/internal/logging"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Notifier surfaces user-facing messages. Every message is logged; when out is set it is
// also printed as a short styled line, which is what the watch loop shows the user.
type Notifier struct {
	logger *log.Logger
	out    io.Writer

	mu     sync.Mutex
	styles map[ports.NotificationLevel]lipgloss.Style
}

var _ ports.Notifier = (*Notifier)(nil)

func New(logger *log.Logger, out io.Writer) *Notifier {
	return &Notifier{
		logger: logging.OrDiscard(logger),
		out:    out,
		styles: map[ports.NotificationLevel]lipgloss.Style{
			ports.NotifyInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			ports.NotifyWarning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
			ports.NotifyError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		},
	}
}

func (n *Notifier) Notify(level ports.NotificationLevel, message string) {
	switch level {
	case ports.NotifyError:
		n.logger.Error(message, "notification", true)
	case ports.NotifyWarning:
		n.logger.Warn(message, "notification", true)
	default:
		level = ports.NotifyInfo
		n.logger.Info(message, "notification", true)
	}

	if n.out == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.out, "%s %s\n", n.styles[level].Render("["+string(level)+"]"), message)
}
