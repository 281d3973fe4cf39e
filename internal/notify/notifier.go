package notify

import "go.uber.org/zap"

// Severity segue o colaborador de notificação da UI: success ou error.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Notifier é fire-and-forget: o núcleo não depende da entrega.
type Notifier interface {
	Notify(severity Severity, message string)
}

// LogNotifier é a implementação padrão do servidor: registra a
// notificação; a UI re-renderiza a partir da resposta HTTP.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(severity Severity, message string) {
	if severity == SeverityError {
		n.log.Warn("user notification", zap.String("message", message))
		return
	}
	n.log.Info("user notification", zap.String("message", message))
}
