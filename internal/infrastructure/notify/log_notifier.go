package notify

import (
	"context"

	"github.com/construplan/construplan-api/internal/application/ports"
	"github.com/construplan/construplan-api/pkg/logger"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier sink de notificaciones respaldado por el logger estructurado.
// El colaborador real (push/correo) se conecta por fuera leyendo estos
// eventos; para el núcleo la entrega es fire-and-forget.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el sink.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify emite la notificación como evento de log. Nunca falla ni bloquea.
func (n *LogNotifier) Notify(ctx context.Context, notification ports.Notification) {
	n.log.Info().
		Str("category", notification.Category).
		Str("title", notification.Title).
		Str("body", notification.Body).
		Msg("notificación emitida")
}
