package ports

import "context"

// Notification mensaje fire-and-forget hacia el colaborador de notificaciones
// (push, correo, lo que sea: el núcleo no lo sabe).
type Notification struct {
	Title    string
	Body     string
	Category string // "budget" | "replenishment"
}

// Notifier puerto de salida para alertas y sugerencias. La entrega no es
// confiable ni bloqueante: un fallo de notificación nunca afecta la operación.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
