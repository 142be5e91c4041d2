package models

// ToastKind - тип уведомления.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// Toast - короткоживущее уведомление пользователю.
// Живёт в памяти процесса и удаляется само по таймеру либо вручную по ID.
type Toast struct {
	ID      string    `json:"id"`
	Kind    ToastKind `json:"kind"`
	Message string    `json:"message"`
}
