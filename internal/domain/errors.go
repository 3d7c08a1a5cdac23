package domain

import "errors"

var ErrNotFound = errors.New("no encontrado")

// Errores del gate de identidad. Todos recuperables: se muestran inline,
// nunca tiran abajo el flujo.
var (
	ErrTokenUnreadable   = errors.New("token ilegible")
	ErrIncompleteProfile = errors.New("perfil incompleto")
	ErrTokenExpired      = errors.New("token expirado")
	ErrPersistenceFailed = errors.New("persistencia fallida")
)
