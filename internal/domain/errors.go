package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrItemNotFound     = errors.New("línea de documento no encontrada")
	ErrExportInProgress = errors.New("ya hay una exportación en curso")
)
