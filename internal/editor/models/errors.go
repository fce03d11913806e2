package models

import "fmt"

// ============================================================
// Error taxonomy
// ============================================================

// ValidationError некорректный запрос пользователя (мало точек эскиза,
// неправильная группировка). Операция отменена, состояние не тронуто.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// GeometryError вырожденная геометрия (нулевая площадь профиля и т.п.).
// Состояние эскиза сохраняется для повторной попытки.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string { return "geometry: " + e.Reason }

func Geometryf(format string, args ...any) error {
	return &GeometryError{Reason: fmt.Sprintf(format, args...)}
}

// FormatError битый документ сцены. Импорт атомарный: либо весь документ,
// либо ничего — прежняя сцена остается как была.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return "format: " + e.Reason }

func Formatf(format string, args ...any) error {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}
