package service

import "regexp"

// FieldErrors acumula mensajes de validación por campo del formulario.
type FieldErrors map[string][]string

func (f FieldErrors) add(field, message string) {
	f[field] = append(f[field], message)
}

// ValidationError transporta errores de validación campo a campo. Los
// handlers la reportan al cliente y nunca la registran como error de servidor.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

var (
	emailRe      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	hasLetterRe  = regexp.MustCompile(`[a-zA-Z]`)
	hasDigitRe   = regexp.MustCompile(`[0-9]`)
	dateRe       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	sinRe        = regexp.MustCompile(`^\d{9}$`)
	postalCodeRe = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z]\s?\d[A-Za-z]\d$`)
)
