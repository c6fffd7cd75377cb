package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02" // p. ej. un uuid mal formado
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation indica una violación de unicidad (23505).
func isUniqueViolation(err error) bool { return pgCode(err) == codeUniqueViolation }

// isForeignKeyViolation indica una violación de clave foránea (23503), p. ej. borrar un producto vendido.
func isForeignKeyViolation(err error) bool { return pgCode(err) == codeForeignKeyViolation }

// isInvalidText indica un id que no parsea al tipo de la columna; las búsquedas lo tratan como no encontrado.
func isInvalidText(err error) bool { return pgCode(err) == codeInvalidText }

// nullable convierte "" en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref convierte NULL de vuelta en "".
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
