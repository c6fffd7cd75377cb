package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCodes(t *testing.T) {
	wrapped := fmt.Errorf("insert product: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isForeignKeyViolation(wrapped))

	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isInvalidText(&pgconn.PgError{Code: "22P02"}))
	assert.Equal(t, "", pgCode(errors.New("plain")))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	s := nullable("abc")
	if assert.NotNil(t, s) {
		assert.Equal(t, "abc", deref(s))
	}
	assert.Equal(t, "", deref(nil))
}
