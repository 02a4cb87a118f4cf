package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

func TestPgCode_DesenvuelveErroresDePostgres(t *testing.T) {
	wrapped := fmt.Errorf("insert product: %w", &pgconn.PgError{Code: codeUniqueViolation})

	assert.Equal(t, codeUniqueViolation, pgCode(wrapped))
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isForeignKeyViolation(wrapped))
	assert.False(t, isCheckViolation(wrapped))

	assert.True(t, isCheckViolation(&pgconn.PgError{Code: codeCheckViolation}))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: codeForeignKeyViolation}))

	assert.Empty(t, pgCode(errors.New("otro error")))
	assert.Empty(t, pgCode(nil))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "req-1", nullIfEmpty("req-1"))
}

func TestStatusArgs(t *testing.T) {
	got := statusArgs([]entity.LineStatus{entity.LineStatusPending, entity.LineStatusInProgress})
	assert.Equal(t, []string{string(entity.LineStatusPending), string(entity.LineStatusInProgress)}, got)
	assert.Empty(t, statusArgs[entity.LineStatus](nil))
}
