package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder(" asc "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder("; DROP TABLE"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "staff_name", ValidateSortField("staff_name", StaffWageSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("password", StaffWageSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("  ", StaffWageSortFields, "created_at"))
}
