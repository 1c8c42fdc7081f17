package sqlite

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, loc)

	formatted := FormatTimeForDB(ts)
	assert.Equal(t, "2024-03-15T15:30:00Z", formatted)

	parsed, err := ParseTimeFromDB(formatted)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))
}

func TestParseTimeFromDBInvalid(t *testing.T) {
	_, err := ParseTimeFromDB("not a time")
	assert.Error(t, err)
}

func TestNullableString(t *testing.T) {
	assert.Equal(t, sql.NullString{}, NullableString(""))
	assert.Equal(t, sql.NullString{String: "work", Valid: true}, NullableString("work"))

	assert.Nil(t, NullableStringPtr(nil))
	empty := ""
	assert.Equal(t, sql.NullString{}, NullableStringPtr(&empty))
}
