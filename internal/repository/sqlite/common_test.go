package sqlite

import (
	"database/sql"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/errors"
)

type fakeResult struct {
	rows int64
	err  error
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.rows, f.err }

func TestValidateRowsAffected(t *testing.T) {
	tests := []struct {
		name     string
		result   sql.Result
		wantType *errors.ErrorType
	}{
		{name: "one row", result: fakeResult{rows: 1}},
		{name: "no rows", result: fakeResult{rows: 0}, wantType: ptrType(errors.ErrorTypeNotFound)},
		{name: "driver error", result: fakeResult{err: stderrors.New("x")}, wantType: ptrType(errors.ErrorTypeDatabase)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRowsAffected(tt.result, "task", "1")
			if tt.wantType == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsErrorType(err, *tt.wantType))
		})
	}
}

func ptrType(t errors.ErrorType) *errors.ErrorType { return &t }
