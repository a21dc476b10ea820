package dberr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "unrelated error", err: errors.New("connection refused"), expected: false},
		{name: "gorm translated", err: gorm.ErrDuplicatedKey, expected: true},
		{name: "wrapped gorm translated", err: errors.Join(errors.New("create failed"), gorm.ErrDuplicatedKey), expected: true},
		{name: "sqlite message", err: errors.New("UNIQUE constraint failed: users.email"), expected: true},
		{name: "mysql message", err: errors.New("Error 1062 (23000): Duplicate entry 'a@b.c' for key 'users.email'"), expected: true},
		{name: "postgres message", err: errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key"`), expected: true},
		{name: "record not found", err: gorm.ErrRecordNotFound, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsDuplicateKey(tc.err))
		})
	}
}
