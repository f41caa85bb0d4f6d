package sqlitestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/tmp/todo.db", "file:///tmp/todo.db?_busy_timeout=5000"},
		{"/tmp/a?b#c%d/todo.db", "file:///tmp/a%3Fb%23c%25d/todo.db?_busy_timeout=5000"},
		{"data/todo.db", "file:data/todo.db?_busy_timeout=5000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dsn(tt.path), tt.path)
	}
}
