package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		user, pass string
		want       string
	}{
		{
			name: "native dsn untouched",
			in:   "root:pw@tcp(127.0.0.1:3306)/healthy?parseTime=true",
			want: "root:pw@tcp(127.0.0.1:3306)/healthy?parseTime=true",
		},
		{
			name: "url form",
			in:   "mysql://root:pw@db:3306/healthy",
			want: "root:pw@tcp(db:3306)/healthy?charset=utf8mb4&parseTime=true",
		},
		{
			name: "jdbc with overrides",
			in:   "jdbc:mysql://db:3306/healthy?useSSL=false&characterEncoding=utf8",
			user: "app", pass: "secret",
			want: "app:secret@tcp(db:3306)/healthy?charset=utf8&parseTime=true&tls=false",
		},
		{
			name: "empty",
			in:   "  ",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeMySQLDSN(tt.in, tt.user, tt.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "root:****@tcp(db:3306)/x", MaskDSN("root:pw@tcp(db:3306)/x"))
	assert.Equal(t, "postgres://u:****@h/db", MaskDSN("postgres://u:p@h/db"))
	assert.Equal(t, "test.db", MaskDSN("test.db"))
	assert.Equal(t, "postgres://u@h/db", MaskDSN("postgres://u@h/db"))
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewGorm_SQLite(t *testing.T) {
	db, err := NewGorm(Opts{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "t.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}
