package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/migrations"
)

func TestNewDB_PlaceholdersFollowDialect(t *testing.T) {
	cases := []struct {
		dialect migrations.Dialect
		want    string
	}{
		{dialect: migrations.Postgres, want: "SELECT version FROM sync_heads WHERE account_id = $1 AND collection = $2"},
		{dialect: migrations.SQLite, want: "SELECT version FROM sync_heads WHERE account_id = ? AND collection = ?"},
	}

	for _, tc := range cases {
		t.Run(string(tc.dialect), func(t *testing.T) {
			conn, _, err := sqlmock.New()
			require.NoError(t, err)
			defer conn.Close()

			db := newDB(conn, tc.dialect, logger.Nop())
			query, args, err := db.builder.
				Select("version").
				From("sync_heads").
				Where("account_id = ? AND collection = ?", "acc", "regular").
				ToSql()

			require.NoError(t, err)
			assert.Equal(t, tc.want, query)
			assert.Equal(t, []any{"acc", "regular"}, args)
		})
	}
}
