// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Errors(t *testing.T) {
	newMockDB := func(t *testing.T) *sql.DB {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return db
	}

	cases := []struct {
		name    string
		db      func(t *testing.T) *sql.DB
		dialect Dialect
		wantIs  error
		wantMsg string
	}{
		{name: "nil db", db: func(*testing.T) *sql.DB { return nil }, dialect: Postgres, wantIs: ErrNilDB},
		{name: "unknown dialect", db: newMockDB, dialect: "mysql", wantMsg: `unsupported dialect "mysql"`},
		// sqlmock без ожиданий отклоняет первый же запрос goose
		{name: "relay schema query rejected", db: newMockDB, dialect: Postgres, wantMsg: "migration error"},
		{name: "client schema query rejected", db: newMockDB, dialect: SQLite, wantMsg: "migration error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Migrate(tc.db(t), tc.dialect)
			require.Error(t, err)
			if tc.wantIs != nil {
				assert.ErrorIs(t, err, tc.wantIs)
			}
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	tables := map[Dialect][]string{
		Postgres: {"sync_heads", "sync_patches", "sync_records"},
		SQLite:   {"collection_states", "app_state_sync_keys", "pending_mutations"},
	}

	for dialect, dir := range migrationDirs {
		t.Run(string(dialect), func(t *testing.T) {
			entries, err := embedMigrations.ReadDir(dir)
			require.NoError(t, err)
			require.NotEmpty(t, entries)

			var schema string
			for _, e := range entries {
				body, err := embedMigrations.ReadFile(dir + "/" + e.Name())
				require.NoError(t, err)
				assert.Contains(t, string(body), "-- +goose Up", e.Name())
				schema += string(body)
			}
			for _, table := range tables[dialect] {
				assert.Contains(t, schema, table)
			}
		})
	}
}
