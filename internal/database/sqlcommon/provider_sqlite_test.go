// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sqlcommon

import (
	"context"
	"database/sql"
	"testing"

	sq "github.com/Masterminds/squirrel"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/pkg/worldstate"
	"github.com/stretchr/testify/assert"

	// Import the SQLite driver
	_ "modernc.org/sqlite"
)

// sqliteTestProvider uses an in-memory SQLite database
type sqliteTestProvider struct {
	SQLCommon

	prefix config.Prefix
	t      *testing.T
}

// newSQLiteTestProvider creates a real in-memory database provider for e2e testing
func newSQLiteTestProvider(t *testing.T) *sqliteTestProvider {
	config.Reset()
	tp := &sqliteTestProvider{
		t:      t,
		prefix: config.NewPluginConfig("unittest.db"),
	}
	tp.SQLCommon.InitPrefix(tp, tp.prefix)
	tp.prefix.Set(SQLConfDatasourceURL, "file::memory:")
	tp.prefix.Set(SQLConfMigrationsAuto, true)
	tp.prefix.Set(SQLConfMigrationsDirectory, "../../../db/migrations/sqlite")
	tp.prefix.Set(SQLConfMaxConnections, 1)

	err := tp.Init(context.Background(), tp, tp.prefix, &worldstate.Capabilities{Persistent: true})
	assert.NoError(tp.t, err)

	return tp
}

func (tp *sqliteTestProvider) Name() string {
	return "sqlite"
}

func (tp *sqliteTestProvider) MigrationsDir() string {
	return "sqlite"
}

func (tp *sqliteTestProvider) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Dollar
}

func (tp *sqliteTestProvider) Open(url string) (*sql.DB, error) {
	return sql.Open("sqlite", url)
}

func (tp *sqliteTestProvider) GetMigrationDriver(db *sql.DB) (migratedb.Driver, error) {
	return migratesqlite.WithInstance(db, &migratesqlite.Config{})
}
