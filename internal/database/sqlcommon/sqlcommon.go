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

	sq "github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	"github.com/kaleido-io/productledger/internal/config"
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/log"
	"github.com/kaleido-io/productledger/pkg/pltypes"
	"github.com/kaleido-io/productledger/pkg/worldstate"

	// Import migrate file source
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// SQLCommon holds world state in a single key/value table, using a provider for the
// dialect specific parts
type SQLCommon struct {
	db           *sql.DB
	capabilities *worldstate.Capabilities
	provider     Provider
}

type txContextKey struct{}

// stateTx is a database transaction carrying world state writes. Operations that find a
// stateTx on their context join it, and leave commit and rollback to the owner.
type stateTx struct {
	ctx    context.Context
	sqlTX  *sql.Tx
	joined bool
}

func (s *SQLCommon) Init(ctx context.Context, provider Provider, prefix config.Prefix, capabilities *worldstate.Capabilities) (err error) {
	s.capabilities = capabilities
	s.provider = provider
	if s.provider == nil || s.provider.PlaceholderFormat() == nil {
		log.L(ctx).Errorf("Invalid SQL options from provider '%T'", s.provider)
		return i18n.NewError(ctx, i18n.MsgDBInitFailed)
	}
	ctx = log.WithLogField(ctx, "worldstate", provider.Name())

	if s.db, err = provider.Open(prefix.GetString(SQLConfDatasourceURL)); err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgDBInitFailed)
	}
	if connLimit := prefix.GetInt(SQLConfMaxConnections); connLimit > 0 {
		s.db.SetMaxOpenConns(connLimit)
	}

	if prefix.GetBool(SQLConfMigrationsAuto) {
		if err = s.migrateUp(ctx, prefix.GetString(SQLConfMigrationsDirectory)); err != nil {
			return i18n.WrapError(ctx, err, i18n.MsgDBMigrationFailed)
		}
	}
	log.L(ctx).Debugf("World state tables ready (autoMigrate=%t)", prefix.GetBool(SQLConfMigrationsAuto))
	return nil
}

func (s *SQLCommon) Capabilities() *worldstate.Capabilities { return s.capabilities }

// RunAsGroup runs fn inside one database transaction. World state writes made with the
// supplied context commit or roll back together.
func (s *SQLCommon) RunAsGroup(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.rollback()

	if err = fn(tx.ctx); err != nil {
		return err
	}
	return tx.commit()
}

func (s *SQLCommon) migrateUp(ctx context.Context, dir string) error {
	driver, err := s.provider.GetMigrationDriver(s.db)
	if err == nil {
		var m *migrate.Migrate
		if m, err = migrate.NewWithDatabaseInstance("file://"+dir, s.provider.MigrationsDir(), driver); err == nil {
			err = m.Up()
		}
	}
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}

func txFromContext(ctx context.Context) *stateTx {
	tx, _ := ctx.Value(txContextKey{}).(*stateTx)
	return tx
}

func (s *SQLCommon) begin(ctx context.Context) (*stateTx, error) {
	if tx := txFromContext(ctx); tx != nil {
		return &stateTx{ctx: ctx, sqlTX: tx.sqlTX, joined: true}, nil
	}

	l := log.L(ctx).WithField("dbtx", pltypes.ShortID())
	ctx = log.WithLogger(ctx, l)
	l.Debugf("SQL-> begin")
	sqlTX, err := s.db.Begin()
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBBeginFailed)
	}
	tx := &stateTx{sqlTX: sqlTX}
	tx.ctx = context.WithValue(ctx, txContextKey{}, tx)
	l.Debugf("SQL<- begin")
	return tx, nil
}

// buildSQL renders a statement with the provider's placeholders
func (s *SQLCommon) buildSQL(ctx context.Context, q sq.Sqlizer) (string, []interface{}, error) {
	sqlQuery, args, err := q.ToSql()
	if err == nil {
		sqlQuery, err = s.provider.PlaceholderFormat().ReplacePlaceholders(sqlQuery)
	}
	if err != nil {
		return "", nil, i18n.WrapError(ctx, err, i18n.MsgDBQueryBuildFailed)
	}
	return sqlQuery, args, nil
}

// query reads inside the transaction on the context if there is one, so a group sees its own writes
func (s *SQLCommon) query(ctx context.Context, q sq.SelectBuilder) (*sql.Rows, error) {
	l := log.L(ctx)
	sqlQuery, args, err := s.buildSQL(ctx, q)
	if err != nil {
		return nil, err
	}
	l.Debugf(`SQL-> query: %s`, sqlQuery)
	l.Tracef(`SQL-> query args: %+v`, args)
	var rows *sql.Rows
	if tx := txFromContext(ctx); tx != nil {
		rows, err = tx.sqlTX.QueryContext(ctx, sqlQuery, args...)
	} else {
		rows, err = s.db.QueryContext(ctx, sqlQuery, args...)
	}
	if err != nil {
		l.Errorf(`SQL query failed: %s sql=[ %s ]`, err, sqlQuery)
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBQueryFailed)
	}
	l.Debugf(`SQL<- query`)
	return rows, nil
}

// exec runs one write statement in the transaction, returning the number of rows it affected
func (s *SQLCommon) exec(tx *stateTx, op string, q sq.Sqlizer, failure i18n.MessageKey) (int64, error) {
	l := log.L(tx.ctx)
	sqlQuery, args, err := s.buildSQL(tx.ctx, q)
	if err != nil {
		return -1, err
	}
	l.Debugf(`SQL-> %s: %s`, op, sqlQuery)
	l.Tracef(`SQL-> %s args: %+v`, op, args)
	res, err := tx.sqlTX.ExecContext(tx.ctx, sqlQuery, args...)
	if err != nil {
		l.Errorf(`SQL %s failed: %s sql=[ %s ]`, op, err, sqlQuery)
		return -1, i18n.WrapError(tx.ctx, err, failure)
	}
	affected, _ := res.RowsAffected()
	l.Debugf(`SQL<- %s affected=%d`, op, affected)
	return affected, nil
}

// rollback is safe to defer, as it does nothing once the transaction is complete
func (tx *stateTx) rollback() {
	if tx.joined {
		return
	}
	err := tx.sqlTX.Rollback()
	switch {
	case err == nil:
		log.L(tx.ctx).Warnf("SQL! transaction rollback")
	case err != sql.ErrTxDone:
		log.L(tx.ctx).Errorf(`SQL rollback failed: %s`, err)
	}
}

func (tx *stateTx) commit() error {
	if tx.joined {
		return nil
	}
	l := log.L(tx.ctx)
	l.Debugf(`SQL-> commit`)
	if err := tx.sqlTX.Commit(); err != nil {
		l.Errorf(`SQL commit failed: %s`, err)
		return i18n.WrapError(tx.ctx, err, i18n.MsgDBCommitFailed)
	}
	l.Debugf(`SQL<- commit`)
	return nil
}

func (s *SQLCommon) DB() *sql.DB {
	return s.db
}

func (s *SQLCommon) Close() {
	if s.db != nil {
		err := s.db.Close()
		log.L(context.Background()).Debugf("World state database closed (err=%v)", err)
	}
}
