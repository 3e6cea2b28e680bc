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
	"github.com/kaleido-io/productledger/internal/i18n"
	"github.com/kaleido-io/productledger/internal/log"
	"github.com/kaleido-io/productledger/pkg/worldstate"
)

var (
	worldstateColumns = []string{
		"state_key",
		"state_value",
	}
)

const worldstateTable = "worldstate"

func (s *SQLCommon) GetValue(ctx context.Context, key string) ([]byte, error) {

	rows, err := s.query(ctx,
		sq.Select("state_value").
			From(worldstateTable).
			Where(sq.Eq{"state_key": key}),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		log.L(ctx).Debugf("State key '%s' not found", key)
		return nil, nil
	}

	var value []byte
	if err = rows.Scan(&value); err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, worldstateTable)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (s *SQLCommon) kvResult(ctx context.Context, row *sql.Rows) (*worldstate.KV, error) {
	kv := worldstate.KV{}
	err := row.Scan(
		&kv.Key,
		&kv.Value,
	)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, worldstateTable)
	}
	return &kv, nil
}

func (s *SQLCommon) GetRange(ctx context.Context, startKey, endKey string) ([]*worldstate.KV, error) {

	q := sq.Select(worldstateColumns...).
		From(worldstateTable).
		Where(sq.GtOrEq{"state_key": startKey}).
		OrderBy("state_key")
	if endKey != "" {
		q = q.Where(sq.Lt{"state_key": endKey})
	}

	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*worldstate.KV{}
	for rows.Next() {
		kv, err := s.kvResult(ctx, rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, kv)
	}
	return entries, nil
}

// ApplyWrites upserts or deletes each key in order, in one transaction
func (s *SQLCommon) ApplyWrites(ctx context.Context, writes []*worldstate.Write) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.rollback()

	for _, w := range writes {
		if w.IsDelete {
			if _, err = s.exec(tx, "delete",
				sq.Delete(worldstateTable).Where(sq.Eq{"state_key": w.Key}),
				i18n.MsgDBDeleteFailed,
			); err != nil {
				return err
			}
			continue
		}

		var updated int64
		if updated, err = s.exec(tx, "update",
			sq.Update(worldstateTable).Set("state_value", w.Value).Where(sq.Eq{"state_key": w.Key}),
			i18n.MsgDBUpdateFailed,
		); err != nil {
			return err
		}
		if updated == 0 {
			if _, err = s.exec(tx, "insert",
				sq.Insert(worldstateTable).Columns(worldstateColumns...).Values(w.Key, w.Value),
				i18n.MsgDBInsertFailed,
			); err != nil {
				return err
			}
		}
	}

	log.L(tx.ctx).Debugf("Applied %d world state writes", len(writes))
	return tx.commit()
}
