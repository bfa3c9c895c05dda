// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/fixtures"
	"github.com/bitmark-inc/rgbcore/storage"
)

func databaseName() string {
	return filepath.Join(fixtures.TestDirectory(), "test")
}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	err := storage.Initialise(databaseName(), storage.ReadWrite)
	if nil != err {
		fixtures.TeardownTestLogger()
		panic(err)
	}
	rc := m.Run()
	storage.Finalise()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestAlreadyInitialised(t *testing.T) {
	err := storage.Initialise(databaseName(), storage.ReadWrite)
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second initialise")
}

func TestPutGetCommit(t *testing.T) {
	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "begin")

	pool := storage.Pool.Transactions
	key := []byte{0x01, 0x02}
	trx.Put(pool, key, []byte("value"))

	assert.Equal(t, []byte("value"), trx.Get(pool, key), "uncommitted write not visible")
	assert.True(t, trx.Has(pool, key), "uncommitted write not visible")
	assert.False(t, storage.Pool.Seals.Has(key), "write leaked into another pool")

	_, err = storage.NewDBTransaction()
	assert.Equal(t, fault.ErrTransactionInUse, err, "two open transactions")

	assert.Nil(t, trx.Commit(), "commit")
	assert.Equal(t, []byte("value"), pool.Get(key), "committed value")

	trx, err = storage.NewDBTransaction()
	assert.Nil(t, err, "begin after commit")
	trx.Delete(pool, key)
	assert.False(t, pool.Has(key), "deleted key still visible")
	assert.Nil(t, pool.Get(key), "deleted key still readable")
	assert.Nil(t, trx.Commit(), "commit")
	assert.False(t, pool.Has(key), "deleted key after commit")
}

func TestAbort(t *testing.T) {
	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "begin")

	pool := storage.Pool.Disclosures
	key := []byte{0xaa}
	trx.Put(pool, key, []byte{1})
	trx.Abort()

	assert.False(t, pool.Has(key), "aborted write visible")

	trx, err = storage.NewDBTransaction()
	assert.Nil(t, err, "begin after abort")
	trx.Abort()
}

func TestCursorPrefix(t *testing.T) {
	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "begin")

	pool := storage.Pool.ContractIndex
	keys := [][]byte{
		{0x10, 0x01},
		{0x10, 0x02},
		{0x11, 0x01},
	}
	for _, key := range keys {
		trx.Put(pool, key, []byte{})
	}
	trx.Put(storage.Pool.Consignments, []byte{0x10, 0x03}, []byte{})
	assert.Nil(t, trx.Commit(), "commit")

	found := [][]byte{}
	err = pool.NewFetchCursor().Prefix([]byte{0x10}).Map(func(key []byte, value []byte) error {
		found = append(found, key)
		return nil
	})
	assert.Nil(t, err, "map")
	assert.Equal(t, keys[:2], found, "prefix scan")

	count := 0
	err = pool.NewFetchCursor().Map(func(key []byte, value []byte) error {
		count += 1
		return nil
	})
	assert.Nil(t, err, "map")
	assert.Equal(t, 3, count, "pool scan")

	err = pool.NewFetchCursor().Map(func(key []byte, value []byte) error {
		return fault.ErrNotFound
	})
	assert.Equal(t, fault.ErrNotFound, err, "map error not returned")

	var cursor *storage.FetchCursor
	assert.Equal(t, fault.ErrInvalidCursor, cursor.Map(nil), "nil cursor")
}
