// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - batch of writes committed atomically
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
}

type transactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &transactionData{
		access: access,
	}
}

func (d *transactionData) Begin() error {
	return d.access.Begin()
}

func (d *transactionData) Put(handle *PoolHandle, key []byte, value []byte) {
	handle.put(key, value)
}

func (d *transactionData) Delete(handle *PoolHandle, key []byte) {
	handle.remove(key)
}

// Get - sees writes of this transaction before they are committed
func (d *transactionData) Get(handle *PoolHandle, key []byte) []byte {
	return handle.Get(key)
}

func (d *transactionData) Has(handle *PoolHandle, key []byte) bool {
	return handle.Has(key)
}

func (d *transactionData) Commit() error {
	return d.access.Commit()
}

func (d *transactionData) Abort() {
	d.access.Abort()
}
