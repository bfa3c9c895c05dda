// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package resolver - lookup of witness transactions by txid
//
// validation only needs to see the transactions that close seals and
// carry anchors; how they are found is up to the caller
package resolver

import (
	"sync"

	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/witness"
)

// Resolver - the transaction resolution capability
//
// must return fault.ErrTransactionNotFound when the transaction is not
// known, any other error is a failure of the resolver itself
type Resolver interface {
	ResolveTx(txid witness.Txid) (*witness.Transaction, error)
}

// Static - resolver over a fixed set of transactions
type Static struct {
	sync.RWMutex
	transactions map[witness.Txid]*witness.Transaction
}

// NewStatic - resolver holding the given transactions
func NewStatic(transactions ...*witness.Transaction) *Static {
	s := &Static{
		transactions: make(map[witness.Txid]*witness.Transaction, len(transactions)),
	}
	for _, tx := range transactions {
		s.transactions[tx.Txid] = tx
	}
	return s
}

// Add - make one more transaction resolvable
func (s *Static) Add(tx *witness.Transaction) {
	s.Lock()
	s.transactions[tx.Txid] = tx
	s.Unlock()
}

// ResolveTx - implements Resolver
func (s *Static) ResolveTx(txid witness.Txid) (*witness.Transaction, error) {
	s.RLock()
	defer s.RUnlock()

	tx, ok := s.transactions[txid]
	if !ok {
		return nil, fault.ErrTransactionNotFound
	}
	return tx, nil
}
