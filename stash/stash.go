// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stash - the contract data held by one wallet
//
// accepted consignments, the witness transactions they refer to, the
// seals this wallet can close and the disclosures it has made, all kept
// in the storage pools
package stash

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/rgbcore/consignment"
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/disclosure"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/resolver"
	"github.com/bitmark-inc/rgbcore/seal"
	"github.com/bitmark-inc/rgbcore/storage"
	"github.com/bitmark-inc/rgbcore/strict"
	"github.com/bitmark-inc/rgbcore/validation"
	"github.com/bitmark-inc/rgbcore/witness"
)

// globals
type globalDataType struct {
	sync.Mutex
	log         *logger.L
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - start the stash, storage must already be initialised
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("stash")
	globalData.log.Info("starting…")
	globalData.initialised = true
	return nil
}

// Finalise - stop the stash
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.initialised = false
	return nil
}

// write one batch across the pools
func update(f func(trx storage.Transaction)) error {
	if !globalData.initialised {
		return fault.ErrNotInitialised
	}
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	f(trx)
	err = trx.Commit()
	if nil != err {
		trx.Abort()
	}
	return err
}

// Store - save a consignment and index it under its contract
func Store(c *consignment.FullConsignment) (consignment.Id, error) {
	globalData.Lock()
	defer globalData.Unlock()

	return store(c)
}

func store(c *consignment.FullConsignment) (consignment.Id, error) {
	packed := c.Pack()
	id := c.Id()
	contractId := c.ContractId()

	err := update(func(trx storage.Transaction) {
		trx.Put(storage.Pool.Consignments, id[:], packed)
		trx.Put(storage.Pool.ContractIndex, append(contractId[:], id[:]...), []byte{})
	})
	if nil != err {
		return consignment.Id{}, err
	}
	globalData.log.Infof("stored consignment: %s  contract: %s  size: %d", id, contractId, len(packed))
	return id, nil
}

// Consignment - read a stored consignment
func Consignment(id consignment.Id) (*consignment.FullConsignment, error) {
	packed := storage.Pool.Consignments.Get(id[:])
	if nil == packed {
		return nil, fault.ErrNotFound
	}
	return consignment.Unpack(packed)
}

// ConsignmentIds - every stored consignment of a contract
func ConsignmentIds(contractId contract.ContractId) ([]consignment.Id, error) {
	ids := []consignment.Id{}
	err := storage.Pool.ContractIndex.NewFetchCursor().Prefix(contractId[:]).Map(func(key []byte, value []byte) error {
		var id consignment.Id
		if len(key) != len(contractId)+len(id) {
			return fault.ErrInvalidFormat
		}
		copy(id[:], key[len(contractId):])
		ids = append(ids, id)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return ids, nil
}

// AddTransaction - remember a witness transaction
func AddTransaction(tx *witness.Transaction) error {
	globalData.Lock()
	defer globalData.Unlock()

	err := update(func(trx storage.Transaction) {
		trx.Put(storage.Pool.Transactions, tx.Txid[:], tx.Pack())
	})
	if nil != err {
		return err
	}
	globalData.log.Debugf("added transaction: %s", tx.Txid)
	return nil
}

// Resolver - resolves from the stored witness transactions
func Resolver() resolver.Resolver {
	return storeResolver{}
}

type storeResolver struct{}

// ResolveTx - implements resolver.Resolver
func (storeResolver) ResolveTx(txid witness.Txid) (*witness.Transaction, error) {
	packed := storage.Pool.Transactions.Get(txid[:])
	if nil == packed {
		return nil, fault.ErrTransactionNotFound
	}
	return witness.Unpack(packed)
}

// AddSeal - remember a seal this wallet can close
func AddSeal(s seal.Revealed) error {
	globalData.Lock()
	defer globalData.Unlock()

	concealed := s.Conceal()
	err := update(func(trx storage.Transaction) {
		trx.Put(storage.Pool.Seals, concealed[:], seal.AppendRevealed(nil, s))
	})
	if nil != err {
		return err
	}
	globalData.log.Debugf("added seal: %s", concealed)
	return nil
}

// KnownSeals - every seal added with AddSeal
func KnownSeals() ([]seal.Revealed, error) {
	seals := []seal.Revealed{}
	err := storage.Pool.Seals.NewFetchCursor().Map(func(key []byte, value []byte) error {
		r := strict.NewReader(value)
		s, err := seal.ReadRevealed(r)
		if nil != err {
			return err
		}
		if err := r.End(); nil != err {
			return err
		}
		seals = append(seals, s)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return seals, nil
}

// Accept - take a consignment addressed to this wallet
//
// known seals are revealed first, then the consignment is validated
// against r and stored unless it is invalid
func Accept(c *consignment.FullConsignment, r resolver.Resolver) (*validation.Status, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil, fault.ErrNotInitialised
	}

	known, err := KnownSeals()
	if nil != err {
		return nil, err
	}
	revealed := c.RevealSeals(known)
	globalData.log.Infof("accept: revealed: %d seals of: %d known", revealed, len(known))

	status := validation.Validate(c, r)
	globalData.log.Infof("accept: validity: %s  failures: %d  warnings: %d  unresolved: %d",
		status.Validity(), len(status.Failures), len(status.Warnings), len(status.UnresolvedTxids))
	for _, f := range status.Failures {
		globalData.log.Warnf("accept: node: %s  txid: %s  failure: %s", f.NodeId, f.Txid, f.Err)
	}

	if validation.Invalid == status.Validity() {
		return status, fault.ErrConsignmentInvalid
	}

	if _, err := store(c); nil != err {
		return status, err
	}
	return status, nil
}

// StoreDisclosure - save a disclosure made by this wallet
func StoreDisclosure(d *disclosure.Disclosure) (disclosure.Id, error) {
	globalData.Lock()
	defer globalData.Unlock()

	id := d.Id()
	err := update(func(trx storage.Transaction) {
		trx.Put(storage.Pool.Disclosures, id[:], d.Pack())
	})
	if nil != err {
		return disclosure.Id{}, err
	}
	globalData.log.Infof("stored disclosure: %s  items: %d", id, len(d.Items()))
	return id, nil
}

// Disclosure - read a stored disclosure
func Disclosure(id disclosure.Id) (*disclosure.Disclosure, error) {
	packed := storage.Pool.Disclosures.Get(id[:])
	if nil == packed {
		return nil, fault.ErrNotFound
	}
	return disclosure.Unpack(packed)
}
