// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resolver_test

import (
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/fixtures"
	"github.com/bitmark-inc/rgbcore/resolver"
	"github.com/bitmark-inc/rgbcore/resolver/mocks"
	"github.com/bitmark-inc/rgbcore/witness"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

var testTx = &witness.Transaction{
	Txid: witness.Txid{0x42},
	Outputs: []witness.Output{
		{Value: 1000, Script: []byte{0x51}},
	},
}

func TestStatic(t *testing.T) {
	s := resolver.NewStatic(testTx)

	tx, err := s.ResolveTx(testTx.Txid)
	assert.Nil(t, err, "resolve")
	assert.Equal(t, testTx, tx, "transaction")

	_, err = s.ResolveTx(witness.Txid{0x43})
	assert.Equal(t, fault.ErrTransactionNotFound, err, "unknown txid")

	other := &witness.Transaction{Txid: witness.Txid{0x43}}
	s.Add(other)
	tx, err = s.ResolveTx(other.Txid)
	assert.Nil(t, err, "resolve added")
	assert.Equal(t, other, tx, "added transaction")
}

func TestCachedHit(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockResolver(ctl)
	m.EXPECT().ResolveTx(testTx.Txid).Return(testTx, nil).Times(1)

	c := resolver.NewCached(m, time.Minute)
	for i := 0; i < 3; i += 1 {
		tx, err := c.ResolveTx(testTx.Txid)
		assert.Nil(t, err, "resolve")
		assert.Equal(t, testTx, tx, "transaction")
	}
}

func TestCachedMissNotRemembered(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockResolver(ctl)
	gomock.InOrder(
		m.EXPECT().ResolveTx(testTx.Txid).Return(nil, fault.ErrTransactionNotFound),
		m.EXPECT().ResolveTx(testTx.Txid).Return(testTx, nil),
	)

	c := resolver.NewCached(m, time.Minute)
	_, err := c.ResolveTx(testTx.Txid)
	assert.Equal(t, fault.ErrTransactionNotFound, err, "miss")

	tx, err := c.ResolveTx(testTx.Txid)
	assert.Nil(t, err, "retry")
	assert.Equal(t, testTx, tx, "transaction")
}

func TestCachedFlush(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockResolver(ctl)
	m.EXPECT().ResolveTx(testTx.Txid).Return(testTx, nil).Times(2)

	c := resolver.NewCached(m, time.Minute)
	_, _ = c.ResolveTx(testTx.Txid)
	c.Flush()
	_, _ = c.ResolveTx(testTx.Txid)
}

func TestLimited(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockResolver(ctl)
	m.EXPECT().ResolveTx(gomock.Any()).Return(testTx, nil).Times(2)

	l := resolver.NewLimited(m, rate.Every(time.Hour), 2, 0)
	for i := 0; i < 2; i += 1 {
		_, err := l.ResolveTx(testTx.Txid)
		assert.Nil(t, err, "within burst")
	}

	_, err := l.ResolveTx(testTx.Txid)
	assert.Equal(t, fault.ErrTransactionRateLimited, err, "limit not applied")
	assert.True(t, fault.IsErrResolution(err), "not a resolution error")
}
