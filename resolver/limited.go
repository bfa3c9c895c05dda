// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resolver

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/witness"
)

// Limited - throttles calls to a remote resolver
type Limited struct {
	upstream Resolver
	limiter  *rate.Limiter
	maxDelay time.Duration
}

// NewLimited - allow limit calls per second with the given burst; a
// call that would have to wait longer than maxDelay is refused
func NewLimited(upstream Resolver, limit rate.Limit, burst int, maxDelay time.Duration) *Limited {
	return &Limited{
		upstream: upstream,
		limiter:  rate.NewLimiter(limit, burst),
		maxDelay: maxDelay,
	}
}

// ResolveTx - implements Resolver
func (l *Limited) ResolveTx(txid witness.Txid) (*witness.Transaction, error) {
	r := l.limiter.Reserve()
	if !r.OK() {
		return nil, fault.ErrTransactionRateLimited
	}
	delay := r.Delay()
	if delay > l.maxDelay {
		r.Cancel()
		return nil, fault.ErrTransactionRateLimited
	}
	time.Sleep(delay)
	return l.upstream.ResolveTx(txid)
}
