// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resolver

import (
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/rgbcore/witness"
)

// cache maintenance interval
const cleanupInterval = 10 * time.Minute

// Cached - remembers successful resolutions for a limited time
//
// failures are never cached so a transaction that is not yet visible
// upstream is retried on the next call
type Cached struct {
	log      *logger.L
	upstream Resolver
	cache    *cache.Cache
}

// NewCached - wrap upstream with an expiring cache
func NewCached(upstream Resolver, expiry time.Duration) *Cached {
	return &Cached{
		log:      logger.New("resolver"),
		upstream: upstream,
		cache:    cache.New(expiry, cleanupInterval),
	}
}

// ResolveTx - implements Resolver
func (c *Cached) ResolveTx(txid witness.Txid) (*witness.Transaction, error) {
	key := txid.String()
	if item, found := c.cache.Get(key); found {
		c.log.Debugf("cache hit: %s", key)
		return item.(*witness.Transaction), nil
	}

	tx, err := c.upstream.ResolveTx(txid)
	if nil != err {
		c.log.Warnf("resolve: %s  error: %s", key, err)
		return nil, err
	}
	c.cache.Set(key, tx, cache.DefaultExpiration)
	return tx, nil
}

// Flush - drop every cached transaction
func (c *Cached) Flush() {
	c.cache.Flush()
}
