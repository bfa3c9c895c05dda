// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// writeCache - recent writes, so reads see a batch before it is committed
type writeCache interface {
	Get(string) (cacheData, bool)
	Set(dbOperation, string, []byte)
	Clear()
}

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

const (
	defaultExpiration = 2 * time.Minute
	cleanupInterval   = 5 * time.Minute
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    dbOperation
	value []byte
}

func newCache() *dbCache {
	return &dbCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// Get - the last write to key; a delete is returned as found so that
// the database is not consulted
func (c *dbCache) Get(key string) (cacheData, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return cacheData{}, false
	}
	return obj.(cacheData), true
}

func (c *dbCache) Set(op dbOperation, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, cache.DefaultExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
