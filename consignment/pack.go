// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consignment

import (
	"github.com/bitmark-inc/rgbcore/anchor"
	"github.com/bitmark-inc/rgbcore/bundle"
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/schema"
	"github.com/bitmark-inc/rgbcore/seal"
	"github.com/bitmark-inc/rgbcore/strict"
)

// Pack - canonical binary form, the version is the first byte
func (c *FullConsignment) Pack() strict.Packed {
	buffer := strict.AppendByte(nil, c.version)
	buffer = append(buffer, c.Schema.Pack()...)
	buffer = contract.AppendGenesis(buffer, c.Genesis)

	buffer = strict.AppendUint64(buffer, uint64(len(c.Endpoints)))
	for _, e := range c.Endpoints {
		buffer = strict.AppendFixed(buffer, e.BundleId[:])
		buffer = seal.AppendTerminal(buffer, e.Seal)
	}

	buffer = strict.AppendUint64(buffer, uint64(len(c.AnchoredBundles)))
	for _, ab := range c.AnchoredBundles {
		buffer = anchor.Append(buffer, ab.Anchor)
		buffer = bundle.Append(buffer, ab.Bundle)
	}

	buffer = strict.AppendUint64(buffer, uint64(len(c.StateExtensions)))
	for _, e := range c.StateExtensions {
		buffer = contract.AppendExtension(buffer, e)
	}
	return buffer
}

// Unpack - decode a complete consignment
//
// any version other than Version is rejected before the rest of the
// record is examined
func Unpack(record []byte) (*FullConsignment, error) {
	r := strict.NewReader(record)

	version, err := r.ReadByte()
	if nil != err {
		return nil, err
	}
	if Version != version {
		return nil, fault.ErrUnsupportedVersion
	}

	s, err := schema.Read(r)
	if nil != err {
		return nil, err
	}
	genesis, err := contract.ReadGenesis(r)
	if nil != err {
		return nil, err
	}

	n, err := r.ReadCount(strict.MaximumCount)
	if nil != err {
		return nil, err
	}
	endpoints := make([]Endpoint, n)
	for i := range endpoints {
		if err := r.ReadFixed(endpoints[i].BundleId[:]); nil != err {
			return nil, err
		}
		if endpoints[i].Seal, err = seal.ReadTerminal(r); nil != err {
			return nil, err
		}
	}

	n, err = r.ReadCount(strict.MaximumCount)
	if nil != err {
		return nil, err
	}
	anchoredBundles := make([]AnchoredBundle, n)
	for i := range anchoredBundles {
		if anchoredBundles[i].Anchor, err = anchor.Read(r); nil != err {
			return nil, err
		}
		if anchoredBundles[i].Bundle, err = bundle.Read(r); nil != err {
			return nil, err
		}
	}

	n, err = r.ReadCount(strict.MaximumCount)
	if nil != err {
		return nil, err
	}
	extensions := make([]*contract.Extension, n)
	for i := range extensions {
		if extensions[i], err = contract.ReadExtension(r); nil != err {
			return nil, err
		}
	}

	if err := r.End(); nil != err {
		return nil, err
	}
	return New(s, genesis, endpoints, anchoredBundles, extensions), nil
}
