// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package disclosure - a sender's record of revealed contract data
//
// after a witness transaction is published the sender keeps, per
// txid, the anchor and bundle of every contract it committed in that
// transaction, plus any state extensions it created
package disclosure

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/bitmark-inc/rgbcore/anchor"
	"github.com/bitmark-inc/rgbcore/bundle"
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/merkle"
	"github.com/bitmark-inc/rgbcore/strict"
	"github.com/bitmark-inc/rgbcore/tagged"
	"github.com/bitmark-inc/rgbcore/util"
	"github.com/bitmark-inc/rgbcore/witness"
)

var disclosureTag = tagged.New("rgb:disclosure")

// Id - commitment to the disclosed data, the comment is excluded
type Id [tagged.Length]byte

// Item - one contract's bundle inside a witness transaction
type Item struct {
	ContractId contract.ContractId      `json:"contractId"`
	Anchor     anchor.Anchor            `json:"anchor"`
	Bundle     *bundle.TransitionBundle `json:"bundle"`
}

// Disclosure - items ordered by txid then contract id, extensions by
// node id
type Disclosure struct {
	items      []Item
	extensions []*contract.Extension
	Comment    string
}

// New - empty disclosure
func New(comment string) *Disclosure {
	return &Disclosure{
		Comment: comment,
	}
}

// Items - all items in canonical order
func (d *Disclosure) Items() []Item {
	return d.items
}

// Extensions - all state extensions in canonical order
func (d *Disclosure) Extensions() []*contract.Extension {
	return d.extensions
}

// Txids - distinct witness transactions in ascending order
func (d *Disclosure) Txids() []witness.Txid {
	txids := make([]witness.Txid, 0, len(d.items))
	for _, item := range d.items {
		if n := len(txids); 0 == n || txids[n-1] != item.Anchor.Txid {
			txids = append(txids, item.Anchor.Txid)
		}
	}
	return txids
}

// ItemsByTxid - items committed in one transaction
func (d *Disclosure) ItemsByTxid(txid witness.Txid) []Item {
	items := []Item{}
	for _, item := range d.items {
		if txid == item.Anchor.Txid {
			items = append(items, item)
		}
	}
	return items
}

// Insert - add a bundle anchored in a transaction
//
// every item of one transaction must imply the same commitment root;
// inserting the same bundle twice is a no-op
func (d *Disclosure) Insert(contractId contract.ContractId, a anchor.Anchor, b *bundle.TransitionBundle) error {
	root, err := a.Root(contractId, b.BundleId())
	if nil != err {
		return err
	}

	for _, item := range d.items {
		if item.Anchor.Txid != a.Txid {
			continue
		}
		if item.ContractId == contractId {
			if item.Bundle.BundleId() == b.BundleId() {
				return nil
			}
			return fault.ErrDisclosureConflict
		}
		other, err := item.Anchor.Root(item.ContractId, item.Bundle.BundleId())
		if nil != err {
			return err
		}
		if other != root {
			return fault.ErrAnchorProofMismatch
		}
	}

	d.items = append(d.items, Item{
		ContractId: contractId,
		Anchor:     a,
		Bundle:     b,
	})
	sort.Slice(d.items, func(i, j int) bool {
		return itemLess(d.items[i], d.items[j])
	})
	return nil
}

// InsertExtension - add a state extension, duplicates are ignored
func (d *Disclosure) InsertExtension(e *contract.Extension) {
	id := e.NodeId()
	for _, existing := range d.extensions {
		if existing.NodeId() == id {
			return
		}
	}
	d.extensions = append(d.extensions, e)
	sort.Slice(d.extensions, func(i, j int) bool {
		return d.extensions[i].NodeId().Compare(d.extensions[j].NodeId()) < 0
	})
}

// Root - commitment root of one transaction's items
func (d *Disclosure) Root(txid witness.Txid) (merkle.Digest, error) {
	for _, item := range d.items {
		if txid == item.Anchor.Txid {
			return item.Anchor.Root(item.ContractId, item.Bundle.BundleId())
		}
	}
	return merkle.Digest{}, fault.ErrNotFound
}

// Id - tagged hash of the encoding without the comment
func (d *Disclosure) Id() Id {
	return Id(disclosureTag.Sum(d.appendBody(nil)))
}

func itemLess(a Item, b Item) bool {
	if c := bytes.Compare(a.Anchor.Txid[:], b.Anchor.Txid[:]); 0 != c {
		return c < 0
	}
	return a.ContractId.Compare(b.ContractId) < 0
}

// String - base58check text
func (id Id) String() string {
	return util.ToBase58Check(util.KindDisclosureId, id[:])
}

// GoString - for %#v
func (id Id) GoString() string {
	return "<disclosure:" + util.DigestToHex(id[:], false) + ">"
}

// MarshalText - for JSON
func (id Id) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - for JSON
func (id *Id) UnmarshalText(s []byte) error {
	payload, err := util.FromBase58Check(util.KindDisclosureId, string(s))
	if nil != err {
		return err
	}
	return util.CopyDigest(id[:], payload)
}

// Pack - comment followed by the committed body
func (d *Disclosure) Pack() strict.Packed {
	buffer := strict.AppendString(nil, d.Comment)
	return d.appendBody(buffer)
}

func (d *Disclosure) appendBody(buffer strict.Packed) strict.Packed {
	buffer = strict.AppendUint64(buffer, uint64(len(d.items)))
	for _, item := range d.items {
		buffer = strict.AppendFixed(buffer, item.ContractId[:])
		buffer = anchor.Append(buffer, item.Anchor)
		buffer = bundle.Append(buffer, item.Bundle)
	}
	buffer = strict.AppendUint64(buffer, uint64(len(d.extensions)))
	for _, e := range d.extensions {
		buffer = contract.AppendExtension(buffer, e)
	}
	return buffer
}

// Unpack - decode a disclosure, the order of items and extensions must
// be canonical
func Unpack(record []byte) (*Disclosure, error) {
	r := strict.NewReader(record)

	comment, err := r.ReadString(strict.MaximumBytes)
	if nil != err {
		return nil, err
	}
	d := New(comment)

	n, err := r.ReadCount(strict.MaximumCount)
	if nil != err {
		return nil, err
	}
	for i := 0; i < n; i += 1 {
		var item Item
		if err := r.ReadFixed(item.ContractId[:]); nil != err {
			return nil, err
		}
		if item.Anchor, err = anchor.Read(r); nil != err {
			return nil, err
		}
		if item.Bundle, err = bundle.Read(r); nil != err {
			return nil, err
		}
		if i > 0 && !itemLess(d.items[i-1], item) {
			return nil, fault.ErrNotCanonical
		}
		d.items = append(d.items, item)
	}

	n, err = r.ReadCount(strict.MaximumCount)
	if nil != err {
		return nil, err
	}
	for i := 0; i < n; i += 1 {
		e, err := contract.ReadExtension(r)
		if nil != err {
			return nil, err
		}
		if i > 0 && d.extensions[i-1].NodeId().Compare(e.NodeId()) >= 0 {
			return nil, fault.ErrNotCanonical
		}
		d.extensions = append(d.extensions, e)
	}

	if err := r.End(); nil != err {
		return nil, err
	}
	return d, nil
}

type disclosureJSON struct {
	Comment    string                `json:"comment"`
	Items      []Item                `json:"items"`
	Extensions []*contract.Extension `json:"stateExtensions"`
}

// MarshalJSON - items and extensions in canonical order
func (d *Disclosure) MarshalJSON() ([]byte, error) {
	return json.Marshal(disclosureJSON{
		Comment:    d.Comment,
		Items:      d.items,
		Extensions: d.extensions,
	})
}

// UnmarshalJSON - rebuilds through Insert so anchors are checked
func (d *Disclosure) UnmarshalJSON(b []byte) error {
	var j disclosureJSON
	if err := json.Unmarshal(b, &j); nil != err {
		return err
	}
	result := New(j.Comment)
	for _, item := range j.Items {
		if nil == item.Bundle {
			return fault.ErrInvalidFormat
		}
		if err := result.Insert(item.ContractId, item.Anchor, item.Bundle); nil != err {
			return err
		}
	}
	for _, e := range j.Extensions {
		if nil == e {
			return fault.ErrInvalidFormat
		}
		result.InsertExtension(e)
	}
	*d = *result
	return nil
}
