// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consignment

import (
	"encoding/json"

	"github.com/bitmark-inc/rgbcore/anchor"
	"github.com/bitmark-inc/rgbcore/bundle"
	"github.com/bitmark-inc/rgbcore/contract"
	"github.com/bitmark-inc/rgbcore/fault"
	"github.com/bitmark-inc/rgbcore/schema"
	"github.com/bitmark-inc/rgbcore/seal"
	"github.com/bitmark-inc/rgbcore/tagged"
	"github.com/bitmark-inc/rgbcore/util"
)

// Version - the only accepted consignment version
const Version = 0

var consignmentTag = tagged.New("rgb:consignment")

// Id - commitment to the whole consignment
type Id [tagged.Length]byte

// Endpoint - a bundle output asserted as final state
type Endpoint struct {
	BundleId bundle.Id
	Seal     seal.Terminal
}

// AnchoredBundle - a bundle paired with its anchor
type AnchoredBundle struct {
	Anchor anchor.Anchor            `json:"anchor"`
	Bundle *bundle.TransitionBundle `json:"bundle"`
}

// FullConsignment - self contained proof of contract state from
// genesis to the endpoints
//
// concealment and revelation mutate in place; callers must not share an
// instance between a writer and any other goroutine
type FullConsignment struct {
	version         byte
	Schema          *schema.Schema        `json:"schema"`
	Genesis         *contract.Genesis     `json:"genesis"`
	Endpoints       []Endpoint            `json:"endpoints"`
	AnchoredBundles []AnchoredBundle      `json:"anchoredBundles"`
	StateExtensions []*contract.Extension `json:"stateExtensions"`
}

// New - consignment at the current version
func New(
	s *schema.Schema,
	genesis *contract.Genesis,
	endpoints []Endpoint,
	anchoredBundles []AnchoredBundle,
	extensions []*contract.Extension,
) *FullConsignment {
	return &FullConsignment{
		version:         Version,
		Schema:          s,
		Genesis:         genesis,
		Endpoints:       endpoints,
		AnchoredBundles: anchoredBundles,
		StateExtensions: extensions,
	}
}

// Version - the encoded version
func (c *FullConsignment) Version() byte {
	return c.version
}

// Id - commitment over the full encoding, recomputed on every call
func (c *FullConsignment) Id() Id {
	return Id(consignmentTag.Sum(c.Pack()))
}

// ContractId - the contract this consignment belongs to
func (c *FullConsignment) ContractId() contract.ContractId {
	return c.Genesis.ContractId()
}

// String - base58check text
func (id Id) String() string {
	return util.ToBase58Check(util.KindConsignmentId, id[:])
}

// GoString - for %#v
func (id Id) GoString() string {
	return "<consignment:" + util.DigestToHex(id[:], false) + ">"
}

// MarshalText - for JSON
func (id Id) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - for JSON
func (id *Id) UnmarshalText(s []byte) error {
	payload, err := util.FromBase58Check(util.KindConsignmentId, string(s))
	if nil != err {
		return err
	}
	return util.CopyDigest(id[:], payload)
}

// IdFromString - parse base58check text
func IdFromString(s string) (Id, error) {
	var id Id
	err := id.UnmarshalText([]byte(s))
	return id, err
}

type endpointJSON struct {
	BundleId bundle.Id `json:"bundleId"`
	Seal     string    `json:"seal"`
}

// MarshalJSON - the seal in its text form
func (e Endpoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(endpointJSON{
		BundleId: e.BundleId,
		Seal:     e.Seal.String(),
	})
}

// UnmarshalJSON - the seal parsed concealed first
func (e *Endpoint) UnmarshalJSON(b []byte) error {
	var j endpointJSON
	if err := json.Unmarshal(b, &j); nil != err {
		return err
	}
	terminal, err := seal.ParseTerminal(j.Seal)
	if nil != err {
		return err
	}
	e.BundleId = j.BundleId
	e.Seal = terminal
	return nil
}

type consignmentJSON struct {
	Version         byte                  `json:"version"`
	Schema          *schema.Schema        `json:"schema"`
	Genesis         *contract.Genesis     `json:"genesis"`
	Endpoints       []Endpoint            `json:"endpoints"`
	AnchoredBundles []AnchoredBundle      `json:"anchoredBundles"`
	StateExtensions []*contract.Extension `json:"stateExtensions"`
}

// MarshalJSON - includes the version
func (c *FullConsignment) MarshalJSON() ([]byte, error) {
	return json.Marshal(consignmentJSON{
		Version:         c.version,
		Schema:          c.Schema,
		Genesis:         c.Genesis,
		Endpoints:       c.Endpoints,
		AnchoredBundles: c.AnchoredBundles,
		StateExtensions: c.StateExtensions,
	})
}

// UnmarshalJSON - same version gate as the binary form
func (c *FullConsignment) UnmarshalJSON(b []byte) error {
	var j consignmentJSON
	if err := json.Unmarshal(b, &j); nil != err {
		return err
	}
	if Version != j.Version {
		return fault.ErrUnsupportedVersion
	}
	if nil == j.Schema || nil == j.Genesis {
		return fault.ErrInvalidFormat
	}
	for _, ab := range j.AnchoredBundles {
		if nil == ab.Bundle {
			return fault.ErrInvalidFormat
		}
	}
	for _, e := range j.StateExtensions {
		if nil == e {
			return fault.ErrInvalidFormat
		}
	}
	*c = *New(j.Schema, j.Genesis, j.Endpoints, j.AnchoredBundles, j.StateExtensions)
	return nil
}
