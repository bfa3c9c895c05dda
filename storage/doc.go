// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk contract data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++             = concatenation of byte data
// 3. consignmentId  = rgb:consignment tagged hash (32 bytes)
// 4. contractId     = genesis node id (32 bytes)
// 5. txid           = bitcoin transaction id in internal byte order (32 bytes)
// 6. concealed seal = rgb:seal tagged hash (32 bytes)
// 7. disclosureId   = rgb:disclosure tagged hash (32 bytes)
//
// Consignments:
//
//   C ++ consignmentId         - accepted consignments
//                                data: packed consignment
//   K ++ contractId ++ consignmentId
//                              - consignments of a contract
//                                data: empty
//
// Transactions:
//
//   T ++ txid                  - witness transactions
//                                data: packed transaction
//
// Seals:
//
//   S ++ concealed seal        - seals owned by this stash
//                                data: packed revealed seal
//
// Disclosures:
//
//   D ++ disclosureId          - disclosures made by this stash
//                                data: packed disclosure
package storage
