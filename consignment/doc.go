// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package consignment - the unit of contract history handed from a
// sender to a recipient
//
// a consignment carries the schema, the genesis, every anchored bundle
// between genesis and the endpoints, and any state extensions. The
// sender calls Finalize to hide what the recipient may not see; the
// recipient calls RevealSeals to attach seals it already knows.
package consignment
