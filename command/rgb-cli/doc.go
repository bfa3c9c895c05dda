// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Inspect, convert and accept RGB contract data
//
// conversions need no configuration, e.g. to print a consignment as JSON:
//
//   rgb-cli consignment convert -i transfer.rgb -t json
//
// the default output format is yaml
//
// commands that use the stash read a Lua configuration file
// (default: $XDG_CONFIG_HOME/rgb-cli/rgb-cli.conf) such as:
//
//   return {
//       data_directory = ".",
//       database = { name = "rgb" },
//       resolver = { cache_expiry = 600, rate = 5, burst = 10, max_delay = 30 },
//       logging = { size = 1048576, count = 10, levels = { DEFAULT = "info" } },
//   }
//
// then transactions can be added and consignments accepted:
//
//   rgb-cli transaction add -f hex -i witness.hex
//   rgb-cli seal new --vout 1 --store
//   rgb-cli consignment accept -i transfer.rgb
package main
