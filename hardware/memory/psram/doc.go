// This file is part of Picopak.
//
// Picopak is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Picopak is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Picopak.  If not, see <https://www.gnu.org/licenses/>.

// Package psram models the banked memory array that holds the cartridge
// ROM and the prefetching accessor that the bus handler reads it through.
//
// The ROM image is spread over several chips of equal capacity. Which
// chip is routed to the data lines is controlled with SelectChip(). The
// mapping from a flat ROM offset to a (chip, offset) pair is done with
// Resolve(); as the flat offset increases monotonically the chip index
// never decreases.
//
// The Accessor fetches words ahead of the bus cursor into a small
// buffer. At most one transfer is in flight at a time and all waits on a
// transfer are bounded. A read that cannot be satisfied in time returns
// stale buffer content in preference to stalling the console.
package psram
