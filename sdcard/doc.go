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

// Package sdcard implements both sides of the storage link.
//
// The Jobs type lives with the bus controller. The register file files
// requests with it and its Service() function, pumped from the bus
// handler's outer loop, sends commands over the link and receives the
// results. Sector data arrives raw and is folded into the transfer
// buffer; during a ROM load the link instead carries framed control
// traffic (EEPROM type, save content, the load acknowledgement).
//
// The Controller type lives with the storage hardware. It serves sector
// reads from a block image file, loads ROM files into the memory array
// and keeps EEPROM save files alongside the ROMs they belong to.
package sdcard
