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

// Package memorymap describes the cartridge address space as seen over
// the console's PI bus. Every address the console presents is classified
// into exactly one Area with the MapAddress() function.
//
// The address ranges for the Base, CIBase and Rand areas are outside of
// the normal cartridge ROM range. They are virtual peripherals that only
// exist on this cartridge; console-side software addresses them directly.
package memorymap
