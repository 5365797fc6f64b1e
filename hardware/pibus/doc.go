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

// Package pibus defines the interface to the bus sampling engine, the
// external primitive that latches address and command words off the
// console's parallel interface bus and drives reply words back onto it.
//
// The package also provides VirtualBus, a channel based implementation of
// the interface that allows a test or utility to play the part of the
// console.
package pibus
