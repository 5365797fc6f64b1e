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

// Package performance measures how quickly the bus path can serve read
// bursts. The Check() function assembles the complete system, loads a
// ROM through the storage link and hammers the ROM range for a set
// duration.
//
// RunProfiler() can be used to generate CPU and memory profiles of any
// function; Check() uses it to profile the measurement run when asked.
package performance
