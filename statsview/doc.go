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

// Package statsview provides a wrapper around the statsview package from
// go-echarts. It is useful for observing the effect of the bus handling
// loops on the garbage collector, among other things.
//
// The wrapper exists so that builds without the statsview build tag do not
// carry the weight of the go-echarts dependency at runtime.
package statsview
