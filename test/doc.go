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

// Package test contains helper functions to make testing a little easier.
//
// The Equate() function compares like-typed variables for equality, with
// the exception that a literal int can be compared against any of the
// fixed-width unsigned types. This is convenient when comparing against
// values plucked off the bus:
//
//	var v uint16
//	v = cart.Read(addr)
//	test.Equate(t, v, 0x8037)
//
// The ExpectedFailure() and ExpectedSuccess() functions test a bool or
// error value for the condition suggested by the function name.
package test
