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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created by
// the Errorf() function with a specific pattern. The Has() function is
// similar but checks whether the pattern occurs somewhere in the error
// chain. For example:
//
//	e := curated.Errorf("psram: %v", curated.Errorf("invalid chip (%d)", 9))
//
//	curated.Is(e, "psram: %v")            // true
//	curated.Has(e, "invalid chip (%d)")   // true
//
// The IsAny() function answers whether the error was created by
// curated.Errorf() at all. We can think of the difference between curated
// and uncurated errors as the difference between 'expected' and
// 'unexpected' errors, depending on how we choose to handle the result of
// a function call.
//
// The Error() function implementation for curated errors normalises the
// error chain, removing duplicate adjacent message parts. The practical
// advantage of this is that it alleviates the problem of when and how to
// wrap errors as they percolate up through the call chain.
package curated
