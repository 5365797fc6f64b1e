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

// Package logger is the central log for the entire application. There is
// only ever one log and it can be written to from anywhere with the Log()
// and Logf() functions.
//
// Consecutive entries with the same tag and detail are folded into a
// single entry with a repeat count. This matters here because the bus
// handling loops can emit the same diagnostic many thousands of times a
// second.
//
// The SetEcho() function attaches an io.Writer to which new entries are
// immediately written. This is how log entries reach the terminal during
// normal use.
package logger
