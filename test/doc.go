// This file is part of Rollnet.
//
// Rollnet is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rollnet is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Rollnet.  If not, see <https://www.gnu.org/licenses/>.

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() and ExpectInequality() functions are the simplest and
// probably the most useful. They compare two values of the same comparable
// type.
//
// The ExpectSuccess() and ExpectFailure() functions test for success or
// failure values. A success value is true for a bool and nil for an error.
//
// The Demand*() variants behave the same but the test will stop immediately
// on failure. Use them when later parts of the test depend on the value.
//
// All functions accept optional tags which are printed as a prefix to any
// failure message. Useful for identifying the iteration of a loop that
// produced the failure.
//
// CompareWriter is an io.Writer that captures output for comparison with
// predefined strings.
package test
