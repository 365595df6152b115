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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The pattern is the identity of the error. Packages export the patterns they
// use so that callers can test for them with Is() and Has(). For example:
//
//	const SessionActive = "netplay: session already active (%v)"
//
//	e := curated.Errorf(SessionActive, state)
//
//	if curated.Is(e, SessionActive) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the chain of curated errors.
//
//	f := curated.Errorf("rollback: %v", e)
//
//	if curated.Has(f, SessionActive) {
//		fmt.Println("true")
//	}
//
// Is() would fail in the second example because f was not created with the
// SessionActive pattern.
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We can think of a curated error as an 'expected' error and
// an uncurated error as 'unexpected'.
//
// Curated errors are compatible with the errors package in the standard
// library. The first error value given to Errorf() is returned by Unwrap().
//
// The Error() implementation normalises the message chain so that adjacent
// duplicate message parts are printed only once. For example, a rollback error
// wrapping another rollback error prints as:
//
//	rollback: bad state size
//
// and not:
//
//	rollback: rollback: bad state size
package curated
