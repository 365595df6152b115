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

// Package paths contains functions to prepare paths to rollnet resources.
//
// The ResourcePath() function returns the supplied resource path prepended
// with the base resource directory. For example, the directory used for desync
// dumps:
//
//	d, err := paths.ResourcePath("states")
//
// The policy is simple: if a directory called ".rollnet" is present in the
// program's current directory then that is the base path. If it is not present
// then the "rollnet" directory in the user's config directory is used (see
// os.UserConfigDir()).
//
// The final element of the resource is treated as a file name if it contains
// a dot and as a directory otherwise. Directories (including the base) are
// created if they do not exist.
package paths
