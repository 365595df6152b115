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

package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// local base directory. takes priority over the user config directory if it
// exists in the current working directory
const localBase = ".rollnet"

// name of the base directory in the user config directory
const userBase = "rollnet"

// ResourcePath returns the resource string (representing the resource to be
// loaded or saved) prepended with operating system specific details.
func ResourcePath(resource ...string) (string, error) {
	base, err := basePath()
	if err != nil {
		return "", err
	}
	return resourcePath(base, resource...)
}

func resourcePath(base string, resource ...string) (string, error) {
	p := make([]string, 0, len(resource)+1)
	p = append(p, base)
	p = append(p, resource...)
	pth := filepath.Join(p...)

	dir := pth
	if len(resource) > 0 && strings.Contains(resource[len(resource)-1], ".") {
		dir = filepath.Dir(pth)
	}

	if _, err := os.Stat(dir); err != nil {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", err
		}
	}

	return pth, nil
}

func basePath() (string, error) {
	if fi, err := os.Stat(localBase); err == nil && fi.IsDir() {
		return localBase, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cnf, userBase), nil
}
