// SPDX-License-Identifier: MPL-2.0

package platform

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ExecutableName appends the executable suffix of goos to name.
func ExecutableName(name, goos string) string {
	if goos == Windows {
		return name + ".exe"
	}
	return name
}
