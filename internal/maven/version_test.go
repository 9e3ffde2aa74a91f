// SPDX-License-Identifier: MPL-2.0

package maven

import (
	"errors"
	"testing"
)

func TestCompareVersions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0.0", 0},
		{"1.0", "1.1", -1},
		{"1.10", "1.9", 1},
		{"2.0.0", "10.0.0", -1},
		{"1.2.3.4", "1.2.3", 1},
		{"1.0-SNAPSHOT", "1.0", -1},
		{"1.0-alpha-1", "1.0-beta-1", -1},
		{"1.0a1", "1.0-alpha-1", 0},
		{"1.0-rc1", "1.0-rc2", -1},
		{"1.0-RC1", "1.0", -1},
		{"1.0", "1.0-final", 0},
		{"1.0", "1.0-sp1", -1},
		{"1.0-jre", "1.0", 1},
		{"31.1-jre", "31.1-android", 1},
		{"1.0.1", "1.0-alpha", 1},
		{"1.0-milestone-2", "1.0-alpha-5", 1},
	}

	for _, tt := range tests {
		if got := CompareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := CompareVersions(tt.b, tt.a); got != -tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
		}
	}
}

func TestVersionRangeContains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec    string
		version string
		want    bool
	}{
		{"[1.0,2.0)", "1.0", true},
		{"[1.0,2.0)", "1.5", true},
		{"[1.0,2.0)", "2.0", false},
		{"(1.0,2.0]", "1.0", false},
		{"(1.0,2.0]", "2.0", true},
		{"[1.0]", "1.0", true},
		{"[1.0]", "1.0.1", false},
		{"(,1.0]", "0.9", true},
		{"(,1.0]", "1.1", false},
		{"[1.5,)", "99", true},
		{"(,1.0],[1.2,)", "1.1", false},
		{"(,1.0],[1.2,)", "1.3", true},
		{"1.0", "7.0", true},
	}

	for _, tt := range tests {
		r, err := ParseVersionRange(tt.spec)
		if err != nil {
			t.Errorf("ParseVersionRange(%q) returned error: %v", tt.spec, err)
			continue
		}
		if got := r.Contains(tt.version); got != tt.want {
			t.Errorf("%s.Contains(%q) = %v, want %v", tt.spec, tt.version, got, tt.want)
		}
	}
}

func TestVersionRangeSelect(t *testing.T) {
	t.Parallel()

	available := []string{"1.0", "1.1", "1.10", "2.0-SNAPSHOT", "2.0", "1.9"}

	tests := []struct {
		spec   string
		want   string
		wantOK bool
	}{
		{spec: "[1.0,2.0)", want: "1.10", wantOK: true},
		{spec: "[1.0,)", want: "2.0", wantOK: true},
		{spec: "[3.0,)", wantOK: false},
		{spec: "1.1", want: "1.1", wantOK: true},
	}

	for _, tt := range tests {
		r, err := ParseVersionRange(tt.spec)
		if err != nil {
			t.Fatal(err)
		}
		got, ok := r.Select(available)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("%s.Select() = (%q, %v), want (%q, %v)", tt.spec, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseVersionRangeInvalid(t *testing.T) {
	t.Parallel()

	for _, spec := range []string{"", "[1.0", "[2.0,1.0]", "(1.0)", "[1.0,2.0,3.0]", "[1.0],x"} {
		if _, err := ParseVersionRange(spec); err == nil {
			t.Errorf("ParseVersionRange(%q) succeeded, want error", spec)
		}
	}
}

func TestVersionRangeErrorMessage(t *testing.T) {
	t.Parallel()

	err := error(&VersionRangeError{Project: "g:a", Range: "[2,)", Available: []string{"1.0"}})
	if !errors.Is(err, ErrNoMatchingVersion) {
		t.Error("VersionRangeError does not wrap ErrNoMatchingVersion")
	}
	if got := err.Error(); got != "no version of g:a matches [2,) (available: 1.0)" {
		t.Errorf("Error() = %q", got)
	}
}
