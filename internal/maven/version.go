// SPDX-License-Identifier: MPL-2.0

package maven

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const snapshotQualifier = "SNAPSHOT"

// qualifierRanks orders the well-known qualifiers. The release (empty) qualifier
// sits between snapshot and sp; unknown qualifiers sort after all of them.
var qualifierRanks = map[string]int{
	"alpha":     0,
	"beta":      1,
	"milestone": 2,
	"rc":        3,
	"cr":        3,
	"snapshot":  4,
	"":          5,
	"ga":        5,
	"final":     5,
	"release":   5,
	"sp":        6,
}

type versionItem struct {
	number    *big.Int
	qualifier string
}

// CompareVersions orders Maven versions: -1 if a < b, 0 if equal, +1 if a > b.
// Plain numeric versions are compared as semantic versions; everything else
// follows the Maven item-by-item comparison.
func CompareVersions(a, b string) int {
	if va, vb := plainSemver(a), plainSemver(b); va != nil && vb != nil {
		return va.Compare(vb)
	}

	ia, ib := versionItems(a), versionItems(b)
	for i := 0; i < max(len(ia), len(ib)); i++ {
		var x, y *versionItem
		if i < len(ia) {
			x = &ia[i]
		}
		if i < len(ib) {
			y = &ib[i]
		}
		if c := compareItems(x, y); c != 0 {
			return c
		}
	}
	return 0
}

// plainSemver parses versions made of up to three numbers only.
func plainSemver(v string) *semver.Version {
	if v == "" || strings.ContainsFunc(v, func(r rune) bool { return (r < '0' || r > '9') && r != '.' }) {
		return nil
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return nil
	}
	return sv
}

func versionItems(v string) []versionItem {
	v = strings.ToLower(strings.TrimSpace(v))
	var items []versionItem

	flush := func(token string, wasDigit bool) {
		if token == "" {
			return
		}
		if wasDigit {
			n, _ := new(big.Int).SetString(token, 10)
			items = append(items, versionItem{number: n})
			return
		}
		items = append(items, versionItem{qualifier: token})
	}

	start := 0
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == '.' || v[i] == '-' || v[i] == '_' {
			flush(v[start:i], start < i && isDigit(v[start]))
			start = i + 1
			continue
		}
		if i > start && isDigit(v[i]) != isDigit(v[i-1]) {
			flush(v[start:i], isDigit(v[start]))
			start = i
		}
	}

	// Expand single letter aliases followed by a number: 1.0a1 == 1.0-alpha-1.
	for i := range items {
		if i+1 < len(items) && items[i+1].number != nil {
			switch items[i].qualifier {
			case "a":
				items[i].qualifier = "alpha"
			case "b":
				items[i].qualifier = "beta"
			case "m":
				items[i].qualifier = "milestone"
			}
		}
	}

	// Trailing zeros and release qualifiers do not count: 1.0.0 == 1 == 1-final.
	for len(items) > 0 && items[len(items)-1].isNull() {
		items = items[:len(items)-1]
	}
	return items
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (it versionItem) isNull() bool {
	if it.number != nil {
		return it.number.Sign() == 0
	}
	return qualifierRank(it.qualifier) == qualifierRanks[""]
}

// compareItems compares two items; nil stands for a missing item, which equals
// 0 against numbers and the release qualifier against qualifiers.
func compareItems(x, y *versionItem) int {
	switch {
	case x == nil && y == nil:
		return 0
	case x == nil:
		return -compareItems(y, nil)
	case y == nil:
		if x.number != nil {
			return x.number.Sign()
		}
		return compareQualifiers(x.qualifier, "")
	case x.number != nil && y.number != nil:
		return x.number.Cmp(y.number)
	case x.number != nil:
		// Numbers sort after qualifiers: 1.0.1 > 1.0-alpha.
		return 1
	case y.number != nil:
		return -1
	default:
		return compareQualifiers(x.qualifier, y.qualifier)
	}
}

func qualifierRank(q string) int {
	if rank, ok := qualifierRanks[q]; ok {
		return rank
	}
	return len(qualifierRanks)
}

func compareQualifiers(a, b string) int {
	ra, rb := qualifierRank(a), qualifierRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if ra == len(qualifierRanks) {
		return strings.Compare(a, b)
	}
	return 0
}

type (
	// VersionRange is a union of version intervals, for example
	// "[1.0,2.0),[3.0,)". A plain version is a soft requirement matching any
	// version and preferring itself.
	VersionRange struct {
		spec      string
		soft      string
		intervals []interval
	}

	interval struct {
		lower          string
		upper          string
		lowerInclusive bool
		upperInclusive bool
	}
)

// IsRange reports whether v uses range syntax.
func IsRange(v string) bool {
	return strings.ContainsAny(strings.TrimSpace(v), "[(")
}

// ParseVersionRange parses a version range or a plain version.
func ParseVersionRange(spec string) (VersionRange, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return VersionRange{}, fmt.Errorf("empty version")
	}
	if !IsRange(s) {
		return VersionRange{spec: s, soft: s}, nil
	}

	r := VersionRange{spec: s}
	for s != "" {
		if s[0] != '[' && s[0] != '(' {
			return VersionRange{}, fmt.Errorf("invalid version range %q", spec)
		}
		end := strings.IndexAny(s, "])")
		if end < 0 {
			return VersionRange{}, fmt.Errorf("unbounded version range %q", spec)
		}

		iv, err := parseInterval(s[0], s[1:end], s[end])
		if err != nil {
			return VersionRange{}, fmt.Errorf("invalid version range %q: %w", spec, err)
		}
		r.intervals = append(r.intervals, iv)

		s = strings.TrimSpace(s[end+1:])
		s = strings.TrimSpace(strings.TrimPrefix(s, ","))
	}
	return r, nil
}

func parseInterval(open byte, body string, closing byte) (interval, error) {
	iv := interval{lowerInclusive: open == '[', upperInclusive: closing == ']'}

	lower, upper, isPair := strings.Cut(body, ",")
	if !isPair {
		v := strings.TrimSpace(body)
		if v == "" || !iv.lowerInclusive || !iv.upperInclusive {
			return interval{}, fmt.Errorf("single version %q must be written as [version]", body)
		}
		iv.lower, iv.upper = v, v
		return iv, nil
	}
	if strings.Contains(upper, ",") {
		return interval{}, fmt.Errorf("too many bounds in %q", body)
	}

	iv.lower, iv.upper = strings.TrimSpace(lower), strings.TrimSpace(upper)
	if iv.lower != "" && iv.upper != "" && CompareVersions(iv.lower, iv.upper) > 0 {
		return interval{}, fmt.Errorf("lower bound %s is above upper bound %s", iv.lower, iv.upper)
	}
	return iv, nil
}

// String returns the range as written.
func (r VersionRange) String() string { return r.spec }

// Soft returns the recommended version of a plain version requirement, or ""
// for ranges.
func (r VersionRange) Soft() string { return r.soft }

// Contains reports whether version v satisfies the range.
func (r VersionRange) Contains(v string) bool {
	if r.soft != "" {
		return true
	}
	for _, iv := range r.intervals {
		if iv.contains(v) {
			return true
		}
	}
	return false
}

func (iv interval) contains(v string) bool {
	if iv.lower != "" {
		c := CompareVersions(v, iv.lower)
		if c < 0 || (c == 0 && !iv.lowerInclusive) {
			return false
		}
	}
	if iv.upper != "" {
		c := CompareVersions(v, iv.upper)
		if c > 0 || (c == 0 && !iv.upperInclusive) {
			return false
		}
	}
	return true
}

// Select returns the highest of versions contained in the range. SNAPSHOT
// versions are only candidates when the range itself names one.
func (r VersionRange) Select(versions []string) (string, bool) {
	if r.soft != "" {
		return r.soft, true
	}
	allowSnapshots := strings.Contains(strings.ToUpper(r.spec), snapshotQualifier)
	candidates := slices.Clone(versions)
	slices.SortFunc(candidates, CompareVersions)
	for i := len(candidates) - 1; i >= 0; i-- {
		if !allowSnapshots && strings.HasSuffix(strings.ToUpper(candidates[i]), snapshotQualifier) {
			continue
		}
		if r.Contains(candidates[i]) {
			return candidates[i], true
		}
	}
	return "", false
}
