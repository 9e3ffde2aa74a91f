// SPDX-License-Identifier: MPL-2.0

package repository

// ParseAll derives one descriptor per user URI, in order. The first failing URI
// aborts parsing.
func ParseAll(uris []string) ([]Descriptor, error) {
	descriptors := make([]Descriptor, 0, len(uris))
	for i, uri := range uris {
		d, err := ParseURI(uri, i+1)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// Merge returns user repositories followed by ambient ones. Only the first
// repository of each ID is kept. ambient is skipped entirely when ignoreAmbient
// is set. The returned slice is never shared with the inputs.
func Merge(user, ambient []Descriptor, ignoreAmbient bool) []Descriptor {
	seen := make(map[string]struct{}, len(user)+len(ambient))
	merged := make([]Descriptor, 0, len(user)+len(ambient))

	add := func(list []Descriptor) {
		for _, d := range list {
			if _, dup := seen[d.ID]; dup {
				continue
			}
			seen[d.ID] = struct{}{}
			merged = append(merged, d)
		}
	}

	add(user)
	if !ignoreAmbient {
		add(ambient)
	}
	return merged
}

// BuildList parses uris and merges them with ambient.
func BuildList(uris []string, ambient []Descriptor, ignoreAmbient bool) ([]Descriptor, error) {
	user, err := ParseAll(uris)
	if err != nil {
		return nil, err
	}
	return Merge(user, ambient, ignoreAmbient), nil
}
