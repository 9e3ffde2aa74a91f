// SPDX-License-Identifier: MPL-2.0

package maven

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// MetadataFile is the name of repository metadata files.
const MetadataFile = "maven-metadata.xml"

type (
	// metadata is a maven-metadata.xml document, either at project level (all
	// versions) or at SNAPSHOT version level (timestamped file names).
	metadata struct {
		XMLName    xml.Name `xml:"metadata"`
		GroupID    string   `xml:"groupId"`
		ArtifactID string   `xml:"artifactId"`
		Version    string   `xml:"version"`
		Versioning struct {
			Latest   string   `xml:"latest"`
			Release  string   `xml:"release"`
			Versions []string `xml:"versions>version"`
			Snapshot struct {
				Timestamp   string `xml:"timestamp"`
				BuildNumber string `xml:"buildNumber"`
				LocalCopy   string `xml:"localCopy"`
			} `xml:"snapshot"`
			SnapshotVersions []snapshotVersion `xml:"snapshotVersions>snapshotVersion"`
		} `xml:"versioning"`
	}

	snapshotVersion struct {
		Extension  string `xml:"extension"`
		Classifier string `xml:"classifier"`
		Value      string `xml:"value"`
	}
)

func parseMetadata(r io.Reader) (*metadata, error) {
	m := &metadata{}
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", MetadataFile, err)
	}
	return m, nil
}

// versions returns the trimmed, non-empty versions listed in m.
func (m *metadata) versions() []string {
	out := make([]string, 0, len(m.Versioning.Versions))
	for _, v := range m.Versioning.Versions {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// snapshotFileVersion returns the timestamped version of the SNAPSHOT file with
// the given extension and classifier, or "" if m does not resolve it.
func (m *metadata) snapshotFileVersion(baseVersion, extension, classifier string) string {
	for _, sv := range m.Versioning.SnapshotVersions {
		if strings.TrimSpace(sv.Extension) == extension && strings.TrimSpace(sv.Classifier) == classifier {
			return strings.TrimSpace(sv.Value)
		}
	}
	snap := m.Versioning.Snapshot
	if snap.LocalCopy == "true" || snap.Timestamp == "" || snap.BuildNumber == "" {
		return ""
	}
	return strings.TrimSuffix(baseVersion, "-SNAPSHOT") + "-" + strings.TrimSpace(snap.Timestamp) + "-" + strings.TrimSpace(snap.BuildNumber)
}
