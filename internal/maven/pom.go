// SPDX-License-Identifier: MPL-2.0

package maven

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

type (
	// pom is the subset of a POM file needed for dependency resolution.
	pom struct {
		XMLName              xml.Name        `xml:"project"`
		Parent               *pomParent      `xml:"parent"`
		GroupID              string          `xml:"groupId"`
		ArtifactID           string          `xml:"artifactId"`
		Version              string          `xml:"version"`
		Packaging            string          `xml:"packaging"`
		Properties           pomProperties   `xml:"properties"`
		DependencyManagement pomDepMgmt      `xml:"dependencyManagement"`
		Dependencies         []pomDependency `xml:"dependencies>dependency"`
	}

	pomParent struct {
		GroupID    string `xml:"groupId"`
		ArtifactID string `xml:"artifactId"`
		Version    string `xml:"version"`
	}

	pomDepMgmt struct {
		Dependencies []pomDependency `xml:"dependencies>dependency"`
	}

	pomDependency struct {
		GroupID    string         `xml:"groupId"`
		ArtifactID string         `xml:"artifactId"`
		Version    string         `xml:"version"`
		Type       string         `xml:"type"`
		Classifier string         `xml:"classifier"`
		Scope      string         `xml:"scope"`
		Optional   string         `xml:"optional"`
		Exclusions []pomExclusion `xml:"exclusions>exclusion"`
	}

	pomExclusion struct {
		GroupID    string `xml:"groupId"`
		ArtifactID string `xml:"artifactId"`
	}

	// pomProperties keeps the free-form <properties> children in declaration
	// order; later duplicates override earlier ones.
	pomProperties map[string]string
)

// UnmarshalXML reads arbitrary child elements as name/value pairs.
func (p *pomProperties) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	props := pomProperties{}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			props[t.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			*p = props
			return nil
		}
	}
}

// parsePOM decodes a POM document.
func parsePOM(r io.Reader) (*pom, error) {
	p := &pom{}
	dec := xml.NewDecoder(r)
	// POMs in the wild declare other encodings; the ASCII subset is what matters.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("decode POM: %w", err)
	}
	p.trim()
	return p, nil
}

func (p *pom) trim() {
	p.GroupID = strings.TrimSpace(p.GroupID)
	p.ArtifactID = strings.TrimSpace(p.ArtifactID)
	p.Version = strings.TrimSpace(p.Version)
	p.Packaging = strings.TrimSpace(p.Packaging)
	if p.Parent != nil {
		p.Parent.GroupID = strings.TrimSpace(p.Parent.GroupID)
		p.Parent.ArtifactID = strings.TrimSpace(p.Parent.ArtifactID)
		p.Parent.Version = strings.TrimSpace(p.Parent.Version)
	}
	for _, deps := range [][]pomDependency{p.Dependencies, p.DependencyManagement.Dependencies} {
		for i := range deps {
			deps[i].trim()
		}
	}
}

func (d *pomDependency) trim() {
	d.GroupID = strings.TrimSpace(d.GroupID)
	d.ArtifactID = strings.TrimSpace(d.ArtifactID)
	d.Version = strings.TrimSpace(d.Version)
	d.Type = strings.TrimSpace(d.Type)
	d.Classifier = strings.TrimSpace(d.Classifier)
	d.Scope = strings.TrimSpace(d.Scope)
	d.Optional = strings.TrimSpace(d.Optional)
	for i := range d.Exclusions {
		d.Exclusions[i].GroupID = strings.TrimSpace(d.Exclusions[i].GroupID)
		d.Exclusions[i].ArtifactID = strings.TrimSpace(d.Exclusions[i].ArtifactID)
	}
}
