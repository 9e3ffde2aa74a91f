// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	InvalidCoordinateId
	InvalidRepositoryId
	InvalidClasspathFormatId
	ArtifactNotFoundId
	OfflineArtifactMissingId
	ChecksumMismatchId
	DependencyResolutionFailedId
	MainClassNotFoundId
	JavaNotFoundId
	ApplicationFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue with the named glamour style ("dark", "light", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(sb.String(), stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show where jarrunner looks for its configuration:
~~~
$ jarrunner config path
~~~
- Compare your file with the defaults:
~~~
$ jarrunner config show
~~~
- Check that every repository has a unique ` + "`id`" + ` and a non-empty ` + "`url`",
	}

	invalidCoordinateIssue = &Issue{
		id: InvalidCoordinateId,
		mdMsg: `
# Invalid artifact coordinate!

Artifacts are addressed as ` + "`groupId:artifactId[:extension[:classifier]]:version`" + `.

## Examples:
~~~
$ jarrunner run org.example:app:1.0.0
$ jarrunner run org.example:app:jar:linux-x86_64:1.0.0
~~~`,
	}

	invalidRepositoryIssue = &Issue{
		id: InvalidRepositoryId,
		mdMsg: `
# Invalid repository!

Repository URIs have the form ` + "`scheme://[user[:converter:password]@]host[:port]/path[#id]`" + `.

## Things you can try:
- Use ` + "`plain`" + ` or ` + "`base64`" + ` as the password converter
- Percent-encode special characters in user names and passwords
- Give each repository a unique id with the ` + "`#id`" + ` fragment`,
	}

	invalidClasspathFormatIssue = &Issue{
		id: InvalidClasspathFormatId,
		mdMsg: `
# Invalid classpath format!

The classpath format must contain exactly one ` + "`%s`" + ` which is replaced by the assembled classpath.

## Example:
~~~
$ jarrunner run --classpath-format 'lib/*:%s' org.example:app:1.0.0
~~~`,
	}

	artifactNotFoundIssue = &Issue{
		id: ArtifactNotFoundId,
		mdMsg: `
# Artifact not found!

None of the configured repositories provides the requested artifact.

## Things you can try:
- Check the coordinate for typos
- Add the repository hosting it:
~~~
$ jarrunner run -r https://repo.example.com/maven2#example org.example:app:1.0.0
~~~
- List the repositories in use with ` + "`jarrunner config show`",
	}

	offlineArtifactMissingIssue = &Issue{
		id: OfflineArtifactMissingId,
		mdMsg: `
# Artifact not available offline!

Offline mode only uses the local repository and the artifact is not cached there.

## Things you can try:
- Run once without ` + "`--offline`" + ` to populate the local repository
- Point ` + "`--local-repository`" + ` at a repository that contains the artifact`,
	}

	checksumMismatchIssue = &Issue{
		id: ChecksumMismatchId,
		mdMsg: `
# Checksum mismatch!

A downloaded file does not match the checksum published by the repository.

## Things you can try:
- Retry the download; the transfer may have been corrupted
- Set ` + "`checksum_policy: \"warn\"`" + ` in the configuration if the repository publishes broken checksums`,
	}

	dependencyResolutionFailedIssue = &Issue{
		id: DependencyResolutionFailedId,
		mdMsg: `
# Dependency resolution failed!

The dependency tree of the artifact could not be built.

## Things you can try:
- Inspect the tree that can be resolved:
~~~
$ jarrunner deps org.example:app:1.0.0
~~~
- Run with ` + "`--verbose`" + ` to see every repository request`,
	}

	mainClassNotFoundIssue = &Issue{
		id: MainClassNotFoundId,
		mdMsg: `
# Main class not found!

The manifest of the artifact does not declare a ` + "`Main-Class`" + `.

## Things you can try:
- Provide the main class yourself:
~~~
$ jarrunner run -m org.example.Main org.example:app:1.0.0
~~~`,
	}

	javaNotFoundIssue = &Issue{
		id: JavaNotFoundId,
		mdMsg: `
# Java could not be started!

jarrunner looks for Java in ` + "`--java-path`" + `, the configuration, ` + "`$JAVA_HOME/bin`" + ` and ` + "`PATH`" + ` in that order.

## Things you can try:
- Set ` + "`JAVA_HOME`" + ` to a JDK or JRE installation
- Pass the executable explicitly with ` + "`--java-path`",
		docLinks: []HttpLink{"https://adoptium.net/"},
	}

	applicationFailedIssue = &Issue{
		id: ApplicationFailedId,
		mdMsg: `
# The application failed!

The Java application stopped with a non-zero exit value. jarrunner exits with the same value.

## Things you can try:
- Print the exact command line with ` + "`--dry-run`" + ` and run it yourself`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():           configLoadFailedIssue,
		invalidCoordinateIssue.Id():          invalidCoordinateIssue,
		invalidRepositoryIssue.Id():          invalidRepositoryIssue,
		invalidClasspathFormatIssue.Id():     invalidClasspathFormatIssue,
		artifactNotFoundIssue.Id():           artifactNotFoundIssue,
		offlineArtifactMissingIssue.Id():     offlineArtifactMissingIssue,
		checksumMismatchIssue.Id():           checksumMismatchIssue,
		dependencyResolutionFailedIssue.Id(): dependencyResolutionFailedIssue,
		mainClassNotFoundIssue.Id():          mainClassNotFoundIssue,
		javaNotFoundIssue.Id():               javaNotFoundIssue,
		applicationFailedIssue.Id():          applicationFailedIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	ids := maps.Keys(issues)
	slices.Sort(ids)

	values := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		values = append(values, issues[id])
	}
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
