// SPDX-License-Identifier: MPL-2.0

package maven

import (
	"bytes"
	"context"
	"crypto/sha1" //nolint:gosec // Maven repositories publish SHA-1 checksums.
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/cenkalti/backoff/v4"

	"github.com/lars-sh/jarrunner/internal/repository"
	"github.com/lars-sh/jarrunner/pkg/artifact"
)

const (
	// ChecksumFail rejects files whose checksum does not match.
	ChecksumFail ChecksumPolicy = "fail"
	// ChecksumWarn logs checksum mismatches and keeps the file.
	ChecksumWarn ChecksumPolicy = "warn"
	// ChecksumIgnore skips checksum verification.
	ChecksumIgnore ChecksumPolicy = "ignore"

	checksumSuffix = ".sha1"
)

// ErrInvalidChecksumPolicy is returned for unknown checksum policies.
var ErrInvalidChecksumPolicy = errors.New("invalid checksum policy")

type (
	// ChecksumPolicy decides what happens when a checksum does not match.
	ChecksumPolicy string

	// fetcher downloads artifacts into the local repository.
	fetcher struct {
		transport  Transport
		local      *LocalRepository
		offline    bool
		policy     ChecksumPolicy
		retries    uint64
		newBackOff func() backoff.BackOff
		logger     *slog.Logger
	}
)

// ParseChecksumPolicy parses a policy name; "" selects ChecksumWarn.
func ParseChecksumPolicy(s string) (ChecksumPolicy, error) {
	switch p := ChecksumPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ChecksumWarn, nil
	case ChecksumFail, ChecksumWarn, ChecksumIgnore:
		return p, nil
	default:
		return "", fmt.Errorf("%w %q (valid: fail, warn, ignore)", ErrInvalidChecksumPolicy, s)
	}
}

// artifact returns the local file of c, downloading it from the first repository
// that has it.
func (f *fetcher) artifact(ctx context.Context, repos []repository.Descriptor, c artifact.Coordinate) (string, error) {
	dest := f.local.Path(c)
	if f.local.Has(c) {
		return dest, nil
	}
	if f.offline {
		return "", fmt.Errorf("%s: %w", c, ErrOffline)
	}
	if len(repos) == 0 {
		return "", fmt.Errorf("resolve %s: %w", c, ErrNoRepositories)
	}

	// A repository failing for another reason than a missing file does not stop
	// the search; its error is reported only if no other repository has c.
	var firstErr error
	for _, repo := range repos {
		remote, err := f.remotePath(ctx, repo, c)
		if err == nil {
			err = f.download(ctx, repo, remote, dest)
		}
		if err == nil {
			f.logger.Debug("downloaded artifact", "artifact", c.String(), "repository", repo.ID)
			return dest, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, ErrNotFound) {
			f.logger.Debug("artifact not found", "artifact", c.String(), "repository", repo.ID)
			continue
		}
		f.logger.Warn("repository failed, trying the next one", "artifact", c.String(), "repository", repo.ID, "error", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return "", firstErr
	}
	return "", &ArtifactNotFoundError{Coordinate: c, Repositories: repos}
}

// remotePath returns the repository path of c inside repo. SNAPSHOT files are
// looked up through the version metadata of repo.
func (f *fetcher) remotePath(ctx context.Context, repo repository.Descriptor, c artifact.Coordinate) (string, error) {
	if !c.IsSnapshot() {
		return c.RepositoryPath(), nil
	}
	md, err := f.metadata(ctx, repo, c.VersionDir())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.RepositoryPath(), nil
		}
		return "", err
	}
	ext := c.Extension
	if ext == "" {
		ext = artifact.DefaultExtension
	}
	if v := md.snapshotFileVersion(c.Version, ext, c.Classifier); v != "" {
		return path.Join(c.VersionDir(), c.FileName(v)), nil
	}
	return c.RepositoryPath(), nil
}

// metadata returns the maven-metadata.xml of repo for the repository directory
// dir. It is downloaded on every call unless offline, then the cached copy is
// used.
func (f *fetcher) metadata(ctx context.Context, repo repository.Descriptor, dir string) (*metadata, error) {
	cached := f.local.MetadataPath(repo, dir)
	if !f.offline {
		err := f.download(ctx, repo, path.Join(dir, MetadataFile), cached)
		if err != nil {
			return nil, err
		}
	}

	file, err := os.Open(cached)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", cached, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseMetadata(file)
}

// download copies remote from repo to dest through a temporary file which is
// renamed into place once its checksum was verified.
func (f *fetcher) download(ctx context.Context, repo repository.Descriptor, remote, dest string) error {
	url := ResourceURL(repo, remote)

	body, err := f.get(ctx, repo, remote)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return &TransferError{URL: url, Cause: err}
	}
	defer body.Close()

	tmp, err := createTemp(dest)
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	sum := sha1.New() //nolint:gosec // Maven repositories publish SHA-1 checksums.
	if _, err := io.Copy(io.MultiWriter(tmp, sum), body); err != nil {
		tmp.Close()
		return &TransferError{URL: url, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}

	if err := f.verify(ctx, repo, remote, sum); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("store %s: %w", dest, err)
	}
	return nil
}

// verify compares sum with the published .sha1 of remote. A missing checksum file
// is not an error.
func (f *fetcher) verify(ctx context.Context, repo repository.Descriptor, remote string, sum hash.Hash) error {
	if f.policy == ChecksumIgnore {
		return nil
	}

	url := ResourceURL(repo, remote)
	body, err := f.get(ctx, repo, remote+checksumSuffix)
	if errors.Is(err, ErrNotFound) {
		f.logger.Debug("no checksum published", "url", url)
		return nil
	}
	if err != nil {
		return &TransferError{URL: url + checksumSuffix, Cause: err}
	}
	defer body.Close()

	raw, err := io.ReadAll(io.LimitReader(body, 1024))
	if err != nil {
		return &TransferError{URL: url + checksumSuffix, Cause: err}
	}
	fields := bytes.Fields(raw)
	if len(fields) == 0 {
		f.logger.Warn("empty checksum file", "url", url+checksumSuffix)
		return nil
	}

	expected := strings.ToLower(string(fields[0]))
	actual := hex.EncodeToString(sum.Sum(nil))
	if expected == actual {
		return nil
	}
	mismatch := &ChecksumError{URL: url, Expected: expected, Actual: actual}
	if f.policy == ChecksumFail {
		return mismatch
	}
	f.logger.Warn("checksum mismatch", "url", url, "expected", expected, "actual", actual)
	return nil
}

// get opens remote, retrying transient failures with exponential backoff.
func (f *fetcher) get(ctx context.Context, repo repository.Descriptor, remote string) (io.ReadCloser, error) {
	attempt := 0
	op := func() (io.ReadCloser, error) {
		attempt++
		body, err := f.transport.Get(ctx, repo, remote)
		if err == nil {
			return body, nil
		}
		if !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		f.logger.Debug("transfer failed", "url", ResourceURL(repo, remote), "attempt", attempt, "error", err)
		return nil, err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(f.newBackOff(), f.retries), ctx)
	return backoff.RetryWithData(op, b)
}
