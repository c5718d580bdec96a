// Package hashing computes content digests used to tell identical files apart
// from files that merely share a name.
package hashing

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/codingsince1985/checksum"
	"github.com/spf13/afero"
)

// Algorithm names accepted by New.
const (
	AlgorithmMD5    = "md5"
	AlgorithmXXHash = "xxhash"
)

// ContentHasher returns a fixed-size digest of a file's bytes.
// Two files have identical content iff their digests are equal.
type ContentHasher interface {
	Sum(path string) (string, error)
}

// New builds the hasher named by algorithm, reading files through fs.
func New(algorithm string, fs afero.Fs) (ContentHasher, error) {
	switch strings.ToLower(algorithm) {
	case "", AlgorithmMD5:
		return NewMD5(fs), nil
	case AlgorithmXXHash:
		return NewXXHash(fs), nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", algorithm)
	}
}

// MD5 hashes files with the checksum package.
type MD5 struct {
	fs afero.Fs
}

// NewMD5 returns an MD5 hasher reading files through fs.
func NewMD5(fs afero.Fs) *MD5 {
	return &MD5{fs: fs}
}

// Sum returns the hex MD5 digest of path.
func (m *MD5) Sum(path string) (string, error) {
	file, err := m.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	sum, err := checksum.MD5sumReader(file)
	if err != nil {
		return "", fmt.Errorf("md5 of %s: %w", path, err)
	}
	return sum, nil
}

// XXHash hashes files with xxHash64. Much faster than MD5 and collision
// resistant enough for equality checks inside one catalog directory.
type XXHash struct {
	fs afero.Fs
}

// NewXXHash returns an XXHash reading files through fs.
func NewXXHash(fs afero.Fs) *XXHash {
	return &XXHash{fs: fs}
}

// Sum returns the hex xxHash64 digest of path.
func (x *XXHash) Sum(path string) (string, error) {
	file, err := x.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("xxhash of %s: %w", path, err)
	}
	return strconv.FormatUint(h.Sum64(), 16), nil
}
