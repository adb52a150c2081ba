// Package fingerprint computes the content hash used to identify
// byte-equivalent files, treating hashing as a pure function of bytes.
package fingerprint

import (
	"crypto/sha1" //nolint:gosec // SHA1 is the catalog-standard ROM fingerprint, not used for security
	"encoding/hex"
	"fmt"
	"io"
)

// FP is an opaque, comparable content fingerprint. Equal FPs imply
// byte-equivalent files. The format ("sha1:<hex>") matches
// dat.Rom.Fingerprint so a file's computed FP can be compared directly
// against a catalog entry's expected fingerprint.
type FP string

// Of computes the fingerprint of everything read from r.
func Of(r io.Reader) (FP, error) {
	h := sha1.New() //nolint:gosec // see package doc
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("compute fingerprint: %w", err)
	}
	return FP("sha1:" + hex.EncodeToString(h.Sum(nil))), nil
}

// OfBytes computes the fingerprint of an in-memory buffer.
func OfBytes(b []byte) FP {
	h := sha1.New() //nolint:gosec // see package doc
	h.Write(b)
	return FP("sha1:" + hex.EncodeToString(h.Sum(nil)))
}
