// Package codec converts the application state to and from the opaque blob
// stored in the persisted slot.
//
// Blob layout:
//
//	bv1.<key fingerprint>.<base64url(nonce || ciphertext || tag)>
//
// The plaintext is canonical JSON (HTML escaping disabled, object keys in
// declaration order for structs and sorted for maps). Encryption is
// AES-256-GCM under a key derived from an application constant. This is
// obfuscation against casual inspection of the data file, not a security
// boundary: anyone holding the binary holds the key.
package codec

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/beloved/internal/model"
)

// ApplicationKey is the fixed passphrase every installation encrypts with.
const ApplicationKey = "beloved-local-key-2024"

const (
	blobPrefix = "bv1"

	// domainKey separates the fingerprint hash from the key derivation hash.
	domainKey = "beloved/key/v1"

	fingerprintLen = 8
)

// Codec encodes and decodes state blobs under one key.
//
// Thread-safety: Codec is immutable after construction and safe for
// concurrent use.
type Codec struct {
	aead        cipher.AEAD
	fingerprint string
	random      io.Reader
}

// Option configures a Codec.
type Option func(*Codec)

// WithRandom overrides the nonce source. Tests use a fixed reader to get
// byte-identical blobs.
func WithRandom(r io.Reader) Option {
	return func(c *Codec) { c.random = r }
}

// New creates a Codec for the given passphrase.
// The AES-256 key is SHA-256(passphrase).
func New(passphrase string, opts ...Option) (*Codec, error) {
	key := sha256.Sum256([]byte(passphrase))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	c := &Codec{
		aead:        aead,
		fingerprint: fingerprint(passphrase),
		random:      rand.Reader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Default returns a Codec for ApplicationKey.
func Default(opts ...Option) *Codec {
	c, err := New(ApplicationKey, opts...)
	if err != nil {
		// aes.NewCipher only fails on bad key sizes; SHA-256 is always 32 bytes.
		panic(err)
	}
	return c
}

// fingerprint identifies the key without revealing it.
// Format: first 8 hex chars of SHA256(domain + 0x00 + passphrase).
func fingerprint(passphrase string) string {
	h := sha256.New()
	h.Write([]byte(domainKey))
	h.Write([]byte{0x00})
	h.Write([]byte(passphrase))
	return hex.EncodeToString(h.Sum(nil))[:fingerprintLen]
}

// Encode serializes state to canonical JSON and encrypts it.
// Never fails for a state built from this package's types, except when the
// random source fails.
func (c *Codec) Encode(state model.State) (string, error) {
	plaintext, err := MarshalCanonical(state)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return c.Seal(plaintext)
}

// Seal encrypts an arbitrary plaintext into a blob.
func (c *Codec) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return "", fmt.Errorf("seal: read nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, plaintext, []byte(c.fingerprint))
	return strings.Join([]string{
		blobPrefix,
		c.fingerprint,
		base64.RawURLEncoding.EncodeToString(sealed),
	}, "."), nil
}

// Open decrypts a blob and returns the plaintext document without parsing it.
// Errors are always *DecodeError with ReasonCorrupt or ReasonWrongKey.
func (c *Codec) Open(blob string) ([]byte, error) {
	parts := strings.Split(strings.TrimSpace(blob), ".")
	if len(parts) != 3 || parts[0] != blobPrefix {
		return nil, &DecodeError{Reason: ReasonCorrupt, Message: "unrecognized blob framing"}
	}
	if parts[1] != c.fingerprint {
		return nil, &DecodeError{
			Reason:  ReasonWrongKey,
			Message: fmt.Sprintf("blob sealed with key %s, codec holds %s", parts[1], c.fingerprint),
		}
	}

	sealed, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, &DecodeError{Reason: ReasonCorrupt, Message: "invalid base64 payload", Err: err}
	}
	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize+c.aead.Overhead() {
		return nil, &DecodeError{Reason: ReasonCorrupt, Message: "payload too short"}
	}

	plaintext, err := c.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], []byte(c.fingerprint))
	if err != nil {
		return nil, &DecodeError{Reason: ReasonCorrupt, Message: "authentication failed", Err: err}
	}
	return plaintext, nil
}

// Decode decrypts and parses a blob.
// Errors are always *DecodeError.
func (c *Codec) Decode(blob string) (model.State, error) {
	plaintext, err := c.Open(blob)
	if err != nil {
		return model.State{}, err
	}
	var state model.State
	if err := Unmarshal(plaintext, &state); err != nil {
		return model.State{}, err
	}
	return state, nil
}

// MarshalCanonical produces the canonical JSON text of v.
// HTML escaping is disabled so "<" and "&" in free text stay readable, and
// the trailing newline added by json.Encoder is removed.
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshal canonical: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Unmarshal parses a decrypted document into v.
// Returns *DecodeError with ReasonMalformedJSON on any parse failure.
func Unmarshal(plaintext []byte, v any) error {
	if err := json.Unmarshal(plaintext, v); err != nil {
		return &DecodeError{Reason: ReasonMalformedJSON, Message: "document is not valid state JSON", Err: err}
	}
	return nil
}
