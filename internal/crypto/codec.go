package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Placeholder is substituted for any message body that fails to decrypt.
const Placeholder = "[message could not be decrypted]"

// ErrDecrypt wraps every decryption failure so callers can treat them
// uniformly without inspecting the cause.
var ErrDecrypt = fmt.Errorf("message decryption failed")

// Codec encrypts and decrypts message text with AES-256-CBC under a key
// derived once from the configured secret. Stored form is
// "<ivHex>:<cipherHex>", lowercase hex. CBC carries no integrity check:
// tampered ciphertext may decrypt to garbage instead of failing.
type Codec struct {
	key [32]byte
}

// NewCodec derives the process-wide key as SHA-256 of the secret.
func NewCodec(secret string) *Codec {
	return &Codec{key: sha256.Sum256([]byte(secret))}
}

// Encrypt produces the stored representation of plaintext. A fresh random
// IV is generated per call, so encrypting the same text twice yields
// different results.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generating iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ct), nil
}

// Decrypt reverses Encrypt. Empty input decodes to the empty string
// without touching the cipher (image-only messages store "").
func (c *Codec) Decrypt(stored string) (string, error) {
	if stored == "" {
		return "", nil
	}

	ivHex, ctHex, found := strings.Cut(stored, ":")
	if !found {
		return "", fmt.Errorf("%w: missing iv separator", ErrDecrypt)
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", fmt.Errorf("%w: bad iv hex", ErrDecrypt)
	}
	if len(iv) != aes.BlockSize {
		return "", fmt.Errorf("%w: iv length %d", ErrDecrypt, len(iv))
	}

	ct, err := hex.DecodeString(ctHex)
	if err != nil {
		return "", fmt.Errorf("%w: bad ciphertext hex", ErrDecrypt)
	}
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d", ErrDecrypt, len(ct))
	}

	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return "", err
	}

	pt := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(pt, ct)

	unpadded, err := pkcs7Unpad(pt, aes.BlockSize)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return string(unpadded), nil
}

// Result is the outcome of decrypting one record in a batch.
type Result struct {
	Text string
	Err  error
}

// DecryptAll decrypts a batch, one Result per input. A failing record
// never aborts its siblings; the caller decides how to render failures.
func (c *Codec) DecryptAll(stored []string) []Result {
	results := make([]Result, len(stored))
	for i, s := range stored {
		text, err := c.Decrypt(s)
		results[i] = Result{Text: text, Err: err}
	}
	return results
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-n], nil
}
