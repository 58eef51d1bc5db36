package helpers

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/oksasatya/go-user-accounts/pkg/apperror"
)

const MaxPasswordLength = 64

// argon2id default cost (RFC 9106 second recommendation, as used by most PHC libraries).
const (
	argonMemory  uint32 = 19 * 1024
	argonTime    uint32 = 2
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32
	argonSaltLen        = 16

	// upper bounds accepted from a stored record
	maxArgonMemory uint32 = 1 << 20 // KiB, 1 GiB
	maxArgonTime   uint32 = 10
)

var b64 = base64.RawStdEncoding

// CheckPasswordLength reports EmptyPassword or ExceededMaxPasswordLength for out-of-range input.
func CheckPasswordLength(plain string) error {
	if len(plain) == 0 {
		return apperror.New(apperror.EmptyPassword)
	}
	if len(plain) > MaxPasswordLength {
		return apperror.MaxPasswordLength(MaxPasswordLength)
	}
	return nil
}

// HashPassword derives an argon2id hash with a fresh salt and returns it as a PHC string:
// $argon2id$v=19$m=19456,t=2,p=1$<salt>$<hash>
func HashPassword(plain string) (string, error) {
	if err := CheckPasswordLength(plain); err != nil {
		return "", err
	}
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", apperror.New(apperror.HashingError)
	}
	key := argon2.IDKey([]byte(plain), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// ComparePassword reports whether plain matches the PHC hash record.
// A mismatch is (false, nil); an unparseable record is InvalidHashingFormat.
func ComparePassword(plain, hash string) (bool, error) {
	if err := CheckPasswordLength(plain); err != nil {
		return false, err
	}
	rec, err := parseHash(hash)
	if err != nil {
		return false, apperror.New(apperror.InvalidHashingFormat)
	}
	key := argon2.IDKey([]byte(plain), rec.salt, rec.time, rec.memory, rec.threads, uint32(len(rec.key)))
	return subtle.ConstantTimeCompare(key, rec.key) == 1, nil
}

type hashRecord struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func parseHash(s string) (*hashRecord, error) {
	parts := strings.Split(s, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("expected 6 segments, got %d", len(parts))
	}
	if parts[1] != "argon2id" {
		return nil, fmt.Errorf("unsupported algorithm %q", parts[1])
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, err
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("unsupported version %d", version)
	}
	rec := &hashRecord{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &rec.memory, &rec.time, &rec.threads); err != nil {
		return nil, err
	}
	if rec.memory == 0 || rec.time == 0 || rec.threads == 0 ||
		rec.memory > maxArgonMemory || rec.time > maxArgonTime {
		return nil, fmt.Errorf("invalid params %q", parts[3])
	}
	var err error
	if rec.salt, err = b64.DecodeString(parts[4]); err != nil || len(rec.salt) == 0 {
		return nil, fmt.Errorf("invalid salt")
	}
	if rec.key, err = b64.DecodeString(parts[5]); err != nil || len(rec.key) == 0 {
		return nil, fmt.Errorf("invalid hash")
	}
	return rec, nil
}
