package bridge

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// refPrefix is the leading token of every reference annotation
const refPrefix = "ref"

// EncodeRef produces the annotation string embedded in external objects:
// "ref:<kind>:<base64url(localID)>". The annotation is the one public wire
// contract of the bridge; it lets the mapping table be rebuilt by scanning
// the external graph if the local store is lost.
func EncodeRef(kind EntityKind, localID string) (string, error) {
	if !kind.IsValid() {
		return "", ErrInvalidEntityKind
	}
	if localID == "" {
		return "", ErrInvalidLocalID
	}
	encoded := base64.RawURLEncoding.EncodeToString([]byte(localID))
	return fmt.Sprintf("%s:%s:%s", refPrefix, kind, encoded), nil
}

// DecodeRef is the strict inverse of EncodeRef. Any malformed input (wrong
// prefix, unknown kind, invalid base64) yields ErrInvalidRef, never a
// partial result.
func DecodeRef(s string) (EntityKind, string, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 || parts[0] != refPrefix {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRef, s)
	}

	kind := EntityKind(parts[1])
	if !kind.IsValid() {
		return "", "", fmt.Errorf("%w: unknown entity kind %q", ErrInvalidRef, parts[1])
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRef, err)
	}
	if len(raw) == 0 {
		return "", "", fmt.Errorf("%w: empty local ID", ErrInvalidRef)
	}

	return kind, string(raw), nil
}
