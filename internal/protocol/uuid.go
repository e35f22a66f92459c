package protocol

import (
	"crypto/md5"
	"io"

	"github.com/google/uuid"
)

// UUID is the wire representation: 16 raw bytes, rendered as canonical
// hyphenated lowercase hex.
type UUID [16]byte

func (u UUID) String() string {
	return uuid.UUID(u).String()
}

func ReadUUID(r io.Reader) (UUID, error) {
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return UUID{}, err
	}
	return UUID(buf), nil
}

func WriteUUID(w io.Writer, u UUID) error {
	_, err := w.Write(u[:])
	return err
}

// OfflineUUID derives a deterministic version-3 UUID for an unauthenticated
// username: MD5("OfflinePlayer:"+username), RFC 4122 variant. This mirrors
// the server-side offline derivation exactly, so it is plain MD5 rather than
// uuid.NewMD5's namespaced variant (which would hash a different input).
func OfflineUUID(username string) UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))
	u := uuid.UUID(sum)
	u[6] = (u[6] & 0x0F) | 0x30
	u[8] = (u[8] & 0x3F) | 0x80
	return UUID(u)
}
