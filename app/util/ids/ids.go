package ids

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// New returns a random GUID encoded as unpadded base64url (22 characters).
func New() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}
