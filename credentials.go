package dropwatch

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// CredentialsEnv is the environment variable holding the credential blob.
const CredentialsEnv = "DROPWATCH_CREDENTIALS"

// Credentials is an opaque JSON credential blob for the delivery backend.
type Credentials struct {
	raw json.RawMessage
}

// ParseCredentials validates that raw is a JSON object.
func ParseCredentials(raw string) (*Credentials, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, Errorf(ENOTFOUND, "%s not set", CredentialsEnv)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, Errorf(EINVALID, "%s is not a JSON object: %v", CredentialsEnv, err)
	}
	if obj == nil {
		return nil, Errorf(EINVALID, "%s is not a JSON object", CredentialsEnv)
	}

	return &Credentials{raw: json.RawMessage(raw)}, nil
}

// Raw returns the credential blob as provided.
func (c *Credentials) Raw() json.RawMessage {
	return c.raw
}

// Fingerprint returns a short stable identifier of the blob, safe to log.
func (c *Credentials) Fingerprint() string {
	return strconv.FormatUint(xxhash.Sum64(c.raw), 16)
}

// String hides the credential contents.
func (c *Credentials) String() string {
	return "credentials(" + c.Fingerprint() + ")"
}
