package middleware

import (
	"crypto/subtle"

	"github.com/dmsforum/forum/internal/core/domain"
)

// Claims is what a verified API key grants. Keys carry no identity, so it
// is always empty.
type Claims struct{}

// APIKeys is the backend's allow-list of service API keys.
type APIKeys struct {
	keys [][]byte
}

func NewAPIKeys(keys ...string) APIKeys {
	out := APIKeys{keys: make([][]byte, 0, len(keys))}
	for _, k := range keys {
		if k != "" {
			out.keys = append(out.keys, []byte(k))
		}
	}
	return out
}

// VerifyAPIKey returns empty claims when key is on the allow-list and
// domain.ErrUnauthorized otherwise.
func (a APIKeys) VerifyAPIKey(key string) (Claims, error) {
	if key == "" {
		return Claims{}, domain.ErrUnauthorized
	}
	for _, allowed := range a.keys {
		if subtle.ConstantTimeCompare(allowed, []byte(key)) == 1 {
			return Claims{}, nil
		}
	}
	return Claims{}, domain.ErrUnauthorized
}
