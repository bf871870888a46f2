// Package token decodes the self-contained bearer tokens issued by the
// auth backend. The gateway never holds the signing secret, so it parses
// claims without verifying the signature; expiry and storage checks happen
// server-side in the session store.
package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
)

var b64 = base64.RawURLEncoding

// OpaqueID decodes an identifier that backends encode either as a JSON
// string or a number.
type OpaqueID string

// UnmarshalJSON accepts both encodings.
func (o *OpaqueID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*o = OpaqueID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*o = OpaqueID(n.String())
	return nil
}

func (o OpaqueID) String() string { return string(o) }

// Authority is one entry of the authorities claim shape.
type Authority struct {
	Authority string `json:"authority"`
}

// Claims is the decoded token payload. Role may be carried either as a
// direct claim or as the first authorities entry.
type Claims struct {
	Subject     string      `json:"sub"`
	UserID      OpaqueID    `json:"userId"`
	Role        string      `json:"role"`
	Authorities []Authority `json:"authorities"`
	ExpiresAt   int64       `json:"exp"`
}

// DecodeClaims parses a compact token and returns its payload claims.
// Any structural or encoding failure is ErrMalformedToken.
func DecodeClaims(tok string) (Claims, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return Claims{}, identity.ErrMalformedToken
	}
	payload, err := b64.DecodeString(parts[1])
	if err != nil {
		return Claims{}, identity.ErrMalformedToken
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, identity.ErrMalformedToken
	}
	return claims, nil
}
