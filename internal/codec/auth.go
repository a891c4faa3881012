package codec

import "github.com/kevgathuku/docue/internal/core/domain"

// DecodeAuth decodes the {token, user} envelope returned by login and
// signup. No token is ever surfaced from a payload that fails to decode.
func DecodeAuth(data []byte) (string, domain.User, error) {
	o, err := asObject(data, "auth")
	if err != nil {
		return "", domain.User{}, err
	}
	token, err := o.requireString("auth", "token")
	if err != nil {
		return "", domain.User{}, err
	}
	raw, ok := o["user"]
	if !ok {
		return "", domain.User{}, errExpected("user", "object")
	}
	user, err := decodeUser(raw, "user")
	if err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}

// DecodeSessionUser decodes the {user} envelope returned by the session
// probe.
func DecodeSessionUser(data []byte) (domain.User, error) {
	o, err := asObject(data, "session")
	if err != nil {
		return domain.User{}, err
	}
	raw, ok := o["user"]
	if !ok {
		return domain.User{}, errExpected("user", "object")
	}
	return decodeUser(raw, "user")
}
