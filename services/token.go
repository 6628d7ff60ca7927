package services

import (
	"strconv"
	"strings"
)

// TokenPrefix marks a string as an API token. Tokens are reversible
// key-value encodings, not signed credentials: anyone who knows the format
// can forge one. Stands in for a real JWT in this sample.
const TokenPrefix = "FAKE_ENCODE::"

// EncodeToken serializes a flat payload as "<prefix>key##value,key##value".
func EncodeToken(payload map[string]string) string {
	pairs := make([]string, 0, len(payload))
	for k, v := range payload {
		pairs = append(pairs, k+"##"+v)
	}
	return TokenPrefix + strings.Join(pairs, ",")
}

// DecodeToken reverses EncodeToken. It fails closed: any input without the
// prefix decodes to an empty payload, and malformed pairs are skipped, so a
// bare prefix also decodes to an empty payload.
func DecodeToken(token string) map[string]string {
	payload := map[string]string{}
	if !strings.Contains(token, TokenPrefix) {
		return payload
	}

	body := strings.SplitN(token, TokenPrefix, 2)[1]
	for _, pair := range strings.Split(body, ",") {
		k, v, ok := strings.Cut(pair, "##")
		if !ok {
			continue
		}
		payload[k] = v
	}
	return payload
}

// CreateUserToken issues the token returned on registration and login.
func CreateUserToken(userID uint) string {
	return EncodeToken(map[string]string{
		"user_id": strconv.FormatUint(uint64(userID), 10),
	})
}
