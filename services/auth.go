package services

import (
	"strconv"

	"github.com/sato4sk/items-api/crud"
	"github.com/sato4sk/items-api/models"
)

// VerifyPassword reports whether password matches the stored value. The
// storage scheme is plain concatenation with crud.FakeHashSuffix; there is
// no hashing and no timing-safe comparison.
func VerifyPassword(storedHash, password string) bool {
	return password+crud.FakeHashSuffix == storedHash
}

// AuthenticateUser resolves an email/password pair to a user. Returns
// (nil, nil) for an unknown email or a wrong password.
func AuthenticateUser(store *crud.Store, email, password string) (*models.User, error) {
	user, err := store.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !VerifyPassword(user.HashedPassword, password) {
		return nil, nil
	}
	return user, nil
}

// AuthenticateUserByToken resolves a token to the user it names. Returns
// (nil, nil) when the token is malformed, carries no user_id, or names a
// user that does not exist.
func AuthenticateUserByToken(store *crud.Store, token string) (*models.User, error) {
	payload := DecodeToken(token)
	raw, ok := payload["user_id"]
	if !ok {
		return nil, nil
	}

	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, nil
	}
	return store.GetUser(uint(userID))
}
