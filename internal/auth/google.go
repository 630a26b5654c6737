package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"

	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

// ErrBadCredential means the supplied identity credential could not be
// decoded into a profile.
var ErrBadCredential = errors.New("invalid identity credential")

// DecodeGoogleCredential extracts the user profile from a Google Identity
// credential. The credential is issued and signed by the auth
// collaborator; it is decoded here without signature verification, the
// same trust stance the original client takes, since the profile only
// personalizes locally stored state.
func DecodeGoogleCredential(credential string) (models.UserProfile, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return models.UserProfile{}, ErrBadCredential
	}

	profile := models.UserProfile{
		ID:      stringClaim(claims, "sub"),
		Name:    stringClaim(claims, "name"),
		Email:   stringClaim(claims, "email"),
		Picture: stringClaim(claims, "picture"),
	}
	if profile.ID == "" && profile.Email == "" {
		return models.UserProfile{}, ErrBadCredential
	}
	if profile.ID == "" {
		profile.ID = profile.Email
	}
	return profile, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
