package auth

import "errors"

var ErrInvalidToken = errors.New("invalid token")

type Config struct {
	Enabled  bool
	Issuer   string
	JWKSURL  string
	Audience string
}
