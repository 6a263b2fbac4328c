package gacha

import (
	"errors"

	"github.com/xtding233/wishsim/internal/version"
)

var (
	ErrInvalidVersion   = version.ErrInvalidVersion
	ErrInvalidBanner    = errors.New("invalid banner")
	ErrPoolUnavailable  = errors.New("pool unavailable")
	ErrInvalidArguments = errors.New("invalid arguments")
)
