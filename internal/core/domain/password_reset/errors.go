package passwordreset

import (
	"errors"
	"fmt"
)

// ErrForbidden groups every reason a reset link may be refused. Callers must
// not tell the reasons apart in anything shown to the user.
var ErrForbidden = errors.New("password reset is forbidden")

var (
	ErrMissingToken               = fmt.Errorf("%w: missing token", ErrForbidden)
	ErrPasswordResetDoesNotExist  = fmt.Errorf("%w: password reset does not exist", ErrForbidden)
	ErrPasswordResetExpired       = fmt.Errorf("%w: password reset expired", ErrForbidden)
	ErrPasswordResetUserIsMissing = fmt.Errorf("%w: user does not exist", ErrForbidden)
)
