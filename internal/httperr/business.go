package httperr

import "errors"

// BusinessError is the domain-level failure a usecase returns: a bare
// machine code ("slot_conflict", "insufficient_points", ...), no HTTP
// status, no prose. Handlers translate codes onto the HTTP taxonomy at
// the edge; see writeBookingErr in the handlers package.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness reports whether err carries exactly the given code.
// Callers branch on codes, never on error strings.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
