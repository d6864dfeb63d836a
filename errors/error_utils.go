// Package errors provides utilities for categorizing and handling errors in headerproof.
package errors

// Exit codes reported by the command line host for each rejection class.
const (
	ExitCodeOK                 = 0
	ExitCodeError              = 1
	ExitCodeMalformedHeader    = 2
	ExitCodeProofOfWorkInvalid = 3
)

// IsMalformedHeaderError reports whether err rejects the header bytes
// themselves: short input or an unusable compact target.
func IsMalformedHeaderError(err error) bool {
	if err == nil {
		return false
	}

	return Is(err, ErrMalformedHeader)
}

// IsProofOfWorkError reports whether err is a hash-above-target rejection.
func IsProofOfWorkError(err error) bool {
	if err == nil {
		return false
	}

	return Is(err, ErrProofOfWorkInvalid)
}

// IsRejection reports whether err is a consensus rejection of the header,
// as opposed to an I/O or configuration failure of the host.
func IsRejection(err error) bool {
	return IsMalformedHeaderError(err) || IsProofOfWorkError(err)
}

// ExitCode maps an error to the process exit status used by the host.
//
// Parameters:
//   - err: Error returned by the verification pipeline, may be nil
//
// Returns:
//   - int: ExitCodeOK for nil, a rejection specific code, or ExitCodeError
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeOK
	case IsMalformedHeaderError(err):
		return ExitCodeMalformedHeader
	case IsProofOfWorkError(err):
		return ExitCodeProofOfWorkInvalid
	default:
		return ExitCodeError
	}
}
