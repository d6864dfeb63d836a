package errors

var (
	ErrInvalidArgument    = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrProcessing         = New(ERR_PROCESSING, "error processing")
	ErrConfiguration      = New(ERR_CONFIGURATION, "configuration error")
	ErrMalformedHeader    = New(ERR_MALFORMED_HEADER, "malformed block header")
	ErrProofOfWorkInvalid = New(ERR_PROOF_OF_WORK_INVALID, "block hash does not meet target")
)

// errors initialization functions

func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewMalformedHeaderError(message string, params ...interface{}) error {
	return New(ERR_MALFORMED_HEADER, message, params...)
}
func NewProofOfWorkInvalidError(message string, params ...interface{}) error {
	return New(ERR_PROOF_OF_WORK_INVALID, message, params...)
}
