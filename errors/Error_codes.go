package errors

import "strconv"

// ERR is the error code carried by every *Error.
type ERR int32

//nolint:revive,stylecheck // upper-case codes match the names used in logs and exit status mapping
const (
	ERR_UNKNOWN               ERR = 0
	ERR_INVALID_ARGUMENT      ERR = 1
	ERR_PROCESSING            ERR = 4
	ERR_CONFIGURATION         ERR = 5
	ERR_MALFORMED_HEADER      ERR = 20
	ERR_PROOF_OF_WORK_INVALID ERR = 21
)

var ERR_name = map[int32]string{
	0:  "UNKNOWN",
	1:  "INVALID_ARGUMENT",
	4:  "PROCESSING",
	5:  "CONFIGURATION",
	20: "MALFORMED_HEADER",
	21: "PROOF_OF_WORK_INVALID",
}

var ERR_value = map[string]int32{
	"UNKNOWN":               0,
	"INVALID_ARGUMENT":      1,
	"PROCESSING":            4,
	"CONFIGURATION":         5,
	"MALFORMED_HEADER":      20,
	"PROOF_OF_WORK_INVALID": 21,
}

// Enum returns the symbolic name of the code.
func (x ERR) Enum() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return "ERR(" + strconv.Itoa(int(x)) + ")"
}

func (x ERR) String() string {
	return x.Enum()
}
