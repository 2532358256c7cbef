package bridge

import "errors"

// ErrNoRouteFound is returned once route resolution retries are exhausted
// without the provider offering a single candidate route.
var ErrNoRouteFound = errors.New("no route found")

// ValidationError rejects a malformed or out-of-policy bridge request. The
// code is stable and client-visible.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrMissingChainID     = &ValidationError{Code: "MissingChainId", Message: "destination chain id is required"}
	ErrInvalidChainID     = &ValidationError{Code: "InvalidChainId", Message: "destination chain id is not supported"}
	ErrMissingAmount      = &ValidationError{Code: "MissingAmount", Message: "amount must be a positive integer in base units"}
	ErrMissingAsset       = &ValidationError{Code: "MissingAsset", Message: "asset is required"}
	ErrInvalidAsset       = &ValidationError{Code: "InvalidAsset", Message: "asset is not supported on the requested chains"}
	ErrMissingAddress     = &ValidationError{Code: "MissingAddress", Message: "destination address must be a 0x-prefixed chain address"}
	ErrSlippageOutOfRange = &ValidationError{Code: "SlippageOutOfRange", Message: "slippage tolerance is out of the allowed range"}
)
