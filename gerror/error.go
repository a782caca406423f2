package gerror

import "errors"

var (
	// ErrStorageNotFound is used when the object is not found in the storage
	ErrStorageNotFound = errors.New("not found in the storage")
	// ErrStorageNotRegister is used when the configured storage kind is unknown
	ErrStorageNotRegister = errors.New("not registered storage")
	// ErrMissingParams is used when a bridge operation is executed without all of its required fields
	ErrMissingParams = errors.New("missing required bridge parameters")
	// ErrUnsupportedLocation is used when a chain location cannot be bridged
	ErrUnsupportedLocation = errors.New("unsupported asset location")
	// ErrUnsupportedVersion is used when a location version cannot be encoded or decoded
	ErrUnsupportedVersion = errors.New("unsupported xcm version")
	// ErrOperationInProgress is used when an operation is executed while a previous submission is still in flight
	ErrOperationInProgress = errors.New("bridge operation already in progress")
	// ErrOperationNotFound is used when the operation id is not tracked by the server
	ErrOperationNotFound = errors.New("bridge operation not found")
	// ErrAssetNotFound is used when the asset id is not known by the asset registry
	ErrAssetNotFound = errors.New("asset not found in the registry")
	// ErrTransactionFailed is used when a finalized transaction was not successfully dispatched
	ErrTransactionFailed = errors.New("transaction failed")
	// ErrInvalidAccount is used when an account cannot be decoded into a 32 byte id
	ErrInvalidAccount = errors.New("invalid account")
	// ErrChainNotConnected is used when the chain client is used before being connected
	ErrChainNotConnected = errors.New("chain client not connected")
)
