package bridgeop

const (
	// StatusPending means the transfer was submitted and is not final yet
	StatusPending = Status("pending")

	// StatusSuccess means the transfer was finalized
	StatusSuccess = Status("success")

	// StatusError means the submission failed or the extrinsic was not
	// executed successfully
	StatusError = Status("error")
)

// Status of a bridge operation as shown to the user
type Status string

// String returns a string representation of the status
func (s Status) String() string {
	return string(s)
}

// StatusChange is emitted on every status transition of an operation.
type StatusChange struct {
	Status  Status      `json:"status"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Messages attached to status changes.
const (
	MsgSubmitted         = "Transaction submitted"
	MsgInProgress        = "Transaction in progress"
	MsgTransactionFailed = "Transaction failed"
	MsgBridgeInSuccess   = "Assets bridged from Asset Hub"
	MsgBridgeOutSuccess  = "Assets bridged to Asset Hub"
)
