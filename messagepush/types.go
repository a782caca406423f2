package messagepush

const (
	BizCodeBridgeStatus = "invarch_bridge_status"
	BizCodeNotification = "invarch_notification"
)

// Variant of a user notification
type Variant string

const (
	VariantSuccess = Variant("success")
	VariantError   = Variant("error")
)

// Notification is a short message shown to the user.
type Notification struct {
	Variant Variant `json:"variant"`
	Message string  `json:"message"`
}

// BridgeStatusUpdate is pushed on every status change of a bridge operation.
type BridgeStatusUpdate struct {
	OperationID string `json:"operationId"`
	Direction   string `json:"direction"`
	Account     string `json:"account"`
	Status      string `json:"status"`
	Message     string `json:"message"`
}

type PushMessage struct {
	BizCode       string `json:"bizCode"`
	WalletAddress string `json:"walletAddress"`
	RequestID     string `json:"requestId"`
	PushContent   string `json:"pushContent"`
	Time          int64  `json:"time"`
}
