package messagepush

import (
	"encoding/json"
	"time"

	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/utils"
	"github.com/pkg/errors"
)

func convertMsgToString(msg interface{}) (string, error) {
	var msgString string
	switch v := msg.(type) {
	case string:
		// If message is a string, just send it
		msgString = v
	default:
		// If message is an object, encode to json
		b, err := json.Marshal(msg)
		if err != nil {
			log.Errorf("msg cannot be encoded to json: msg[%v] err[%v]", msg, err)
			return "", errors.Wrap(err, "kafka produce: JSON marshal error")
		}
		msgString = string(b)
	}
	return msgString, nil
}

func newPushMessage(bizCode, account string, content interface{}) (*PushMessage, error) {
	b, err := json.Marshal(content)
	if err != nil {
		return nil, errors.Wrap(err, "json marshal error")
	}
	return &PushMessage{
		BizCode:       bizCode,
		WalletAddress: account,
		RequestID:     utils.GenerateTraceID(),
		PushContent:   string(b),
		Time:          time.Now().UnixMilli(),
	}, nil
}
