package messagepush

import (
	"sync"
	"time"

	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultDedupWindow = 5 * time.Second
	dedupCacheSize     = 256
)

// Notifier shows user notifications by pushing them to the message bus.
// A message equal to one shown within the dedup window is dropped.
type Notifier struct {
	producer KafkaProducer

	// lock makes the check and the insert of admit one step
	lock  sync.Mutex
	shown *expirable.LRU[string, struct{}]
}

// NewNotifier creates a notifier. producer may be nil, then notifications
// are only logged.
func NewNotifier(producer KafkaProducer, window time.Duration) *Notifier {
	if window <= 0 {
		window = defaultDedupWindow
	}
	return &Notifier{
		producer: producer,
		shown:    expirable.NewLRU[string, struct{}](dedupCacheSize, nil, window),
	}
}

// ShowNotification publishes n unless the same message was shown within
// the window. Errors are logged, never returned.
func (n *Notifier) ShowNotification(notification Notification) {
	if !n.admit(notification.Message) {
		log.Debugf("drop duplicated notification %q", notification.Message)
		return
	}
	log.Infof("notification [%s] %s", notification.Variant, notification.Message)
	if n.producer == nil {
		return
	}
	msg, err := newPushMessage(BizCodeNotification, "", notification)
	if err != nil {
		log.Errorf("build notification error: %v", err)
		return
	}
	if err := n.producer.Produce(msg); err != nil {
		log.Errorf("push notification error: %v", err)
	}
}

func (n *Notifier) admit(message string) bool {
	n.lock.Lock()
	defer n.lock.Unlock()
	if _, ok := n.shown.Get(message); ok {
		return false
	}
	n.shown.Add(message, struct{}{})
	return true
}
