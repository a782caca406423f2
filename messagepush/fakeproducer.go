package messagepush

import (
	"sync"

	"github.com/InvArch/invarch-bridge-service/log"
)

const (
	fakeMessageLimit = 100
)

type fakeProducer struct {
	lock           sync.Mutex
	defaultTopic   string
	defaultPushKey string
	messages       map[string][]string // Map from topic name to list of messages
}

func newFakeProducer(cfg Config) KafkaProducer {
	return &fakeProducer{
		defaultTopic:   cfg.Topic,
		defaultPushKey: cfg.PushKey,
		messages:       make(map[string][]string),
	}
}

func (p *fakeProducer) Produce(msg interface{}, optFns ...produceOptFunc) error {
	opts := &produceOptions{
		topic:   p.defaultTopic,
		pushKey: p.defaultPushKey,
	}
	for _, f := range optFns {
		f(opts)
	}

	msgString, err := convertMsgToString(msg)
	if err != nil {
		return err
	}

	p.lock.Lock()
	p.messages[opts.topic] = append(p.messages[opts.topic], msgString)
	// Keep the latest 100 messages only
	if len(p.messages[opts.topic]) > fakeMessageLimit {
		p.messages[opts.topic] = p.messages[opts.topic][1:]
	}
	p.lock.Unlock()
	log.Debugf("Produced to fake producer: topic[%v] msg[%v]", opts.topic, msgString)
	return nil
}

func (p *fakeProducer) PushBridgeStatus(update *BridgeStatusUpdate, optFns ...produceOptFunc) error {
	if update == nil {
		return nil
	}
	msg, err := newPushMessage(BizCodeBridgeStatus, update.Account, update)
	if err != nil {
		return err
	}
	return p.Produce(msg, optFns...)
}

func (p *fakeProducer) Close() error {
	return nil
}

// GetFakeMessages returns and clears the latest 100 messages of the topic
func (p *fakeProducer) GetFakeMessages(topic string) []string {
	p.lock.Lock()
	defer p.lock.Unlock()
	allMsg := p.messages[topic]
	p.messages[topic] = []string{}
	return allMsg
}
