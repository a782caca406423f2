package coinmiddleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

const (
	maxRetries   = 5
	retryBackoff = 3 * time.Second
)

var errInvalidMessage = errors.New("invalid price message")

// PriceUpdater receives the decoded prices.
type PriceUpdater interface {
	UpdatePrices(ctx context.Context, prices []*models.TokenPrice) error
}

// MessageHandler implements sarama.ConsumerGroupHandler, handles the price messages from kafka and updates the state
type MessageHandler struct {
	updater PriceUpdater
	backoff time.Duration
}

func NewMessageHandler(updater PriceUpdater) *MessageHandler {
	return &MessageHandler{updater: updater, backoff: retryBackoff}
}

func (h *MessageHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *MessageHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *MessageHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				log.Info("message channel was closed")
				return nil
			}
			log.Infof("message received topic[%v] partition[%v] offset[%v]", message.Topic, message.Partition, message.Offset)

			// Retry for 5 times, if still fails, ignore this message
			for i := 0; i < maxRetries; i++ {
				err := h.handleMessage(session.Context(), message)
				if err == nil {
					break
				}
				log.Errorf("handle kafka message error[%v] retryCnt[%v]", err, i)
				if errors.Is(err, errInvalidMessage) {
					break
				}
				time.Sleep(h.backoff)
			}
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *MessageHandler) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	body := &MessageBody{}
	err := json.Unmarshal(message.Value, body)
	if err != nil {
		return errors.Wrapf(errInvalidMessage, "unmarshal message body error: %v", err)
	}

	if body.Data == nil {
		return errors.Wrap(errInvalidMessage, "message data is nil")
	}
	return h.updater.UpdatePrices(ctx, convertPriceList(body.Data.PriceList))
}

func convertPriceList(priceList []*PriceInfo) []*models.TokenPrice {
	var result []*models.TokenPrice
	for _, price := range priceList {
		if price == nil || price.Symbol == "" {
			continue
		}
		result = append(result, &models.TokenPrice{
			Symbol: price.Symbol,
			Price:  price.Price,
			Time:   price.Timestamp,
		})
	}
	return result
}
