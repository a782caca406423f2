package coinmiddleware

// MessageBody is the envelope of a price message
type MessageBody struct {
	Data  *MessageData `json:"data"`
	Topic string       `json:"topic"`
}

type MessageData struct {
	ID        string       `json:"id"`
	PriceList []*PriceInfo `json:"priceList"`
}

// PriceInfo is one token price, only the fields the portal shows are decoded
type PriceInfo struct {
	CoinID         int64   `json:"coinId"`
	Symbol         string  `json:"symbol"`
	FullName       string  `json:"fullName"`
	Chain          string  `json:"chain"`
	Price          float64 `json:"price"`
	PriceStatus    int     `json:"priceStatus"`
	Timestamp      int64   `json:"timestamp"`
	PriceChange24H float64 `json:"priceChange24H"`
}
