package usecase

// Published on RabbitMQ after a successful commit.
type OrderPlacedMsg struct {
	OrderID    string         `json:"orderId"`
	CustomerID string         `json:"customerId"`
	TotalCents int64          `json:"totalCents"`
	Items      []OrderItemMsg `json:"items"`
}

type OrderItemMsg struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Consumed from RabbitMQ; sent by the warehouse when stock arrives.
type StockReplenishedMsg struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Consumed from Kafka; sent by the catalog service that owns pricing.
type PriceChangedMsg struct {
	ProductID  string `json:"productId"`
	PriceCents int64  `json:"priceCents"`
}
