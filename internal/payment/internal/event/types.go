package event

const paymentEvents = "payment_events"

// PaymentEvent 支付结果事件, 订单模块消费它作为对账补偿
type PaymentEvent struct {
	OrderID int64  `json:"orderID"`
	OrderSN string `json:"orderSN"`
	PayerID int64  `json:"payerID"`
	TxnID   string `json:"txnID"`
	Status  string `json:"status"`
	Amount  int64  `json:"amount"`
	PaidAt  int64  `json:"paidAt"`
}
