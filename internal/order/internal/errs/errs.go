package errs

var (
	SystemError        = ErrorCode{Code: 512001, Msg: "系统错误"}
	OrderNotFound      = ErrorCode{Code: 512002, Msg: "订单不存在"}
	InvalidOrderStatus = ErrorCode{Code: 512003, Msg: "订单状态非法"}
	IncompleteOrder    = ErrorCode{Code: 512004, Msg: "订单信息不完整"}
	InvalidTotalAmount = ErrorCode{Code: 512005, Msg: "订单总价校验失败"}
	InvalidOrderItem   = ErrorCode{Code: 512006, Msg: "商品信息非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
