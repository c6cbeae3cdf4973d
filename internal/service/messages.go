package service

import (
	"errors"

	"cakestory-client/internal/client"
)

// User-facing submission failure messages. Only the order submission
// boundary translates errors into copy; the pricing engine and the
// status poller never surface errors at all.
const (
	msgInsufficientBalance = "Số dư ví không đủ để thanh toán đơn hàng này. Vui lòng nạp thêm tiền."
	msgValidation          = "Thông tin đơn hàng không hợp lệ. Vui lòng kiểm tra lại."
	msgNotFound            = "Không tìm thấy sản phẩm hoặc cửa hàng. Vui lòng thử lại."
	msgUnauthorized        = "Phiên đăng nhập đã hết hạn. Vui lòng đăng nhập lại."
	msgDeliveryTooSoon     = "Thời gian giao hàng quá sớm so với thời gian chuẩn bị của cửa hàng."
	msgMissingSelection    = "Vui lòng chọn kích thước và thời gian giao hàng."
	msgNetwork             = "Không thể kết nối đến máy chủ. Vui lòng kiểm tra kết nối mạng."
	msgFallback            = "Đặt hàng thất bại. Vui lòng thử lại sau."
)

// UserMessage maps a submission error to the message shown in the
// order modal. Unrecognized errors get the generic fallback rather
// than leaking internals to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, client.ErrInsufficientBalance):
		return msgInsufficientBalance
	case errors.Is(err, client.ErrValidation):
		return msgValidation
	case errors.Is(err, client.ErrNotFound):
		return msgNotFound
	case errors.Is(err, client.ErrUnauthorized):
		return msgUnauthorized
	case errors.Is(err, ErrDeliveryTooSoon):
		return msgDeliveryTooSoon
	case errors.Is(err, ErrNoSizeSelected),
		errors.Is(err, ErrUnknownSize),
		errors.Is(err, ErrMissingDelivery),
		errors.Is(err, ErrInvalidQuantity):
		return msgMissingSelection
	case isNetworkErr(err):
		return msgNetwork
	default:
		return msgFallback
	}
}
