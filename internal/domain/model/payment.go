package model

// GatewayStatus is the closed set of transaction statuses the payment gateway
// integration supports.
type GatewayStatus string

const (
	GatewayStatusPending    GatewayStatus = "pending"
	GatewayStatusAuthorize  GatewayStatus = "authorize"
	GatewayStatusCapture    GatewayStatus = "capture"
	GatewayStatusSettlement GatewayStatus = "settlement"
	GatewayStatusDeny       GatewayStatus = "deny"
	GatewayStatusCancel     GatewayStatus = "cancel"
	GatewayStatusExpire     GatewayStatus = "expire"
	GatewayStatusFailure    GatewayStatus = "failure"
)

// gatewayTransitions maps every supported gateway status to an order status
// target. Statuses that keep the order pending map to an empty target.
var gatewayTransitions = map[GatewayStatus]OrderStatus{
	GatewayStatusPending:    "",
	GatewayStatusAuthorize:  "",
	GatewayStatusCapture:    OrderStatusSettlement,
	GatewayStatusSettlement: OrderStatusSettlement,
	GatewayStatusDeny:       OrderStatusDeny,
	GatewayStatusCancel:     OrderStatusCanceled,
	GatewayStatusExpire:     OrderStatusExpire,
	GatewayStatusFailure:    OrderStatusFailure,
}

// MapGatewayStatus resolves a gateway status to its order status target.
// The second result is false when the status keeps the order pending, the
// third is false when the status is outside the supported vocabulary.
func MapGatewayStatus(s GatewayStatus) (OrderStatus, bool, bool) {
	target, known := gatewayTransitions[s]
	if !known {
		return "", false, false
	}
	return target, target != "", true
}

// PaymentUpdate is a gateway-reported transaction state for one order.
type PaymentUpdate struct {
	OrderRef      string
	Status        GatewayStatus
	PaymentMethod string
}
