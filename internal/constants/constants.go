package constants

// Order lifecycle statuses.
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusProcessing     = "processing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// Payment methods.
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodCard   = "card"
	PaymentMethodUPI    = "upi"
	PaymentMethodWallet = "wallet"
)

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Queue and task names.
const (
	QueueDefault              = "default"
	TaskOrderStatusNotify     = "order:status_notify"
	TaskOrderDeliveryReminder = "order:delivery_reminder"
)

// Order defaults.
const (
	OrderNoPrefix              = "NM"
	OrderNoMaxAttempts         = 5
	DefaultExpectedDeliveryDay = 3
)
