package constants

// NSQ topics published by the payments service
const (
	TopicPaymentStatusChanged = "payment.status_changed"
	TopicPaymentDisputes      = "payment.disputes"
)
