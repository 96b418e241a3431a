package queue

import (
	"encoding/json"

	"github.com/abhinandan-jain01/NearMart/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusNotify notifies the customer about an order status change.
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
	// TaskOrderDeliveryReminder reminds the retailer near the expected delivery date.
	TaskOrderDeliveryReminder = constants.TaskOrderDeliveryReminder
)

// OrderStatusNotifyPayload carries the order status notification task.
type OrderStatusNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// OrderDeliveryReminderPayload carries the delivery reminder task.
type OrderDeliveryReminderPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderStatusNotifyTask builds the status notification task.
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotify, body), nil
}

// NewOrderDeliveryReminderTask builds the delivery reminder task.
func NewOrderDeliveryReminderTask(payload OrderDeliveryReminderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderDeliveryReminder, body), nil
}
