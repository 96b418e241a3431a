package worker

import (
	"context"
	"encoding/json"

	"github.com/abhinandan-jain01/NearMart/internal/logger"
	"github.com/abhinandan-jain01/NearMart/internal/provider"
	"github.com/abhinandan-jain01/NearMart/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles background tasks with the shared container.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the task consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register binds the task handlers on the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
	mux.HandleFunc(queue.TaskOrderDeliveryReminder, c.handleOrderDeliveryReminder)
}

// handleOrderStatusNotify tells the customer about a status change. Delivery
// channels (mail, push) hang off this handler; for now the event is logged.
func (c *Consumer) handleOrderStatusNotify(ctx context.Context, t *asynq.Task) error {
	var payload queue.OrderStatusNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_notify_bad_payload", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_notify_skip", "reason", "missing order id")
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_notify_load_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_notify_skip", "order_id", payload.OrderID, "reason", "order not found")
		return nil
	}

	customer, err := c.CustomerRepo.GetByID(order.CustomerID)
	if err != nil {
		logger.Warnw("worker_order_status_notify_customer_failed", "order_id", order.ID, "customer_id", order.CustomerID, "error", err)
		return err
	}
	if customer == nil {
		logger.Debugw("worker_order_status_notify_skip", "order_id", order.ID, "reason", "customer not found")
		return nil
	}

	logger.Infow("worker_order_status_notify",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"status", payload.Status,
		"customer_email", customer.Email,
	)
	return nil
}

// handleOrderDeliveryReminder nudges the retailer when an order is still open
// near its expected delivery time.
func (c *Consumer) handleOrderDeliveryReminder(ctx context.Context, t *asynq.Task) error {
	var payload queue.OrderDeliveryReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_delivery_reminder_bad_payload", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_delivery_reminder_skip", "reason", "missing order id")
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_delivery_reminder_load_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_delivery_reminder_skip", "order_id", payload.OrderID, "reason", "order not found")
		return nil
	}
	if order.IsTerminal() {
		logger.Debugw("worker_order_delivery_reminder_skip", "order_id", order.ID, "status", order.Status)
		return nil
	}

	retailer, err := c.RetailerRepo.GetByID(order.RetailerID)
	if err != nil {
		logger.Warnw("worker_order_delivery_reminder_retailer_failed", "order_id", order.ID, "retailer_id", order.RetailerID, "error", err)
		return err
	}
	if retailer == nil {
		logger.Debugw("worker_order_delivery_reminder_skip", "order_id", order.ID, "reason", "retailer not found")
		return nil
	}

	logger.Infow("worker_order_delivery_reminder",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"status", order.Status,
		"retailer_email", retailer.Email,
	)
	return nil
}
