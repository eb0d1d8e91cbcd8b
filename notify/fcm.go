package notify

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/shopspring/decimal"
)

// TopicPrefix is followed by the owner id. Clients subscribe to their own topic.
const TopicPrefix = "budget-alerts-"

// FCMNotifier sends alerts through Firebase Cloud Messaging
type FCMNotifier struct {
	client *messaging.Client
}

func NewFCMNotifier(ctx context.Context, app *firebase.App) (*FCMNotifier, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("open messaging client: %w", err)
	}
	return &FCMNotifier{client: client}, nil
}

func (n *FCMNotifier) NotifyBudgetThreshold(ctx context.Context, ownerID, categoryName string, amount, spent decimal.Decimal, percentage float64) error {
	msg := budgetMessage(ownerID, categoryName, amount, spent, percentage)
	id, err := n.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send budget alert to %s: %w", msg.Topic, err)
	}
	log.Printf("Sent budget alert %s to %s", id, msg.Topic)
	return nil
}

func budgetMessage(ownerID, categoryName string, amount, spent decimal.Decimal, percentage float64) *messaging.Message {
	title, body := alertText(categoryName, amount, spent, percentage)
	return &messaging.Message{
		Topic: TopicPrefix + ownerID,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"type":       "budget_threshold",
			"category":   categoryName,
			"amount":     amount.String(),
			"spent":      spent.String(),
			"percentage": fmt.Sprintf("%.4f", percentage),
		},
	}
}
