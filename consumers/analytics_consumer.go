package consumers

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"storefront-service/config"
	"storefront-service/datalayer"
)

// StartAnalyticsConsumer drains the tag-management queue, mirroring
// what the downstream tooling does with the in-process data layer.
func StartAnalyticsConsumer(ch *amqp.Channel, cfg *config.Config) {
	msgs, err := ch.Consume(
		cfg.AnalyticsQueue,
		"storefront-service", // consumer tag
		false,                // auto-ack
		false,                // exclusive
		false,                // no-local
		false,                // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("Failed to register analytics consumer: %v", err)
	}

	go func() {
		for msg := range msgs {
			processRecordMessage(msg)
		}
	}()

	dlqMsgs, err := ch.Consume(
		cfg.DeadLetterQueue,
		"storefront-service-dlq", // consumer tag
		false,                    // auto-ack
		false,                    // exclusive
		false,                    // no-local
		false,                    // no-wait
		nil,
	)
	if err != nil {
		log.Printf("Failed to register DLQ consumer: %v", err)
		return
	}

	go func() {
		for msg := range dlqMsgs {
			processDeadLetterMessage(msg)
		}
	}()
}

func processRecordMessage(msg amqp.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in record processing: %v", r)
		}
	}()

	var record datalayer.Record
	if err := json.Unmarshal(msg.Body, &record); err != nil {
		log.Printf("Invalid record payload: %v", err)
		err := msg.Nack(false, false)
		if err != nil {
			return
		}
		return
	}

	event, _ := record["event"].(string)
	if event == "" {
		// Clearing record; nothing to dispatch.
		err := msg.Ack(false)
		if err != nil {
			return
		}
		return
	}

	switch event {
	case "view_item_list", "select_item", "view_item":
		handleBrowseEvent(event, record)
	case "add_to_cart", "begin_checkout":
		handleCartEvent(event, record)
	case "add_shipping_info", "add_payment_info", "purchase":
		handleCheckoutEvent(event, record)
	case "purchase_completed":
		handleOrderCompleted(record)
	default:
		log.Printf("Unknown event type: %s", event)
	}

	err := msg.Ack(false)
	if err != nil {
		return
	}
}

func processDeadLetterMessage(msg amqp.Delivery) {
	log.Printf("Received dead letter: %s", msg.Body)
	err := msg.Ack(false)
	if err != nil {
		return
	}
}

func handleBrowseEvent(event string, record datalayer.Record) {
	log.Printf("Funnel browse stage: %s", event)
}

func handleCartEvent(event string, record datalayer.Record) {
	if ecommerce, ok := record["ecommerce"].(map[string]interface{}); ok {
		log.Printf("Funnel cart stage: %s value=%v", event, ecommerce["value"])
		return
	}
	log.Printf("Funnel cart stage: %s", event)
}

func handleCheckoutEvent(event string, record datalayer.Record) {
	if ecommerce, ok := record["ecommerce"].(map[string]interface{}); ok {
		log.Printf("Funnel checkout stage: %s value=%v", event, ecommerce["value"])
		return
	}
	log.Printf("Funnel checkout stage: %s", event)
}

func handleOrderCompleted(record datalayer.Record) {
	details, ok := record["orderDetails"].(map[string]interface{})
	if !ok {
		log.Printf("purchase_completed record without orderDetails")
		return
	}
	log.Printf("Order completed: id=%v total=%v items=%v",
		details["order_id"], details["order_total"], details["items_count"])
}
