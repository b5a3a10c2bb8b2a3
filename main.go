package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-service/analytics"
	"storefront-service/catalog"
	"storefront-service/config"
	"storefront-service/consumers"
	"storefront-service/controllers"
	"storefront-service/datalayer"
	"storefront-service/middlewares"
	"storefront-service/rabbitmq"
	"storefront-service/stores"
)

func main() {
	cfg := config.LoadConfig()

	// Catalog: database-backed when configured, built-in otherwise.
	// A broken catalog database degrades to the built-in list.
	source := catalog.Static()
	if cfg.DBHost != "" {
		if dbSource, err := catalog.LoadFromDB(cfg); err != nil {
			log.Printf("Warning: catalog database unavailable, using built-in catalog: %v", err)
		} else {
			source = dbSource
		}
	}

	// Data layer: the in-process queue plus, when configured, the
	// RabbitMQ tag-management forwarder.
	queue := datalayer.NewQueue()
	sink := datalayer.Sink(queue)

	if cfg.RabbitMQURL != "" {
		fwd, err := rabbitmq.NewForwarder(cfg)
		if err != nil {
			log.Printf("Warning: tag-management forwarding disabled: %v", err)
		} else {
			defer fwd.Close()
			if err := fwd.SetupQueues(); err != nil {
				log.Fatalf("Failed to setup analytics queues: %v", err)
			}
			go consumers.StartAnalyticsConsumer(fwd.Channel, cfg)
			sink = datalayer.Fanout(queue, fwd)
		}
	}

	cart := stores.NewCart()
	checkout := stores.NewCheckout(cart, cfg)
	emitter := analytics.NewEmitter(sink, cart, checkout, cfg)

	controllers.Setup(cfg, source, cart, checkout, emitter)
	controllers.SetQueue(queue)

	r := gin.Default()

	r.Use(middlewares.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/products", controllers.ListProducts)
		api.GET("/products/:id", controllers.GetProduct)
		api.POST("/products/:id/select", controllers.SelectProduct)
		api.GET("/cart", controllers.GetCart)
		api.POST("/cart", controllers.AddToCart)
		api.GET("/checkout", controllers.GetCheckout)
		api.POST("/checkout/begin", controllers.BeginCheckout)
		api.POST("/checkout/shipping", controllers.SubmitShipping)
		api.GET("/payment", controllers.GetPayment)
		api.POST("/payment", controllers.SubmitPayment)
		api.GET("/confirmation", controllers.GetConfirmation)
		api.GET("/datalayer", controllers.GetDataLayer)
	}

	port := ":" + cfg.Port
	log.Printf("Storefront service starting on port %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
