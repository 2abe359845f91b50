package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/eliteshop/storefront/internal/cache"
	"github.com/eliteshop/storefront/internal/config"
	"github.com/eliteshop/storefront/internal/database"
	"github.com/eliteshop/storefront/internal/discovery"
	"github.com/eliteshop/storefront/internal/handlers"
	"github.com/eliteshop/storefront/internal/messaging"
	"github.com/eliteshop/storefront/internal/publisher"
	"github.com/eliteshop/storefront/internal/service"
	"github.com/eliteshop/storefront/internal/store"
)

const (
	serviceName = "storefront-api"
	serviceID   = "storefront-api-1"
)

func main() {
	cfg := config.Load()

	// Pick the storage backend: MongoDB when configured and reachable,
	// otherwise the volatile in-memory store with the demo catalog.
	var (
		productStore store.ProductStore
		orderStore   store.OrderStore
		backend      string
	)

	if cfg.MongoURI != "" {
		db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Printf("⚠️ MongoDB unavailable, falling back to in-memory storage: %v", err)
		} else {
			defer db.Disconnect()
			productStore = store.NewMongoProductStore(db.Products())
			orderStore = store.NewMongoOrderStore(db.Orders())
			backend = "MongoDB"
		}
	} else {
		log.Println("No MongoDB URI provided, using in-memory storage")
	}

	if productStore == nil {
		memProducts := store.NewMemoryProductStore()
		memProducts.Seed(store.SampleProducts())
		productStore = memProducts
		orderStore = store.NewMemoryOrderStore()
		backend = "In-Memory"
	}

	// Optional Redis cache over product reads.
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			log.Printf("⚠️ Redis unavailable, serving uncached: %v", err)
		} else {
			defer redisCache.Close()
			productStore = store.NewCachedProductStore(productStore, redisCache)
		}
	}

	// Optional RabbitMQ order events.
	var eventPublisher service.EventPublisher
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := messaging.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("⚠️ RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			defer rabbitMQ.Close()
			pub, err := publisher.NewOrderPublisher(rabbitMQ)
			if err != nil {
				log.Printf("⚠️ Failed to set up order publisher: %v", err)
			} else {
				eventPublisher = pub
			}
		}
	}

	orderService := service.NewOrderService(productStore, orderStore, eventPublisher)

	// Optional Consul registration with deregistration on shutdown.
	if cfg.ConsulAddr != "" {
		consul, err := discovery.NewConsulClient(cfg.ConsulAddr)
		if err != nil {
			log.Printf("⚠️ Consul unavailable, skipping registration: %v", err)
		} else {
			port, _ := strconv.Atoi(cfg.Port)
			err := consul.Register(discovery.ServiceConfig{
				Name: serviceName,
				ID:   serviceID,
				Port: port,
				Tags: []string{"api", "storefront"},
			})
			if err != nil {
				log.Printf("⚠️ Failed to register with Consul: %v", err)
			} else {
				go func() {
					sigChan := make(chan os.Signal, 1)
					signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
					<-sigChan
					log.Println("Shutting down...")
					consul.Deregister(serviceID)
					os.Exit(0)
				}()
			}
		}
	}

	router := handlers.NewRouter(productStore, orderService, orderStore, backend)

	log.Printf("🚀 %s starting on http://localhost:%s (storage: %s)", serviceName, cfg.Port, backend)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
