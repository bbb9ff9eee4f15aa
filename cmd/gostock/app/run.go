package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/marcelokanu/gostock-orders/configs"
	"github.com/marcelokanu/gostock-orders/internal/adapter/cache"
	adapterhttp "github.com/marcelokanu/gostock-orders/internal/adapter/http"
	"github.com/marcelokanu/gostock-orders/internal/adapter/kafka"
	"github.com/marcelokanu/gostock-orders/internal/adapter/queue"
	"github.com/marcelokanu/gostock-orders/internal/adapter/repo"
	"github.com/marcelokanu/gostock-orders/internal/logging"
	"github.com/marcelokanu/gostock-orders/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.Init("gostock", cfg.App.LogFile)
	log.Info("starting up", "name", cfg.App.Name)

	// database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	// rabbitmq
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}
	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, err
	}

	// repos + use cases
	customerRepo := repo.NewMySQLCustomerRepo(db)
	productRepo := repo.NewMySQLProductRepo(db)
	orderRepo := repo.NewMySQLOrderRepo(db)
	orderCache := cache.NewRedisOrderCache(rdb, cfg.Redis.OrderTTL)

	placeUC := usecase.NewPlaceOrder(customerRepo, productRepo, orderRepo, producer)
	restockUC := usecase.NewRestock(productRepo)
	changePriceUC := usecase.NewChangePrice(productRepo)

	// inbound messaging
	if err := setupQueue(ch, cfg, restockUC); err != nil {
		return nil, nil, err
	}
	kafkaCancel, err := setupKafkaListener(cfg, changePriceUC)
	if err != nil {
		return nil, nil, err
	}

	// http
	oh := adapterhttp.NewOrderHandler(placeUC, orderRepo, orderCache)
	ph := adapterhttp.NewProductHandler(productRepo)
	router := adapterhttp.NewRouter(oh, ph)

	cleanup := func() {
		kafkaCancel()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func setupQueue(ch *amqp091.Channel, cfg configs.Config, restockUC *usecase.Restock) error {
	h := queue.NewRestockHandler(restockUC)

	router := queue.NewRouter(ch, queue.WithPrefetch(50))
	router.Register(cfg.Rabbit.ReplenishQ, queue.JSONHandler[usecase.StockReplenishedMsg]{
		HandleFunc: h.HandleReplenish,
	})
	return router.Start()
}

func setupKafkaListener(cfg configs.Config, changePriceUC *usecase.ChangePrice) (func(), error) {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return nil, err
	}

	log := logging.New("kafka")
	h := kafka.NewPriceChangedHandler(changePriceUC)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.PriceTopic}, h.Handle, log)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error("price consumer stopped", "err", err)
		}
	}()

	return func() {
		cancel()
		_ = grp.Close()
	}, nil
}
