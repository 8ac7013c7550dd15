package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/configs"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/app/router"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/db"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/kafka/producer"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/logger"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/otel"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/pubsub"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/redis"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/utils/worker"
)

func main() {

	err := configs.LoadEnv()
	if err != nil {
		logger.Debug("Error loading .env file: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownOtel, err := otel.Setup(ctx, configs.SERVICE_NAME, configs.OTEL_URL)
	if err != nil {
		logger.Error(ctx, "Error setting up OTLP: %v", err)
	}

	mdb, dbErr := db.NewMongoDB()
	if dbErr != nil {
		logger.Panic(ctx, "Error connecting to MongoDB: %v", dbErr)
	}
	db.MDB = mdb
	defer mdb.Close()

	db.CreateDbTtlIfNotExists()

	kafkaProducer, err := producer.NewKafkaProducer(configs.KAFKA_SERVER, configs.KAFKA_TOPIC)
	if err != nil {
		logger.Error(ctx, "failed to create Kafka Producer error: %v", err)
	}
	logger.Info(ctx, "Kafka Producer Created")
	producer.KafkaProducer = kafkaProducer
	defer kafkaProducer.Close()

	pubsubPublisher, err := pubsub.NewPubSubPublisher(ctx, configs.PROJECT_ID)
	if err != nil {
		logger.Error(ctx, "Failed to create Pub/Sub Publisher: %v", err)
	}
	defer pubsubPublisher.Close()
	logger.Info(ctx, "Pub/Sub Publisher Created")

	numberOfWorkers, er := strconv.Atoi(configs.WORKER_POOL)
	if er != nil {
		logger.Error(ctx, er)
	}

	redisClient, err := redis.ConnectToRedis(ctx, configs.GetRedisConfig(), nil)
	if err != nil {
		logger.Panic(ctx, "Failed to connect to Redis: %v", err)
	}

	workerPool := worker.NewWorkerPool(numberOfWorkers)
	defer workerPool.Stop()

	r, sweeper := router.SetupRouter(workerPool, redisClient.Client, pubsubPublisher, kafkaProducer)

	go sweeper.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + configs.SERVER_PORT,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "Shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "Server shutdown failed: %v", err)
	}
	if shutdownOtel != nil {
		if err := shutdownOtel(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "OTLP shutdown failed: %v", err)
		}
	}
	if err := redis.Disconnect(redisClient.Client); err != nil {
		logger.Error(shutdownCtx, "Redis disconnect failed: %v", err)
	}
}
