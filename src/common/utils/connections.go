package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-stomp/stomp/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

func NewRabbitConnection() (*amqp.Connection, *amqp.Channel, error) {
	mqUser := os.Getenv("MQ_USER")
	mqPassword := os.Getenv("MQ_PASSWORD")
	mqHost := os.Getenv("MQ_HOST")
	mqPort := os.Getenv("MQ_PORT")

	config := amqp.Config{
		Heartbeat: 60 * time.Second,
		Locale:    "en_US",
	}

	connection, err := amqp.DialConfig(fmt.Sprintf("amqp://%s:%s@%s:%s/", mqUser, mqPassword, mqHost, mqPort), config)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	channel, err := connection.Channel()
	if err != nil {
		connection.Close()
		return nil, nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	return connection, channel, nil
}

func NewStompConnection() (*stomp.Conn, error) {
	endpoint := os.Getenv("STOMP_ENDPOINT")
	username := os.Getenv("STOMP_USERNAME")
	password := os.Getenv("STOMP_PASSWORD")

	if endpoint == "" {
		endpoint = "rabbitmq:61613"
	}

	conn, err := stomp.Dial("tcp", endpoint,
		stomp.ConnOpt.Login(username, password),
		stomp.ConnOpt.HeartBeat(60*time.Second, 60*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("dial stomp %s: %w", endpoint, err)
	}

	return conn, nil
}

func NewRedisClient() *redis.Client {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		// default to the redis service in the cluster
		redisAddr = "redis:6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   0,
	})

	return rdb
}

func NewPostgresConnection(ctx context.Context) (*pgxpool.Pool, error) {
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	dbname := os.Getenv("POSTGRES_DB")

	dbConnectionString := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname,
	)

	connection, err := pgxpool.New(ctx, dbConnectionString)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return connection, nil
}
