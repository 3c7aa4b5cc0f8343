package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jack-barr3tt/erail-engine/src/common/data"
	"github.com/jack-barr3tt/erail-engine/src/common/events"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
	"github.com/jack-barr3tt/erail-engine/src/common/utils"
	"github.com/jack-barr3tt/erail-engine/src/lookup-consumer/listener"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type lookupArchive interface {
	SaveLookup(ctx context.Context, event types.LookupEvent) error
}

func processLookup(ctx context.Context, archive lookupArchive, logger *zap.SugaredLogger, body []byte) error {
	event, err := events.Decode(body)
	if err != nil {
		return err
	}

	if err := archive.SaveLookup(ctx, event); err != nil {
		return err
	}

	logger.Infow("archived lookup", "id", event.ID, "train_no", event.Train.TrainNo, "stops", len(event.Stops))
	return nil
}

func main() {
	utils.InitLogger()
	defer utils.SyncLogger()
	logger := utils.GetLogger()

	cfg, err := utils.LoadConfig()
	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	if cfg.EventsBroker == "" {
		logger.Fatalw("EVENTS_BROKER must be set for the lookup consumer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := utils.NewPostgresConnection(ctx)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	rdb := utils.NewRedisClient()

	archive := data.NewDataClient(db, rdb, logger)
	if err := archive.EnsureSchema(ctx); err != nil {
		logger.Fatalw("failed to prepare database", "error", err)
	}

	var wg sync.WaitGroup
	l := listener.NewListener(ctx, &wg,
		func(ctx context.Context, body []byte) error {
			return processLookup(ctx, archive, logger, body)
		},
		func(err error) {
			logger.Warnw("error processing lookup event", "error", err)
		},
	)

	var closers []func() error
	closers = append(closers, rdb.Close)

	switch cfg.EventsBroker {
	case events.BrokerAMQP:
		conn, channel, err := utils.NewRabbitConnection()
		if err != nil {
			logger.Fatalw("failed to connect to RabbitMQ", "error", err)
		}
		closers = append(closers, channel.Close, conn.Close)

		closeChan := make(chan *amqp.Error, 1)
		conn.NotifyClose(closeChan)
		go func() {
			select {
			case err := <-closeChan:
				if err != nil {
					logger.Warnw("RabbitMQ connection closed", "error", err)
				}
				stop()
			case <-ctx.Done():
			}
		}()

		if err := events.DeclareQueue(channel, events.LookupQueue); err != nil {
			logger.Fatalw("failed to declare queue", "error", err)
		}

		wg.Add(1)
		go func() {
			if err := l.ListenAMQP(channel, events.LookupQueue); err != nil {
				logger.Errorw("amqp listener stopped", "error", err)
				stop()
			}
		}()

	case events.BrokerStomp:
		conn, err := utils.NewStompConnection()
		if err != nil {
			logger.Fatalw("failed to connect to stomp broker", "error", err)
		}
		closers = append(closers, conn.Disconnect)

		wg.Add(1)
		go func() {
			if err := l.ListenStomp(conn, events.LookupDestination); err != nil {
				logger.Errorw("stomp listener stopped", "error", err)
				stop()
			}
		}()
	}

	logger.Infow("processing lookup events", "broker", cfg.EventsBroker)

	<-ctx.Done()
	stop()
	wg.Wait()

	var closeErr error
	for i := len(closers) - 1; i >= 0; i-- {
		closeErr = multierr.Append(closeErr, closers[i]())
	}
	if closeErr != nil {
		logger.Warnw("failed to close connections", "error", closeErr)
	}
}
