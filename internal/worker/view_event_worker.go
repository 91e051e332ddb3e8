package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"newsline/internal/cache"
	"newsline/internal/model"
	"newsline/internal/repository"
)

// ViewEventWorker drains the view-event queue: each event becomes a
// log row and a bump on the hot-news leaderboard.
type ViewEventWorker struct {
	conn      *amqp.Connection
	repo      *repository.ViewEventRepository
	hotBoard  *cache.HotNewsBoard
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewViewEventWorker(conn *amqp.Connection, repo *repository.ViewEventRepository, hotBoard *cache.HotNewsBoard, queueName string) *ViewEventWorker {
	return &ViewEventWorker{
		conn:      conn,
		repo:      repo,
		hotBoard:  hotBoard,
		queueName: queueName,
	}
}

func (w *ViewEventWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				w.handle(workerCtx, d)
			}
		}
	}()

	return nil
}

func (w *ViewEventWorker) handle(ctx context.Context, d amqp.Delivery) {
	var event model.ViewEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		log.Printf("worker decode view event failed: %v", err)
		_ = d.Nack(false, false)
		return
	}

	if err := w.repo.Create(ctx, &event); err != nil {
		log.Printf("worker persist view event failed: %v", err)
		_ = d.Nack(false, false)
		return
	}

	// leaderboard bump is best effort, the event row already committed
	if w.hotBoard != nil {
		if err := w.hotBoard.RecordView(ctx, event.NewsID); err != nil {
			log.Printf("worker bump hot board failed: %v", err)
		}
	}

	_ = d.Ack(false)
}

func (w *ViewEventWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
