package notify

import (
	"context"
	"fmt"
	"log"
	"sync"
)

type Processor struct {
	client         *Client
	jobQueue       chan Notification
	wg             sync.WaitGroup
	workerCount    int
	ctx            context.Context
	cancel         context.CancelFunc
	mu             sync.RWMutex
	isShuttingDown bool
}

func NewProcessor(client *Client, workerCount int) *Processor {
	if workerCount <= 0 {
		workerCount = 3
	}

	ctx, cancel := context.WithCancel(context.Background())

	processor := &Processor{
		client:      client,
		jobQueue:    make(chan Notification, 100),
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
	}

	for i := 0; i < workerCount; i++ {
		processor.wg.Add(1)
		go processor.worker(i)
	}

	return processor
}

func (p *Processor) worker(id int) {
	defer p.wg.Done()
	log.Printf("Notification worker %d started", id)

	for {
		select {
		case <-p.ctx.Done():
			log.Printf("Notification worker %d received shutdown signal", id)
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				log.Printf("Notification worker %d: job queue closed", id)
				return
			}

			if err := p.client.Send(job); err != nil {
				log.Printf("Worker %d: failed to deliver %s notification for document %s: %v", id, job.Event, job.DocumentID, err)
			} else {
				log.Printf("Worker %d: delivered %s notification for document %s", id, job.Event, job.DocumentID)
			}
		}
	}
}

func (p *Processor) Submit(notification Notification) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.isShuttingDown {
		return fmt.Errorf("processor is shutting down, cannot accept new notifications")
	}

	select {
	case p.jobQueue <- notification:
		return nil
	default:
		return fmt.Errorf("notification queue is full (%d jobs)", cap(p.jobQueue))
	}
}

func (p *Processor) Shutdown() {
	p.mu.Lock()
	p.isShuttingDown = true
	p.mu.Unlock()

	log.Println("Shutting down notification processor...")

	close(p.jobQueue)

	p.wg.Wait()
	p.cancel()

	log.Println("Notification processor shut down complete")
}

func (p *Processor) QueueSize() int {
	return len(p.jobQueue)
}
