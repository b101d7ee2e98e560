package transport

import (
	"context"
	"sync"

	"github.com/mogaika/meshcat_client/command"
)

// Sender is implemented by Client.
type Sender interface {
	Send(command.Command) (string, error)
}

type result struct {
	ack string
	err error
}

type job struct {
	cmd   command.Command
	reply chan result
}

// Worker owns a Sender and sends commands from many goroutines one at a
// time, in arrival order.
type Worker struct {
	sender Sender
	jobs   chan job
	quit   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

func NewWorker(sender Sender) *Worker {
	w := &Worker{
		sender: sender,
		jobs:   make(chan job),
		quit:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case j := <-w.jobs:
			ack, err := w.sender.Send(j.cmd)
			j.reply <- result{ack: ack, err: err}
		case <-w.quit:
			return
		}
	}
}

// Do queues cmd and waits for its acknowledgement. If ctx ends first Do
// returns ctx.Err(), but a command already handed to the sender still goes
// out.
func (w *Worker) Do(ctx context.Context, cmd command.Command) (string, error) {
	j := job{cmd: cmd, reply: make(chan result, 1)}
	select {
	case w.jobs <- j:
	case <-w.quit:
		return "", &Error{Kind: ErrClosed, Op: "queue " + cmd.RequestType(), Path: cmd.Path()}
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case r := <-j.reply:
		return r.ack, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Stop waits for the command in progress and stops the worker. It does not
// close the sender.
func (w *Worker) Stop() {
	w.once.Do(func() { close(w.quit) })
	w.wg.Wait()
}
