package payment

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/Domenick1991/eventra/internal/domain"
	"github.com/sirupsen/logrus"
)

const (
	DefaultDelay       = 2 * time.Second
	DefaultSuccessRate = 0.95

	StatusSuccess = "success"
)

type Processor interface {
	ProcessPayment(ctx context.Context, req domain.PaymentRequest) (*domain.Transaction, error)
}

// Simulator settles payments after a fixed delay with a configurable success rate.
// It never talks to a real gateway.
type Simulator struct {
	delay       time.Duration
	successRate float64
	now         func() time.Time
	log         logrus.FieldLogger

	mu  sync.Mutex
	rnd *rand.Rand
}

type SimulatorOption func(*Simulator)

func WithClock(now func() time.Time) SimulatorOption {
	return func(s *Simulator) {
		s.now = now
	}
}

// WithSeed makes the success draw reproducible.
func WithSeed(seed int64) SimulatorOption {
	return func(s *Simulator) {
		s.rnd = rand.New(rand.NewSource(seed))
	}
}

func WithLogger(log logrus.FieldLogger) SimulatorOption {
	return func(s *Simulator) {
		s.log = log
	}
}

func NewSimulator(delay time.Duration, successRate float64, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		delay:       delay,
		successRate: successRate,
		now:         func() time.Time { return time.Now().UTC() },
		log:         logrus.StandardLogger(),
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessPayment blocks for the configured delay, then either returns a
// successful transaction or domain.ErrPaymentFailed. A cancelled ctx aborts
// the wait and returns ctx.Err().
func (s *Simulator) ProcessPayment(ctx context.Context, req domain.PaymentRequest) (*domain.Transaction, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry := s.log.WithFields(logrus.Fields{
		"amount": req.Amount.String(),
		"method": req.Method,
	})

	if !s.approve() {
		entry.Info("payment declined")
		return nil, domain.ErrPaymentFailed
	}

	now := s.now()
	txn := &domain.Transaction{
		ID:        "TXN" + strconv.FormatInt(now.UnixMilli(), 10),
		Amount:    req.Amount,
		Status:    StatusSuccess,
		Method:    req.Method,
		Timestamp: now,
	}
	entry.WithField("transaction_id", txn.ID).Info("payment approved")
	return txn, nil
}

func (s *Simulator) approve() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64() < s.successRate
}

// Result is the outcome of a payment started with Start.
type Result struct {
	Transaction *domain.Transaction
	Err         error
}

// Pending is a handle to an in-flight payment.
type Pending struct {
	cancel context.CancelFunc
	done   chan struct{}
	result Result
}

// Start runs the payment in the background. The caller may Cancel it,
// wait on Done, and read Result once Done is closed. Request-scoped callers
// should use ProcessPayment with the request context instead.
func Start(ctx context.Context, p Processor, req domain.PaymentRequest) *Pending {
	ctx, cancel := context.WithCancel(ctx)
	pending := &Pending{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(pending.done)
		defer cancel()
		txn, err := p.ProcessPayment(ctx, req)
		pending.result = Result{Transaction: txn, Err: err}
	}()
	return pending
}

func (s *Simulator) Start(ctx context.Context, req domain.PaymentRequest) *Pending {
	return Start(ctx, s, req)
}

func (p *Pending) Cancel() {
	p.cancel()
}

func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Result blocks until the payment settles.
func (p *Pending) Result() (*domain.Transaction, error) {
	<-p.done
	return p.result.Transaction, p.result.Err
}

var _ Processor = (*Simulator)(nil)
