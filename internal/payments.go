package internal

import (
	"context"
	"eghl/config"
	"eghl/entity"
	"eghl/services"
	"fmt"
	"github.com/pkg/errors"
	"strconv"
	"sync"
	"time"
)

const recordTimeout = 10 * time.Second

var awaitingStates = [...]entity.PurchaseState{
	entity.StateAwaitingStep1,
	entity.StateAwaitingStep2,
	entity.StateAwaitingStep3,
}

// Payments runs the eGHL server-to-server purchase chain.
// Purchases share no state; the only map tracks payment ids currently in flight
// so the same payment is never submitted twice at once.
type Payments struct {
	conf       *config.Gateway
	database   services.Database
	logger     services.LogHandler
	inflight   sync.Map
	normalizer *Normalizer
	hasher     *Hasher
	steps      *StepExecutor
}

// NewPayments creates the purchase engine. A nil client selects the default HTTP client.
func NewPayments(conf *config.Gateway, client HTTPDoer) (*Payments, error) {
	if conf == nil {
		return nil, fmt.Errorf("gateway not configured")
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		client = NewHTTPClient(conf.Timeout)
	}
	return &Payments{
		conf:       conf,
		logger:     NewLogger("payments", false, nil),
		normalizer: NewNormalizer(conf),
		hasher:     NewHasher(conf.Password),
		steps:      NewStepExecutor(client, conf.MaxBodyBytes),
	}, nil
}

func (p *Payments) SetDatabase(database services.Database) {
	p.database = database
}

func (p *Payments) SetLogger(logger services.LogHandler) {
	p.logger = logger
	p.logger.Info(fmt.Sprintf("gateway %s; service id %s", p.conf.EndpointBase, p.conf.ServiceID))
}

// purchase is the lifecycle of one call; it lives on the caller's stack only.
type purchase struct {
	requestId string
	paymentId string
	state     entity.PurchaseState
	record    *entity.PurchaseRecord
}

func (r *purchase) advance(state entity.PurchaseState) {
	r.state = state
	r.record.State = state
}

// Purchase validates, signs and submits a SALE, follows the three redirect forms,
// verifies the final hashes and classifies the result.
// No outcome is returned unless both final hashes match.
func (p *Payments) Purchase(ctx context.Context, request *entity.PurchaseRequest) (*entity.TransactionOutcome, error) {
	run := &purchase{
		requestId: GetRequestID(ctx),
		state:     entity.StateBuilt,
		record: &entity.PurchaseRecord{
			RequestId:   GetRequestID(ctx),
			State:       entity.StateBuilt,
			TimeStarted: time.Now(),
		},
	}
	if request != nil {
		run.paymentId = request.TransactionId
		run.record.PaymentId = request.TransactionId
		run.record.OrderNumber = firstNonEmpty(request.OrderId, request.EntryUUID)
		run.record.Currency = request.Currency
	}

	fields, money, err := p.normalizer.Fields(request)
	if err != nil {
		return nil, p.abort(ctx, run, err)
	}
	run.record.Amount = money.Decimal()

	release, err := p.lockPayment(run.paymentId)
	if err != nil {
		return nil, p.abort(ctx, run, err)
	}
	defer release()

	if p.conf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.conf.Timeout)
		defer cancel()
	}

	p.hasher.Sign(fields)
	run.advance(entity.StateSigned)
	p.logger.Info(fmt.Sprintf("[%s] purchase %s: %s; amount %s", run.requestId, secret(run.paymentId), run.state, money))

	target := p.conf.EndpointBase
	for i, state := range awaitingStates {
		run.advance(state)
		var form *entity.RedirectForm
		form, target, err = p.roundTrip(ctx, i+1, target, fields)
		if err != nil {
			return nil, p.abort(ctx, run, err)
		}
		fields = form.Values()
		p.logger.Debug(fmt.Sprintf("[%s] purchase %s: step %d returned %d fields", run.requestId, secret(run.paymentId), i+1, len(fields)))
	}

	result, err := p.hasher.Verify(fields)
	if err != nil {
		return nil, p.abort(ctx, run, err)
	}
	run.advance(entity.StateVerified)

	outcome := Classify(result)
	run.advance(entity.StateClassified)

	run.record.Status = outcome.Status()
	run.record.TxnId = outcome.TransactionReference()
	run.record.AuthCode = outcome.AuthCode()
	run.record.Message = outcome.Message()
	p.saveRecord(ctx, run)

	purchasesTotal.WithLabelValues(string(outcome.Status())).Inc()
	p.logger.Info(fmt.Sprintf("[%s] purchase %s: %s; txn %s", run.requestId, secret(run.paymentId), outcome.Status(), outcome.TransactionReference()))
	return outcome, nil
}

// roundTrip posts fields to target, extracts the next form and resolves its action.
func (p *Payments) roundTrip(ctx context.Context, step int, target string, fields entity.Fields) (*entity.RedirectForm, string, error) {
	started := time.Now()
	body, err := p.steps.Post(ctx, target, fields)
	stepLatency.WithLabelValues(strconv.Itoa(step)).Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, "", err
	}
	form, err := ExtractForm(body)
	if err != nil {
		p.logger.Debug(fmt.Sprintf("step %d: unrecognized response: %.200s", step, body))
		return nil, "", err
	}
	next, err := resolveAction(target, form.Action)
	if err != nil {
		return nil, "", &GatewayError{Kind: KindProtocol, Message: "invalid form action", Err: err}
	}
	return form, next, nil
}

// abort moves the run to the terminal state and stamps the error with the state it stopped at.
func (p *Payments) abort(ctx context.Context, run *purchase, err error) error {
	var gatewayErr *GatewayError
	if !errors.As(err, &gatewayErr) {
		gatewayErr = &GatewayError{Kind: KindProtocol, Err: err}
	}
	if gatewayErr.State == "" {
		gatewayErr.State = run.state
	}

	run.record.ErrorKind = string(gatewayErr.Kind)
	run.record.Error = gatewayErr.Error()

	text := fmt.Sprintf("[%s] purchase %s aborted at %s", run.requestId, secret(run.paymentId), gatewayErr.State)
	switch gatewayErr.Kind {
	case KindVerification:
		verificationFailures.Inc()
		p.logger.Alert(text+"; gateway response failed hash verification", gatewayErr)
	case KindValidation:
		p.logger.Warn(fmt.Sprintf("%s: %v", text, gatewayErr))
	default:
		p.logger.Error(text, gatewayErr)
	}

	run.advance(entity.StateAborted)
	p.saveRecord(ctx, run)
	purchasesTotal.WithLabelValues(string(gatewayErr.Kind)).Inc()
	return gatewayErr
}

func (p *Payments) saveRecord(ctx context.Context, run *purchase) {
	if p.database == nil || run.paymentId == "" {
		return
	}
	run.record.Close(run.state)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := p.database.SavePurchaseRecord(ctx, run.record); err != nil {
		p.logger.Error("save purchase record", err)
	}
}

// lockPayment marks a payment id as in flight; a second concurrent run with the same id is rejected.
func (p *Payments) lockPayment(id string) (func(), error) {
	if _, loaded := p.inflight.LoadOrStore(id, struct{}{}); loaded {
		return nil, validationError("payment %s already in progress", secret(id))
	}
	return func() { p.inflight.Delete(id) }, nil
}

func secret(some string) string {
	if len(some) > 5 {
		return fmt.Sprintf("%s***", some[0:5])
	}
	if some == "" {
		return "?"
	}
	return "***"
}
