package internal

import (
	"eghl/config"
	"eghl/entity"
	"eghl/services"
	"encoding/json"
	"fmt"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"io"
	"net"
	"net/http"
	"strconv"
)

const (
	routePurchase       = "/purchase"
	routePurchaseRecord = "/purchase/:payment_id"
	routeHealth         = "/health"
	routeMetrics        = "/metrics"

	maxRequestBytes = 64 << 10
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	payments   services.Payments
	database   services.Database
	logger     services.LogHandler
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf:   conf,
		logger: NewLogger("server", false, nil),
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(routePurchase, s.purchase)
	router.GET(routePurchaseRecord, s.purchaseRecord)
	router.GET(routeHealth, s.health)
	router.Handler(http.MethodGet, routeMetrics, promhttp.Handler())
}

func (s *Server) SetPaymentsService(payments services.Payments) {
	s.payments = payments
}

func (s *Server) SetDatabase(database services.Database) {
	s.database = database
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

func (s *Server) purchase(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Add request ID for tracing
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] purchase: read request body", reqID), err)
		s.respondError(w, r, http.StatusBadRequest, "cannot read request body", routePurchase)
		return
	}

	var request entity.PurchaseRequest
	if err = json.Unmarshal(body, &request); err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] purchase: decode request body: %v", reqID, err))
		s.respondError(w, r, http.StatusBadRequest, "invalid json", routePurchase)
		return
	}

	outcome, err := s.payments.Purchase(ctx, &request)
	if err != nil {
		s.respondError(w, r, statusFor(err), err.Error(), routePurchase)
		return
	}

	s.respondJSON(w, r, http.StatusOK, outcome, routePurchase)
}

func (s *Server) purchaseRecord(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	paymentId := ps.ByName("payment_id")
	if s.database == nil {
		s.respondError(w, r, http.StatusNotFound, "purchase records are not stored", routePurchaseRecord)
		return
	}

	record, err := s.database.GetPurchaseRecord(ctx, paymentId)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			s.respondError(w, r, http.StatusNotFound, "not found", routePurchaseRecord)
			return
		}
		s.logger.Error(fmt.Sprintf("[%s] get purchase record %s", reqID, secret(paymentId)), err)
		s.respondError(w, r, http.StatusInternalServerError, "internal error", routePurchaseRecord)
		return
	}
	s.respondJSON(w, r, http.StatusOK, record, routePurchaseRecord)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"}, routeHealth)
}

// statusFor maps gateway error kinds to HTTP statuses; gateway-side failures are 502.
func statusFor(err error) int {
	var gatewayErr *GatewayError
	if !errors.As(err, &gatewayErr) {
		return http.StatusInternalServerError
	}
	switch gatewayErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindTransport, KindProtocol, KindVerification:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, code int, payload interface{}, endpoint string) {
	httpReqTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(code)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write response", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, code int, msg, endpoint string) {
	s.respondJSON(w, r, code, map[string]string{"error": msg}, endpoint)
}
