package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Logger interface {
	Errorf(format string, v ...interface{})
	Infow(msg string, keysAndValues ...interface{})
}

// RouteLabelFn maps a request to its "url" label. Use the route template to keep
// cardinality bounded (/api/v1/members/:id rather than one series per member).
type RouteLabelFn func(c *gin.Context) string

// HTTPMetrics records request count and latency for a gin engine.
type HTTPMetrics struct {
	reqCnt  *prometheus.CounterVec
	reqDur  *prometheus.HistogramVec
	routeFn RouteLabelFn
}

func NewHTTPMetrics(reg prometheus.Registerer, routeFn RouteLabelFn) (*HTTPMetrics, error) {
	if routeFn == nil {
		routeFn = func(c *gin.Context) string {
			if fp := c.FullPath(); fp != "" {
				return fp
			}
			return "unmatched"
		}
	}
	m := &HTTPMetrics{
		reqCnt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests partitioned by status code, method and route.",
		}, []string{"code", "method", "url"}),
		reqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latencies in milliseconds.",
			Buckets:   HistogramBuckets,
		}, []string{"code", "method", "url"}),
		routeFn: routeFn,
	}
	if err := reg.Register(m.reqCnt); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		m.reqCnt = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(m.reqDur); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		m.reqDur = are.ExistingCollector.(*prometheus.HistogramVec)
	}
	return m, nil
}

// HandlerFunc is the gin middleware.
func (m *HTTPMetrics) HandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		url := m.routeFn(c)
		m.reqDur.WithLabelValues(status, c.Request.Method, url).Observe(MillisecondsSince(start))
		m.reqCnt.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}

// Server exposes /metrics on a dedicated address so scrapes stay out of the access log.
type Server struct {
	srv *http.Server
	log Logger
}

func NewServer(addr string, log Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Server{srv: &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}, log: log}
}

func (s *Server) Start() {
	go func() {
		s.log.Infow("metrics server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("metrics server error: %v", err)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func MillisecondsSince(t time.Time) float64 {
	return float64(time.Since(t).Nanoseconds()) / 1e6
}
