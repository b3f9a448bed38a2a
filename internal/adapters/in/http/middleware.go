package http

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps a token bucket per client IP. Buckets of clients that
// stay quiet for the idle period are dropped.
type IPRateLimiter struct {
	limiters *cache.Cache
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

// NewIPRateLimiter allows r requests per second with burst b per client IP. Idle clients are forgotten after idle.
func NewIPRateLimiter(r rate.Limit, b int, idle time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: cache.New(idle, 2*idle),
		r:        r,
		b:        b,
	}
}

// GetLimiter returns the limiter for ip, creating it on first use.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	if l, found := i.limiters.Get(ip); found {
		limiter := l.(*rate.Limiter)
		i.limiters.SetDefault(ip, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.limiters.SetDefault(ip, limiter)
	return limiter
}

// RateLimit answers 429 once a client exceeds its budget.
func RateLimit(limiter *IPRateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.GetLimiter(c.RealIP()).Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

const (
	HeaderIdempotencyKey     = "Idempotency-Key"
	HeaderIdempotentReplayed = "Idempotent-Replayed"
)

type idempotentResponse struct {
	pending bool
	status  int
	headers http.Header
	body    []byte
}

type recordingWriter struct {
	http.ResponseWriter
	writer io.Writer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	return w.writer.Write(b)
}

// Idempotency replays the first successful response for a repeated
// Idempotency-Key. A key whose first request is still running is rejected
// with 409; failed requests release the key so the client can retry.
func Idempotency(store *cache.Cache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(HeaderIdempotencyKey)
			if key == "" || c.Request().Method != http.MethodPost {
				return next(c)
			}
			key = c.Request().Method + " " + c.Request().URL.Path + " " + key

			if err := store.Add(key, idempotentResponse{pending: true}, cache.DefaultExpiration); err != nil {
				cached, found := store.Get(key)
				if !found {
					return echo.NewHTTPError(http.StatusConflict, "idempotency key is in use")
				}
				resp := cached.(idempotentResponse)
				if resp.pending {
					return echo.NewHTTPError(http.StatusConflict, "a request with this idempotency key is in progress")
				}
				for k, v := range resp.headers {
					c.Response().Header()[k] = v
				}
				c.Response().Header().Set(HeaderIdempotentReplayed, "true")
				return c.Blob(resp.status, c.Response().Header().Get(echo.HeaderContentType), resp.body)
			}

			body := new(bytes.Buffer)
			original := c.Response().Writer
			c.Response().Writer = &recordingWriter{
				ResponseWriter: original,
				writer:         io.MultiWriter(original, body),
			}
			defer func() { c.Response().Writer = original }()

			err := next(c)

			status := c.Response().Status
			if err != nil || status < 200 || status >= 300 {
				store.Delete(key)
				return err
			}

			store.SetDefault(key, idempotentResponse{
				status:  status,
				headers: c.Response().Header().Clone(),
				body:    body.Bytes(),
			})
			return nil
		}
	}
}

// RequestLogger logs one line per request with zap.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.RequestID != "" {
				fields = append(fields, zap.String("request_id", v.RequestID))
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
