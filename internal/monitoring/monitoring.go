package monitoring

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "birdie_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	SignupSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "birdie_signup_success_total",
		Help: "Total successful signups",
	})

	LoginSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "birdie_login_success_total",
		Help: "Total successful login attempts",
	})

	LoginFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "birdie_login_failure_total",
		Help: "Total failed login attempts",
	}, []string{"reason"})

	TweetsPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "birdie_tweets_posted_total",
		Help: "Total tweets successfully posted",
	})

	FollowToggles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "birdie_follow_toggles_total",
		Help: "Follow toggles by resulting action",
	}, []string{"action"})

	LikeToggles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "birdie_like_toggles_total",
		Help: "Like toggles by resulting action",
	}, []string{"action"})

	NotificationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "birdie_notification_failures_total",
		Help: "Notifications that could not be stored",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(
		RequestDuration,
		SignupSuccess,
		LoginSuccess,
		LoginFailure,
		TweetsPosted,
		FollowToggles,
		LikeToggles,
		NotificationFailures,
	)
}

// Middleware records the duration of every request, labelled by the matched
// route pattern rather than the raw path to keep cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if !c.Response().Committed {
					status = 500
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			RequestDuration.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Toggle returns the action label for a toggle outcome.
func Toggle(on bool, onLabel, offLabel string) string {
	if on {
		return onLabel
	}
	return offLabel
}
