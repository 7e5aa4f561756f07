/*
Package observability turns logic editor hooks into logs and Prometheus metrics.

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.Combine(metrics.Hooks(), observability.LoggingHooks(logger))
	ed := logic.New(doc, reg, logic.WithHooks(hooks))
*/
package observability
