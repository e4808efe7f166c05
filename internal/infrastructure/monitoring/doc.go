/*
Package monitoring provides Prometheus metrics for the errprop service.

# Overview

Each Metrics value owns a private registry holding HTTP request metrics,
calculation metrics (outcome, duration, error kind, value format, parameter
count), service tool metrics and the Go/process collectors.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "uncertainty", "propagate")
	// ... run the tool ...
	timer.Stop("success")

	metrics.RecordCalculation("http", "", 3, elapsed)
*/
package monitoring
