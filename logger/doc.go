// Package logger provides structured logging for fetchkit using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields. The fetch core never logs;
// transports and adapters accept a *Logger and default to a no-op one.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "users-api").WithComponent("httpclient")
//	log.Debug("request completed", logger.Fields("status", 200))
package logger
