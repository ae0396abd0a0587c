// Package logger provides structured logging for fnkit tools using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("definition")
//	log.Info("pipeline built", logger.Fields("name", def.Name, "stages", n))
package logger
