// Package zap bridges the lib-retry log abstraction to go.uber.org/zap.
//
// It preserves structured fields, correlates log entries with active
// OpenTelemetry spans, and mirrors entries to an otelzap core when a
// scope name is configured.
package zap
