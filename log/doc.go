// Package log defines the logging abstraction consumed by lib-retry.
//
// The retry controller only depends on the Logger interface; concrete
// backends live in sibling packages such as zap.
package log
