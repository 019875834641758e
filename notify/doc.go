// Package notify defines transient user facing notifications (toast messages)
// produced by session and navigation events, and sinks that collect or log them.
package notify
