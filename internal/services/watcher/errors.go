// File: internal/services/watcher/errors.go
package watcher

import "errors"

var (
    // ErrClosed is returned by operations on a watcher after Close.
    ErrClosed = errors.New("watcher: conversation watcher is closed")
    // ErrEmptyMessage is returned by Send for blank message content.
    ErrEmptyMessage = errors.New("watcher: message content cannot be empty")
    // ErrSendInProgress is returned when a send is already in flight.
    ErrSendInProgress = errors.New("watcher: a send is already in progress")
)
