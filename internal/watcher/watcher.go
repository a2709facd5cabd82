// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

// Package watcher notifies observers when program source files change on
// disk, so they can be recompiled.
package watcher

import "context"

type OpType int

const (
	_ OpType = iota
	Create
	Update
	Delete
)

func (o OpType) String() string {
	switch o {
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Event is a change to a watched program file.
type Event struct {
	Op       OpType
	Pathname string
}

// Processor describes an interface for receiving watcher.Events
type Processor interface {
	ProcessFileEvent(context.Context, Event)
}
