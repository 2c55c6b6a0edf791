package wallet

import "time"

// Task is a pending scheduled call.
type Task interface {
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) Task {
	return time.AfterFunc(d, fn)
}

// SystemScheduler schedules on the runtime timer.
var SystemScheduler Scheduler = timerScheduler{}
