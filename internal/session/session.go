// Package session holds the state of an interactive goports run: the last
// scanned connections, the selection cursor and the kill confirmation.
//
// Transition is pure. It returns the side effect the caller must perform
// (a rescan, or a kill followed by a rescan) and the caller feeds the result
// back through Apply or Fail.
package session

import (
	"fmt"

	"goports/internal/netstat"
)

// State is the mode of the session.
type State int

const (
	Idle State = iota
	AwaitingConfirm
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingConfirm:
		return "awaiting-confirm"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event is a decoded user input.
type Event int

const (
	Quit Event = iota
	Refresh
	Next
	Prev
	Select
	Affirm
	Deny
)

// EffectKind names the side effect requested by a transition.
type EffectKind int

const (
	NoEffect EffectKind = iota
	RefreshEffect
	// KillEffect asks for PID to be terminated and the records rescanned
	// afterwards, whatever the termination outcome.
	KillEffect
)

// Effect is the side effect to run after a transition.
type Effect struct {
	Kind EffectKind
	PID  netstat.PID
}

// Session is the interactive view state. The zero value is an empty, idle
// session.
type Session struct {
	Records  []netstat.Entry
	Selected int
	State    State
	// Err is the last non-fatal error to show (failed refresh or kill).
	Err error
}

// Target returns the selected record, if any.
func (s Session) Target() (netstat.Entry, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Records) {
		return netstat.Entry{}, false
	}
	return s.Records[s.Selected], true
}

// Transition applies ev to s.
func Transition(s Session, ev Event) (Session, Effect) {
	if s.State == Terminated {
		return s, Effect{}
	}
	if ev == Quit {
		s.State = Terminated
		return s, Effect{}
	}

	if s.State == AwaitingConfirm {
		switch ev {
		case Affirm, Select:
			target, ok := s.Target()
			s.State = Idle
			if !ok {
				return s, Effect{}
			}
			return s, Effect{Kind: KillEffect, PID: target.PID}
		case Deny:
			s.State = Idle
		}
		return s, Effect{}
	}

	switch ev {
	case Refresh:
		return s, Effect{Kind: RefreshEffect}
	case Next:
		if n := len(s.Records); n > 0 {
			s.Selected = (s.Selected + 1) % n
		}
	case Prev:
		if n := len(s.Records); n > 0 {
			s.Selected = (s.Selected - 1 + n) % n
		}
	case Select:
		if len(s.Records) > 0 {
			s.State = AwaitingConfirm
		}
	}
	return s, Effect{}
}

// Apply replaces the records with a fresh scan and clamps the selection.
func (s Session) Apply(records []netstat.Entry) Session {
	s.Records = records
	s.Err = nil
	switch {
	case len(records) == 0:
		s.Selected = 0
	case s.Selected >= len(records):
		s.Selected = len(records) - 1
	case s.Selected < 0:
		s.Selected = 0
	}
	if len(records) == 0 && s.State == AwaitingConfirm {
		s.State = Idle
	}
	return s
}

// Fail records err for display and leaves the records untouched.
func (s Session) Fail(err error) Session {
	s.Err = err
	return s
}
