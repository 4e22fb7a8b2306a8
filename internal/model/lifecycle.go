package model

// State is where a user id sits in its lifecycle.
//
//	[none] --create--> [active] --delete--> [inactive] --delete--> [none]
//	                       ^                     |
//	                       +-----reactivate------+
type State int

const (
    StateNone State = iota
    StateActive
    StateInactive
)

func (s State) String() string {
    switch s {
    case StateActive:
        return "active"
    case StateInactive:
        return "inactive"
    default:
        return "none"
    }
}

// StateOf maps the (found, is_active) pair read from users_credentials.
func StateOf(found, active bool) State {
    switch {
    case !found:
        return StateNone
    case active:
        return StateActive
    default:
        return StateInactive
    }
}

// DeleteAction is what a delete request does to a user in a given state.
type DeleteAction int

const (
    DeleteNoop DeleteAction = iota // nothing stored under the id
    DeleteSoft                     // active -> inactive
    DeleteHard                     // inactive -> none, cascades
)

func (a DeleteAction) String() string {
    switch a {
    case DeleteSoft:
        return "soft"
    case DeleteHard:
        return "hard"
    default:
        return "noop"
    }
}

// OnDelete returns the action and resulting state for a delete request.
func (s State) OnDelete() (DeleteAction, State) {
    switch s {
    case StateActive:
        return DeleteSoft, StateInactive
    case StateInactive:
        return DeleteHard, StateNone
    default:
        return DeleteNoop, StateNone
    }
}

// CanUpdate is true only for active users.
func (s State) CanUpdate() bool { return s == StateActive }

// CanReactivate is true only for inactive users.
func (s State) CanReactivate() bool { return s == StateInactive }
