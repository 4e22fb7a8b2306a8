package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestStateOf(t *testing.T) {
    assert.Equal(t, StateNone, StateOf(false, true))
    assert.Equal(t, StateNone, StateOf(false, false))
    assert.Equal(t, StateActive, StateOf(true, true))
    assert.Equal(t, StateInactive, StateOf(true, false))
}

func TestOnDelete_TwoPhase(t *testing.T) {
    // active -> inactive -> none -> none
    act, next := StateActive.OnDelete()
    assert.Equal(t, DeleteSoft, act)
    assert.Equal(t, StateInactive, next)

    act, next = next.OnDelete()
    assert.Equal(t, DeleteHard, act)
    assert.Equal(t, StateNone, next)

    act, next = next.OnDelete()
    assert.Equal(t, DeleteNoop, act)
    assert.Equal(t, StateNone, next)
}

func TestGuards(t *testing.T) {
    tests := []struct {
        state      State
        update     bool
        reactivate bool
    }{
        {StateNone, false, false},
        {StateActive, true, false},
        {StateInactive, false, true},
    }
    for _, tt := range tests {
        t.Run(tt.state.String(), func(t *testing.T) {
            assert.Equal(t, tt.update, tt.state.CanUpdate())
            assert.Equal(t, tt.reactivate, tt.state.CanReactivate())
        })
    }
}

func TestGenderValid(t *testing.T) {
    assert.True(t, GenderMale.Valid())
    assert.True(t, GenderFemale.Valid())
    assert.True(t, GenderOther.Valid())
    assert.False(t, Gender("Male").Valid())
    assert.False(t, Gender("").Valid())
}
