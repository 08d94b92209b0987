package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepID(t *testing.T) {
	tests := []struct {
		id    StepID
		valid bool
		name  string
	}{
		{id: 0, valid: true, name: "0"},
		{id: MaxSteps - 1, valid: true, name: "31"},
		{id: MaxSteps, valid: false, name: "32"},
		{id: End, valid: false, name: "end"},
		{id: Undefined, valid: false, name: "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.id.Valid())
			assert.Equal(t, tt.name, tt.id.String())
		})
	}
}

func TestStepOutcome_Unknown(t *testing.T) {
	assert.True(t, OutcomeCriticalAbort.Valid())
	assert.False(t, OutcomeCount.Valid())
	assert.Equal(t, "unknown", StepOutcome(200).String())
	assert.Equal(t, "redo", OutcomeRedo.String())
}

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "load_next_step(4)", LoadNext(4).String())
	assert.Equal(t, "critical", CmdCritical.String())
	assert.Equal(t, "unknown", CommandKind(99).String())
}

func TestResult_Terminal(t *testing.T) {
	assert.False(t, ResultOngoing.Terminal())
	assert.False(t, ResultOngoingLoadNext.Terminal())
	assert.True(t, ResultFinished.Terminal())
	assert.True(t, ResultCriticalError.Terminal())
}

func TestReport_JSONUsesResultNames(t *testing.T) {
	r := Report{ID: "r1", Behaviour: "alert", Result: ResultFinished}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"result":"finished"`)

	var back Report
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, ResultFinished, back.Result)
	assert.True(t, back.Succeeded())
}

func TestSequenceTable_Lookup(t *testing.T) {
	table := &SequenceTable{Steps: make([]Step, 2)}

	_, ok := table.Lookup(1)
	assert.True(t, ok)
	_, ok = table.Lookup(2)
	assert.False(t, ok, "index past the table")
	_, ok = table.Lookup(Undefined)
	assert.False(t, ok)

	var nilTable *SequenceTable
	_, ok = nilTable.Lookup(0)
	assert.False(t, ok)
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := LifecycleHooks{OnHalt: func(*HaltEvent) { calls = append(calls, "a") }}
	b := LifecycleHooks{
		OnHalt:      func(*HaltEvent) { calls = append(calls, "b") },
		OnStepEnter: func(*StepEvent) { calls = append(calls, "enter") },
	}

	merged := a.Merge(b)
	merged.OnHalt(&HaltEvent{})
	merged.OnStepEnter(&StepEvent{})

	assert.Nil(t, merged.OnTransition)
	assert.Equal(t, []string{"a", "b", "enter"}, calls)
}

func TestHaltError_Error(t *testing.T) {
	err := &HaltError{Behaviour: "alert", Step: "wake", Kind: FailureExhaustedRetries}
	assert.Equal(t, "alert halted at wake (exhausted_retries)", err.Error())

	err.Detail = "redo ceiling reached"
	assert.Contains(t, err.Error(), "redo ceiling reached")
}

func TestResult_UnmarshalText(t *testing.T) {
	for _, want := range []Result{ResultOngoing, ResultOngoingLoadNext, ResultFinished, ResultCriticalError} {
		var got Result
		require.NoError(t, got.UnmarshalText([]byte(want.String())))
		assert.Equal(t, want, got)
	}

	r := ResultFinished
	assert.ErrorContains(t, r.UnmarshalText([]byte("exploded")), `unknown result "exploded"`)
	assert.Equal(t, ResultFinished, r, "unchanged on error")

	var back Report
	assert.Error(t, json.Unmarshal([]byte(`{"id":"r1","result":"garbage"}`), &back))
}
