// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/matt-FFFFFF/maxbatch/internal/color"
	"github.com/matt-FFFFFF/maxbatch/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	start := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	return &Result{
		ID:             "run-1",
		State:          progress.StateCompletedWithErrors,
		TotalSteps:     4,
		CurrentStep:    3,
		ErrorsOccurred: true,
		Outcomes: []StepOutcome{
			{Kind: OutcomeSuccess, Target: "a.max", Script: "one.ms"},
			{Kind: OutcomeScriptError, Target: "a.max", Script: "two.ms", Message: "Error executing 'two.ms': boom"},
			{Kind: OutcomeSuccess, Target: "b.max", Script: "one.ms"},
			{Kind: OutcomeSaveError, Target: "b.max", Message: "Error saving 'b.max': denied"},
		},
		StartTime: start,
		EndTime:   start.Add(90 * time.Second),
	}
}

func disableColour(t *testing.T) {
	t.Helper()

	prev := color.Enabled()
	color.SetEnabled(false)
	t.Cleanup(func() { color.SetEnabled(prev) })
}

func TestResult_Summary(t *testing.T) {
	s := sampleResult().Summary()

	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, 2, s.Errors)
	assert.InDelta(t, 75.0, s.Percent, 0.0001)
	assert.Equal(t, 90*time.Second, s.Duration)
}

func TestResult_WriteText(t *testing.T) {
	disableColour(t)

	buf := &bytes.Buffer{}
	require.NoError(t, sampleResult().WriteText(buf, false))

	assert.Equal(t,
		"a.max\n"+
			"  ✗ two.ms\n"+
			"    ➜ Error executing 'two.ms': boom\n"+
			"b.max\n"+
			"  ✗ [save error]\n"+
			"    ➜ Error saving 'b.max': denied\n"+
			"completed with errors: 3/4 steps (75.0%), 2 error(s)\n",
		buf.String())
}

func TestResult_WriteTextWithSuccess(t *testing.T) {
	disableColour(t)

	buf := &bytes.Buffer{}
	require.NoError(t, sampleResult().WriteText(buf, true))

	assert.Contains(t, buf.String(), "  ✓ one.ms\n")
}

func TestResult_WriteTextRejected(t *testing.T) {
	disableColour(t)

	r := &Result{State: progress.StateEmptyInput, Err: ErrEmptyInput}
	buf := &bytes.Buffer{}
	require.NoError(t, r.WriteText(buf, true))

	assert.Equal(t, "empty input: 0/0 steps (0.0%), 0 error(s): script or target list is empty\n", buf.String())
}

func TestResult_BinaryRoundTrip(t *testing.T) {
	in := sampleResult()
	in.Err = errors.New("rejected")

	buf := &bytes.Buffer{}
	require.NoError(t, in.WriteBinary(buf))

	out, err := ReadBinary(buf)
	require.NoError(t, err)

	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.State, out.State)
	assert.Equal(t, in.Outcomes, out.Outcomes)
	assert.True(t, in.StartTime.Equal(out.StartTime))
	require.Error(t, out.Err)
	assert.Equal(t, "rejected", out.Err.Error())
}

func TestReadBinary_Garbage(t *testing.T) {
	_, err := ReadBinary(bytes.NewBufferString("not gob"))
	assert.ErrorIs(t, err, ErrReadGob)
}
