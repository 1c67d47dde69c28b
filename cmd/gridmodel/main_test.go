package main

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridmodel/grid"
)

func TestRun(t *testing.T) {
	var out, logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	opts := options{
		casePath:  "../../testdata/case5.json",
		ybus:      true,
		ptdf:      true,
		incidence: true,
		solver:    "dense",
	}
	require.NoError(t, run(&out, opts, logger))

	printed := out.String()
	assert.Contains(t, printed, "five-bus: 5 buses, 7 branches")
	assert.Contains(t, printed, "Size of matrix = 5 x 5.")
	assert.Contains(t, printed, "Matrix is complex.")
	assert.Contains(t, printed, "INCIDENCE")
	assert.Contains(t, printed, "   7      40.00")
	assert.Contains(t, printed, "PTDF (reference bus 1)")

	assert.Contains(t, logs.String(), "kind=three-winding-approximation")
}

func TestRunErrors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := run(io.Discard, options{casePath: "../../testdata/case5.json", solver: "qr"}, logger)
	require.Error(t, err)

	err = run(io.Discard, options{casePath: "../../testdata/case5.json", solver: "sparse", reference: 6}, logger)
	require.ErrorIs(t, err, grid.ErrBusIndex)

	err = run(io.Discard, options{casePath: "missing.json"}, logger)
	require.Error(t, err)
}
