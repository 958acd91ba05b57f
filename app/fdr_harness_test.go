package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFDRHarness_DefaultSuitePasses(t *testing.T) {
	var buf bytes.Buffer
	require.True(t, NewFDRHarness().Run(&buf))

	out := buf.String()
	require.Equal(t, len(DefaultScenarios()), strings.Count(out, "VERDICT: PASSED"))
	require.NotContains(t, out, "VERDICT: FAILED")
	require.Contains(t, out, "All correction scenarios reproduced their expected outcomes.")
}

func TestFDRHarness_DetectsBrokenExpectation(t *testing.T) {
	broken := Scenario{
		Name:                "Deliberately wrong expectation",
		PValues:             []float64{0.001, 0.5},
		Q:                   0.05,
		ExpectedSignificant: 2, // only one survives
		ExpectedCriticalP:   0.5,
	}

	var buf bytes.Buffer
	require.False(t, NewFDRHarness(broken).Run(&buf))
	require.Contains(t, buf.String(), "VERDICT: FAILED")
}
