package doctor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStatus_String(t *testing.T) {
	tests := []struct {
		status   CheckStatus
		expected string
	}{
		{StatusPass, "pass"},
		{StatusWarn, "warn"},
		{StatusFail, "fail"},
		{CheckStatus(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

// mockCheck is a test implementation of Check.
type mockCheck struct {
	name     string
	category string
	result   CheckResult
}

func (m *mockCheck) Name() string                        { return m.name }
func (m *mockCheck) Category() string                    { return m.category }
func (m *mockCheck) Run(ctx context.Context) CheckResult { return m.result }

func TestRunAll_FillsIdentity(t *testing.T) {
	checks := []Check{
		&mockCheck{name: "one", category: CategoryConfig, result: pass("ok")},
		&mockCheck{name: "two", category: CategoryOutput, result: fail("broken", "fix it")},
	}

	for _, results := range [][]CheckResult{
		RunAll(context.Background(), checks),
		RunAllParallel(context.Background(), checks),
	} {
		require.Len(t, results, 2)
		assert.Equal(t, "one", results[0].Name)
		assert.Equal(t, CategoryConfig, results[0].Category)
		assert.Equal(t, StatusFail, results[1].Status)
		assert.Equal(t, "fix it", results[1].Suggestion)
		assert.True(t, HasFailures(results))
		assert.Equal(t, map[string][]int{CategoryConfig: {0}, CategoryOutput: {1}}, GroupByCategory(results))
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name    string
		results []CheckResult
		want    string
	}{
		{"all good", []CheckResult{pass("a"), pass("b")}, "Everything looks good"},
		{"one warning", []CheckResult{pass("a"), warn("b", "")}, "1 warning"},
		{"mixed", []CheckResult{fail("a", ""), fail("b", ""), warn("c", "")}, "2 problems, 1 warning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.results))
		})
	}
}

func TestCheckResult_JSONUsesStatusNames(t *testing.T) {
	data, err := json.Marshal(CheckResult{Name: "x", Status: StatusWarn})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"warn"`)
}
