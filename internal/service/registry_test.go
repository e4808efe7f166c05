package service

import (
	"context"
	"testing"

	"github.com/GriffinCanCode/errprop/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	id       string
	category types.Category
	calls    []string
}

func (m *mockProvider) Definition() types.Service {
	category := m.category
	if category == "" {
		category = types.CategoryMath
	}
	return types.Service{
		ID:           m.id,
		Name:         "Mock Service",
		Description:  "A mock service for testing derivatives",
		Category:     category,
		Capabilities: []string{"symbolic_math", "evaluation"},
		Tools: []types.Tool{
			{
				ID:          m.id + ".test",
				Name:        "Test Tool",
				Description: "A test tool",
				Returns:     "string",
			},
		},
	}
}

func (m *mockProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	m.calls = append(m.calls, toolID)
	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"result": "success"},
	}, nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test"}))

	_, ok := r.Get("test")
	assert.True(t, ok)

	assert.Error(t, r.Register(&mockProvider{id: "test"}), "duplicate IDs are rejected")
	assert.Error(t, r.Register(&mockProvider{id: ""}))

	r.Unregister("test")
	_, ok = r.Get("test")
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "b"}))
	require.NoError(t, r.Register(&mockProvider{id: "a", category: types.CategoryUncertainty}))

	services := r.List(nil)
	require.Len(t, services, 2)
	assert.Equal(t, "a", services[0].ID)
	assert.Equal(t, "b", services[1].ID)

	cat := types.CategoryUncertainty
	filtered := r.List(&cat)
	require.Len(t, filtered, 1)
	assert.Equal(t, "a", filtered[0].ID)

	empty := types.CategorySystem
	assert.Empty(t, r.List(&empty))
}

func TestDiscover(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "calc"}))
	require.NoError(t, r.Register(&mockProvider{id: "other", category: types.CategorySystem}))

	results := r.Discover("calc symbolic math", 5)
	require.NotEmpty(t, results)
	assert.Equal(t, "calc", results[0].ID)

	assert.Len(t, r.Discover("derivatives", 1), 1)
	assert.Empty(t, r.Discover("zzz", 5))
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	p := &mockProvider{id: "test"}
	require.NoError(t, r.Register(p))

	result, err := r.Execute(context.Background(), "test.test", map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{"test.test"}, p.calls)
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test"}))

	tests := []struct {
		name   string
		toolID string
	}{
		{"no separator", "test"},
		{"unknown service", "missing.tool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.Execute(context.Background(), tt.toolID, nil, nil)
			require.Error(t, err)
			require.NotNil(t, result)
			assert.False(t, result.Success)
			require.NotNil(t, result.Error)
		})
	}
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test1"}))
	require.NoError(t, r.Register(&mockProvider{id: "test2"}))

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 2, stats["total_tools"])
	assert.Equal(t, map[string]int{"math": 2}, stats["categories"])
}
