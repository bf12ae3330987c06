package extension

import (
	"errors"
	"slices"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testExtension is a minimal Extension implementation for testing.
type testExtension struct {
	name  string
	tools []MCPTool
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }
func (e testExtension) MCPTools() []MCPTool        { return e.tools }

// recordingExtension records the events it receives.
type recordingExtension struct {
	testExtension
	seen []Event
	err  error
}

func (e *recordingExtension) HandleEvent(_ Context, evt Event) error {
	e.seen = append(e.seen, evt)
	return e.err
}

func TestRegister_PanicOnDuplicate(t *testing.T) {
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate registration, got none")
		}
	}()

	Register(testExtension{name: name})
}

func TestRegister_Order(t *testing.T) {
	Register(testExtension{name: "test-order-a"})
	Register(testExtension{name: "test-order-b"})

	names := Names()
	a := slices.Index(names, "test-order-a")
	b := slices.Index(names, "test-order-b")
	require.NotEqual(t, -1, a)
	assert.Less(t, a, b)
	assert.NotNil(t, Get("test-order-a"))
	assert.Nil(t, Get("test-order-missing"))
}

func TestTools(t *testing.T) {
	Register(testExtension{name: "test-tools", tools: []MCPTool{{Tool: mcp.NewTool("test_tool")}}})

	var names []string
	for _, tool := range Tools() {
		names = append(names, tool.Tool.Name)
	}
	assert.Contains(t, names, "test_tool")
}

func TestDispatch(t *testing.T) {
	ok := &recordingExtension{testExtension: testExtension{name: "test-dispatch-ok"}}
	failing := &recordingExtension{testExtension: testExtension{name: "test-dispatch-fail"}, err: errors.New("boom")}
	Register(ok)
	Register(failing)

	err := Dispatch(nil, SnapshotDeleteEvent{ID: "abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	require.Len(t, ok.seen, 1)
	assert.Equal(t, EventSnapshotDelete, ok.seen[0].EventType())
	assert.Equal(t, "abc", ok.seen[0].SnapshotID())
	assert.Len(t, failing.seen, 1)
}
