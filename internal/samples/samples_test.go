package samples

import (
	"testing"

	"github.com/kdduha/uml-generator/internal/mermaid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagramsAreValid(t *testing.T) {
	for _, d := range Diagrams {
		ok, reason := mermaid.IsValid(d.Text)
		assert.True(t, ok, "%s: %s", d.Name, reason)
	}
}

func TestLookup(t *testing.T) {
	text, ok := Description("basic_user")
	require.True(t, ok)
	assert.Contains(t, text, "User class")

	_, ok = Diagram(TestDiagram)
	assert.True(t, ok)

	_, ok = Description("None")
	assert.False(t, ok)
}
