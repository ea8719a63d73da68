package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jholtmann/todocast/internal/domain"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func TestItem_Unchecked(t *testing.T) {
	r := testRenderer(t)

	html, err := r.Item(domain.Todo{ID: 7, Title: "Buy milk"})
	require.NoError(t, err)

	assert.Contains(t, html, `id="todo-7"`)
	assert.Contains(t, html, "Buy milk")
	assert.NotContains(t, html, "checked")
	assert.Contains(t, html, `hx-put="/todos/7/toggle"`)
	assert.Contains(t, html, `hx-delete="/todos/7"`)
	assert.NotContains(t, html, `class="completed"`)
}

func TestItem_Completed(t *testing.T) {
	r := testRenderer(t)

	html, err := r.Item(domain.Todo{ID: 3, Title: "X", Completed: true})
	require.NoError(t, err)

	assert.Contains(t, html, "checked")
	assert.Contains(t, html, `class="completed"`)
}

func TestItem_Idempotent(t *testing.T) {
	r := testRenderer(t)
	todo := domain.Todo{ID: 5, Title: "same", CreatedAt: time.Now()}

	first, err := r.Item(todo)
	require.NoError(t, err)
	second, err := r.Item(todo)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestItem_EscapesTitle(t *testing.T) {
	r := testRenderer(t)

	html, err := r.Item(domain.Todo{ID: 1, Title: `<script>alert("x")</script>`})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestList_OrderAndForm(t *testing.T) {
	r := testRenderer(t)

	html, err := r.List([]domain.Todo{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
	})
	require.NoError(t, err)

	assert.Contains(t, html, `hx-post="/todos"`)
	assert.Contains(t, html, `id="todo-list"`)
	posA := strings.Index(html, ">A</span>")
	posB := strings.Index(html, ">B</span>")
	require.NotEqual(t, -1, posA)
	require.NotEqual(t, -1, posB)
	assert.Less(t, posA, posB)
}

func TestList_Empty(t *testing.T) {
	r := testRenderer(t)

	html, err := r.List(nil)
	require.NoError(t, err)

	assert.Contains(t, html, `id="todo-list"`)
	assert.NotContains(t, html, "todo-item")
}

func TestList_ContainsAllItemFragments(t *testing.T) {
	r := testRenderer(t)

	todos := make([]domain.Todo, 0, 5)
	for i := int64(1); i <= 5; i++ {
		todos = append(todos, domain.Todo{ID: i, Title: fmt.Sprintf("todo %d", i)})
	}

	html, err := r.List(todos)
	require.NoError(t, err)

	for _, todo := range todos {
		item, err := r.Item(todo)
		require.NoError(t, err)
		assert.Contains(t, html, strings.TrimSpace(item))
	}
}
