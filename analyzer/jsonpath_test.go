package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestJSONPathGetString(t *testing.T) {
	a := NewJSONPath(zap.NewNop())
	tests := []struct {
		name    string
		rule    string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "scalar field",
			rule:    "$.name",
			content: `{"name": "Test Book", "author": "Author"}`,
			want:    "Test Book",
		},
		{
			name:    "with marker",
			rule:    "@json:$.author",
			content: `{"name": "Test Book", "author": "Author"}`,
			want:    "Author",
		},
		{
			name:    "array valued result takes first",
			rule:    "$.books[*].title",
			content: `{"books":[{"title":"A"},{"title":"B"}]}`,
			want:    "A",
		},
		{
			name:    "numeric stringified",
			rule:    "$.count",
			content: `{"count": 42}`,
			want:    "42",
		},
		{
			name:    "array field coerces to first scalar",
			rule:    "$.tags",
			content: `{"tags":["x","y"]}`,
			want:    "x",
		},
		{
			name:    "missing path",
			rule:    "$.missing",
			content: `{"name":"x"}`,
			wantErr: ErrNoResult,
		},
		{
			name:    "malformed path degrades to empty",
			rule:    "$.[[[",
			content: `{"name":"x"}`,
			want:    "",
		},
		{
			name:    "malformed content degrades to empty",
			rule:    "$.name",
			content: `not json`,
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.GetString(tt.rule, tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONPathGetList(t *testing.T) {
	a := NewJSONPath(zap.NewNop())

	items, err := a.GetList("$.books[*].title", `{"books":[{"title":"A"},{"title":"B"}]}`)
	assert.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, items)

	// 路径命中单个数组值时展开其元素
	items, err = a.GetList("$.tags", `{"tags":["x","y","z"]}`)
	assert.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, items)

	items, err = a.GetList("$.missing[*]", `{"name":"x"}`)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestJSONPathGetElements(t *testing.T) {
	a := NewJSONPath(zap.NewNop())
	elements, err := a.GetElements("$.books[*]", `{"books":[{"title":"A"},{"title":"B"}]}`)
	assert.NoError(t, err)
	assert.Equal(t, []string{`{"title":"A"}`, `{"title":"B"}`}, elements)
}
