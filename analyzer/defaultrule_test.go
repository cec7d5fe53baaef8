package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const bookListHTML = `
<html><body>
<div class="book">
  <a href="/books/1" title="A">A</a>
</div>
<div class="book">
  <a href="/books/2" title="B">B</a>
</div>
</body></html>`

func TestDefaultGetString(t *testing.T) {
	a := NewDefault(zap.NewNop())
	tests := []struct {
		name    string
		rule    string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "class then tag attr",
			rule:    "class.book.0@tag.a@href",
			content: bookListHTML,
			want:    "/books/1",
		},
		{
			name:    "negative index from tail",
			rule:    "class.book.-1@tag.a@href",
			content: bookListHTML,
			want:    "/books/2",
		},
		{
			name:    "text default",
			rule:    "tag.a.0",
			content: bookListHTML,
			want:    "A",
		},
		{
			name:    "all matches joined",
			rule:    "tag.a@title",
			content: bookListHTML,
			want:    "A\nB",
		},
		{
			name:    "zero matches",
			rule:    "class.missing.0",
			content: bookListHTML,
			wantErr: ErrNoResult,
		},
		{
			name:    "bad step degrades to empty",
			rule:    "chapter.book.0",
			content: bookListHTML,
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

func TestDefaultGetList(t *testing.T) {
	a := NewDefault(zap.NewNop())

	items, err := a.GetList("tag.a@href", bookListHTML)
	assert.NoError(t, err)
	assert.Equal(t, []string{"/books/1", "/books/2"}, items)

	items, err = a.GetList("class.none", bookListHTML)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestDefaultGetElements(t *testing.T) {
	a := NewDefault(zap.NewNop())
	elements, err := a.GetElements("tag.a", bookListHTML)
	assert.NoError(t, err)
	assert.Len(t, elements, 2)
	assert.Contains(t, elements[0], `href="/books/1"`)
}
