package search

import (
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/chat-wrapped/internal/index"
	"github.com/Zuo-Peng/chat-wrapped/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportJSON = `[
 {"id": "trip", "title": "Italy trip", "create_time": 1748772000,
  "mapping": {
   "root": {"children": ["u1"]},
   "u1": {"parent": "root", "children": ["a1"], "message": {"author": {"role": "user"}, "create_time": 1748772001, "content": "Plan my Italy trip with pasta stops"}},
   "a1": {"parent": "u1", "children": ["u2"], "message": {"author": {"role": "assistant"}, "create_time": 1748772002, "content": "Try pasta in Bologna", "metadata": {"model_slug": "gpt-4o"}}},
   "u2": {"parent": "a1", "children": [], "message": {"author": {"role": "user"}, "create_time": 1748772003, "content": "More pasta please"}}
  }},
 {"id": "go", "title": "Go generics", "create_time": 1748872000,
  "mapping": {
   "root": {"children": ["u1"]},
   "u1": {"parent": "root", "children": ["a1"], "message": {"author": {"role": "user"}, "create_time": 1748872001, "content": "How do generics work in gpt-4o answers?"}},
   "a1": {"parent": "u1", "children": [], "message": {"author": {"role": "assistant"}, "create_time": 1748872002, "content": "ラーメンとパスタ"}}
  }}
]`

func buildDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	convs, err := parse.DecodeConversations(strings.NewReader(exportJSON))
	require.NoError(t, err)
	_, err = index.Build(db, convs, time.UTC, nil)
	require.NoError(t, err)
	return db
}

func TestSearchFTSDedupsPerConversation(t *testing.T) {
	db := buildDB(t)
	results, err := Search(db, Options{Query: "pasta"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "trip", results[0].ConvKey)
	assert.Equal(t, "Italy trip", results[0].Title)
	assert.Contains(t, results[0].Snippet, ">>>pasta<<<")
}

func TestSearchRoleFilter(t *testing.T) {
	db := buildDB(t)
	results, err := Search(db, Options{Query: "pasta", Role: "assistant"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Seq)
	assert.Equal(t, "assistant", results[0].Role)
	assert.Equal(t, "gpt-4o", results[0].Model)
}

func TestSearchSinceFilter(t *testing.T) {
	db := buildDB(t)
	results, err := Search(db, Options{Query: "generics", Since: "2025-06-02"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "go", results[0].ConvKey)

	results, err = Search(db, Options{Query: "pasta", Since: "2025-07-01"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchUntilFilter(t *testing.T) {
	db := buildDB(t)
	results, err := Search(db, Options{Query: "pasta", Since: "2025-06-01", Until: "2025-06-02"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "trip", results[0].ConvKey)

	results, err = Search(db, Options{Query: "generics", Until: "2025-06-02"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchPunctuation(t *testing.T) {
	db := buildDB(t)
	results, err := Search(db, Options{Query: "gpt-4o"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "go", results[0].ConvKey)
}

func TestSearchCJKUsesLike(t *testing.T) {
	db := buildDB(t)
	results, err := Search(db, Options{Query: "パスタ"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "go", results[0].ConvKey)
	assert.Equal(t, "ラーメンと>>>パスタ<<<", results[0].Snippet)
}

func TestSearchEmptyQuery(t *testing.T) {
	db := buildDB(t)
	results, err := Search(db, Options{Query: "  "})
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestSearchLimit(t *testing.T) {
	db := buildDB(t)
	results, err := Search(db, Options{Query: "pasta OR generics", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMakeSnippet(t *testing.T) {
	tests := []struct {
		name, text, query string
		ctx               int
		want              string
	}{
		{"middle", "the quick brown fox jumps", "brown", 4, "...ick >>>brown<<< fox..."},
		{"case-insensitive", "Hello World", "world", 10, "Hello >>>World<<<"},
		{"no match short", "abc", "zzz", 10, "abc"},
		{"no match long", "abcdefghij", "zzz", 2, "abcd..."},
		{"multibyte", "İstanbul ve Ankara", "ankara", 3, "...ve >>>Ankara<<<"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, makeSnippet(tt.text, tt.query, tt.ctx))
		})
	}
}

func TestFTSQuery(t *testing.T) {
	assert.Equal(t, `"c++" OR "go"`, ftsQuery("c++ OR go"))
	assert.Equal(t, `"quoted" NOT "x"`, ftsQuery(`"quoted" NOT x`))
	assert.Equal(t, `"say""hi"""`, ftsQuery(`say"hi"`))
}

func TestListAll(t *testing.T) {
	db := buildDB(t)
	results, err := ListAll(db, Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "go", results[0].ConvKey)
	assert.Equal(t, "How do generics work in gpt-4o answers?", results[0].Snippet)
	assert.Equal(t, "user", results[0].Role)
	assert.Equal(t, "trip", results[1].ConvKey)

	results, err = ListAll(db, Options{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = ListAll(db, Options{Since: "2025-06-02"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "go", results[0].ConvKey)
}

func TestListAllMonthAndRole(t *testing.T) {
	db := buildDB(t)
	results, err := ListAll(db, Options{Until: "2025-06-02"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "trip", results[0].ConvKey)
	assert.Equal(t, "gpt-4o", results[0].Model)

	results, err = ListAll(db, Options{Role: "assistant"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = ListAll(db, Options{Role: "tool"})
	require.NoError(t, err)
	assert.Empty(t, results)
}
