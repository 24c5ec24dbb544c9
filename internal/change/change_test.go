package change

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertMap(t *testing.T) {
	m := NewMapping(Span{Start: 5, OldSize: 0, NewSize: 1})

	assert.Equal(t, Insert{At: 3, Text: "a"}, Insert{At: 3, Text: "a"}.Map(m))
	assert.Equal(t, Insert{At: 6, Text: "a"}, Insert{At: 5, Text: "a"}.Map(m), "same offset goes after earlier insert")
	assert.Equal(t, Insert{At: 8, Text: "a"}, Insert{At: 7, Text: "a"}.Map(m))
}

func TestDeleteMap(t *testing.T) {
	t.Run("shifted by earlier insert", func(t *testing.T) {
		m := NewMapping(Span{Start: 0, OldSize: 0, NewSize: 2})
		assert.Equal(t, Delete{From: 5, To: 7}, Delete{From: 3, To: 5}.Map(m))
	})

	t.Run("insert on edges stays outside", func(t *testing.T) {
		m := NewMapping(Span{Start: 3, OldSize: 0, NewSize: 2}, Span{Start: 5, OldSize: 0, NewSize: 1})
		assert.Equal(t, Delete{From: 5, To: 7}, Delete{From: 3, To: 5}.Map(m))
	})

	t.Run("range swallowed collapses", func(t *testing.T) {
		m := NewMapping(Span{Start: 2, OldSize: 6, NewSize: 0})
		assert.Equal(t, Delete{From: 2, To: 2}, Delete{From: 3, To: 5}.Map(m))
	})
}

func TestReplaceMap(t *testing.T) {
	m := NewMapping(Span{Start: 1, OldSize: 2, NewSize: 0})
	got := Replace{From: 4, To: 6, Text: "xy"}.Map(m)
	assert.Equal(t, Replace{From: 2, To: 4, Text: "xy"}, got)
}

func TestMapIdentity(t *testing.T) {
	changes := []Change{
		Insert{At: 1, Text: "é"},
		Delete{From: 2, To: 4},
		Replace{From: 0, To: 1, Text: "z"},
	}
	for _, c := range changes {
		assert.Equal(t, c, c.Map(Identity))
	}
}

func TestMapAll(t *testing.T) {
	m := NewMapping(Span{Start: 0, OldSize: 0, NewSize: 1})
	got := MapAll([]Change{Insert{At: 0, Text: "a"}, Delete{From: 1, To: 2}}, m)
	assert.Equal(t, []Change{Insert{At: 1, Text: "a"}, Delete{From: 2, To: 3}}, got)
}

func TestLengths(t *testing.T) {
	assert.Equal(t, 2, Insert{Text: "hé"}.Len())
	assert.Equal(t, 3, Delete{From: 2, To: 5}.Len())
	assert.Equal(t, -1, Replace{From: 2, To: 5, Text: "ab"}.Delta())
}

func TestString(t *testing.T) {
	assert.Equal(t, `insert(3, "ab")`, Insert{At: 3, Text: "ab"}.String())
	assert.Equal(t, "delete(1..4)", Delete{From: 1, To: 4}.String())
	assert.Equal(t, `replace(0..2, "x")`, Replace{From: 0, To: 2, Text: "x"}.String())
}
