package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_PutGet(t *testing.T) {
	record := NewRecord()
	assert.False(t, record.Has("path"))
	assert.Nil(t, record.FirstValue("path"))
	assert.Nil(t, record.Get("path"))

	record.Put("path", "/a/b.csv")
	record.Put("tag", "x")
	record.Put("tag", "y")

	assert.True(t, record.Has("path"))
	assert.Equal(t, "/a/b.csv", record.FirstValue("path"))
	assert.Equal(t, []interface{}{"x", "y"}, record.Get("tag"))
	assert.Equal(t, []string{"path", "tag"}, record.Fields(), "insertion order is preserved")
}

func TestRecord_Replace(t *testing.T) {
	record := NewRecord()
	record.Put("tag", "x")
	record.Put("tag", "y")
	record.Replace("tag", "z")
	assert.Equal(t, []interface{}{"z"}, record.Get("tag"))

	record.Replace("fresh", 1)
	assert.Equal(t, []string{"tag", "fresh"}, record.Fields())
}

func TestRecord_Remove(t *testing.T) {
	record := NewRecord()
	record.Put("a", 1)
	record.Put("b", 2)
	record.Remove("a")
	assert.False(t, record.Has("a"))
	assert.Equal(t, []string{"b"}, record.Fields())
	record.Remove("missing")
	assert.Equal(t, []string{"b"}, record.Fields())
}

func TestRecord_Clone(t *testing.T) {
	record := NewRecord()
	record.Put("path", "/a/b.csv")
	record.Put("tag", "x")

	clone := record.Clone()
	clone.Replace("tag", "y")
	clone.Put("extra", true)

	assert.Equal(t, []interface{}{"x"}, record.Get("tag"), "clone mutation does not leak")
	assert.False(t, record.Has("extra"))
	assert.Equal(t, "/a/b.csv", clone.FirstValue("path"))
}

func TestRecord_String(t *testing.T) {
	record := NewRecord()
	record.Put("path", "/a/b.csv")
	record.Put("tag", "x")
	assert.Equal(t, "{path=[/a/b.csv], tag=[x]}", record.String())
}
