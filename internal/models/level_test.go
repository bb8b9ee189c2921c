package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidLevel(t *testing.T) {
	for _, l := range LevelOrder {
		assert.True(t, ValidLevel(l))
	}
	assert.False(t, ValidLevel("D1"))
	assert.False(t, ValidLevel("a1"))
	assert.False(t, ValidLevel(""))
}

func TestLevelList(t *testing.T) {
	list := LevelList()

	require.Len(t, list, 6)
	assert.Equal(t, LevelInfo{Code: LevelA1, Name: "Beginner"}, list[0])
	assert.Equal(t, LevelInfo{Code: LevelC2, Name: "Proficient"}, list[5])

	// List order follows the proficiency ladder
	for i, info := range list {
		assert.Equal(t, LevelOrder[i], info.Code)
	}
}

func TestValidLessonType(t *testing.T) {
	for _, lt := range []LessonType{LessonTypeVocabulary, LessonTypeGrammar, LessonTypeReading, LessonTypeListening} {
		assert.True(t, ValidLessonType(lt))
	}
	assert.False(t, ValidLessonType("speaking"))
	assert.False(t, ValidLessonType(""))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("superuser"))
}
