package search_test

import (
	"testing"

	"handicrafts/internal/search"

	"github.com/stretchr/testify/assert"
)

func TestSuggest_Misspelling(t *testing.T) {
	got := search.Suggest("potery")

	assert.Equal(t, []string{"pottery", "ceramic", "clay", "terracotta", "earthenware"}, got[:5])
}

func TestSuggest_CanonicalTerm(t *testing.T) {
	got := search.Suggest("Pottery ")

	assert.Equal(t, []string{"ceramic", "clay", "terracotta", "earthenware", "potery", "poterry", "potary"}, got[:7])
	assert.Contains(t, got, "pottery")
}

func TestSuggest_PerWord(t *testing.T) {
	got := search.Suggest("clay vase")

	assert.Contains(t, got, "vessel")
	assert.Contains(t, got, "terracotta")
	assert.Contains(t, got, "clay")
	assert.Contains(t, got, "vase")
}

func TestSuggest_EditDistanceThreshold(t *testing.T) {
	// 5文字以上のキーは距離2まで
	assert.Contains(t, search.Suggest("metl"), "metal")
	assert.Contains(t, search.Suggest("embroidey"), "embroidery")

	// 4文字以下のキーは距離1まで: jot→pot は1、jot→jute は2
	got := search.Suggest("jot")
	assert.Contains(t, got, "pot")
	assert.NotContains(t, got, "jute")
}

func TestSuggest_NoMatch(t *testing.T) {
	assert.Empty(t, search.Suggest("xyzzy"))
	assert.Empty(t, search.Suggest(""))
}

func TestSuggest_NoDuplicates(t *testing.T) {
	got := search.Suggest("pottery ceramic clay")
	seen := map[string]bool{}
	for _, s := range got {
		assert.False(t, seen[s], "duplicate %q", s)
		seen[s] = true
	}
}

func TestSoundAlikes(t *testing.T) {
	got := search.SoundAlikes("Clay")
	assert.Equal(t, []string{"cley", "cluy", "klay", "slay", "clai"}, got[:5])

	assert.Contains(t, search.SoundAlikes("potery"), "pottery")
	assert.Contains(t, search.SoundAlikes("kantha"), "kuntha")
	assert.Empty(t, search.SoundAlikes(" "))
}
