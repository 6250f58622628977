package search

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// 辞書のキー（同義語 → 誤綴りの順）
var dictionaryKeys = func() []string {
	keys := make([]string, 0, len(synonyms)+len(misspellings))
	for _, e := range synonyms {
		keys = append(keys, e.term)
	}
	for _, e := range misspellings {
		keys = append(keys, e.term)
	}
	return keys
}()

// Suggest は同義語・誤綴り・編集距離で近い語を集める。
//
// 誤綴りが入力されたときは正規語とその同義語を返すので、
// "potery" の結果には "pottery" が含まれる。
func Suggest(query string) []string {
	s := strings.ToLower(strings.TrimSpace(query))
	if s == "" {
		return nil
	}

	var out []string

	// 句全体を辞書で引く
	out = append(out, synonymIndex[s]...)
	out = append(out, misspellingIndex[s]...)

	// 誤綴り → 正規語（+その同義語）
	for _, e := range misspellings {
		for _, v := range e.words {
			if v == s {
				out = append(out, e.term)
				out = append(out, synonymIndex[e.term]...)
				break
			}
		}
	}

	words := strings.Fields(s)
	for _, w := range words {
		if len(w) < minTokenLen {
			continue
		}
		out = append(out, synonymIndex[w]...)
		out = append(out, misspellingIndex[w]...)
	}

	// 編集距離（キーが4文字以下なら1、それより長ければ2まで）
	for _, w := range words {
		if len(w) < minTokenLen {
			continue
		}
		for _, key := range dictionaryKeys {
			if matchr.Levenshtein(w, key) <= distanceThreshold(key) {
				out = append(out, synonymIndex[key]...)
				out = append(out, key)
			}
		}
	}

	return dedupe(out)
}

func distanceThreshold(key string) int {
	if len(key) > 4 {
		return 2
	}
	return 1
}
