package search

import (
	"slices"
	"strings"
)

// 音の置き換え規則（この順で適用する）
var soundPatterns = []entry{
	// 母音
	{"a", []string{"e", "u"}},
	{"e", []string{"i", "a"}},
	{"i", []string{"e", "ee"}},
	{"o", []string{"u", "oo"}},
	{"u", []string{"oo", "o"}},

	// 子音
	{"f", []string{"ph", "ff"}},
	{"ph", []string{"f"}},
	{"c", []string{"k", "s"}},
	{"k", []string{"c", "q"}},
	{"ck", []string{"k", "q"}},
	{"s", []string{"c", "ss"}},
	{"t", []string{"tt", "d"}},
	{"d", []string{"t", "dd"}},
	{"th", []string{"t", "d"}},
	{"v", []string{"b", "bh"}},
	{"w", []string{"v"}},
	{"y", []string{"i", "ee"}},

	// ベンガル語由来の音
	{"sh", []string{"s", "ss"}},
	{"ch", []string{"c", "ts"}},
	{"j", []string{"z", "jh"}},
	{"tr", []string{"t"}},
	{"dr", []string{"d"}},

	// 重子音
	{"tt", []string{"t"}},
	{"dd", []string{"d"}},
	{"nn", []string{"n"}},
	{"ss", []string{"s"}},
	{"ll", []string{"l"}},
	{"rr", []string{"r"}},

	// 語尾
	{"er", []string{"ar", "or"}},
	{"or", []string{"er", "ar"}},
	{"ar", []string{"er", "or"}},
	{"ry", []string{"ri", "ree"}},
	{"ing", []string{"in", "een"}},

	// 工芸の単語
	{"craft", []string{"kraft", "craff"}},
	{"hand", []string{"hund", "hend"}},
	{"wood", []string{"vood", "ud"}},
	{"metal", []string{"metl", "mettle"}},
	{"clay", []string{"klay", "kley"}},
	{"silk", []string{"silq", "silc"}},
	{"jute", []string{"joot", "jutt"}},
	{"weave", []string{"veev", "weev"}},

	// ベンガルの工芸名
	{"kantha", []string{"kanta", "kuntha"}},
	{"nakshi", []string{"nokshi", "naksi"}},
	{"jamdani", []string{"jamdoni", "jamdanee"}},
	{"dhokra", []string{"dokra", "dhokora"}},
	{"terracotta", []string{"teracota", "terrakota"}},
}

// 綴りの揺れのグループ。検索語がグループに含まれれば残りを候補にする
var craftVariations = [][]string{
	{"embroidery", "embroidry", "embrodery", "embroydery"},
	{"ceramic", "seramic", "ceramik", "seramik"},
	{"pottery", "potery", "potry", "pottry"},
	{"textile", "textil", "textyle", "texstyle"},
	{"weaving", "weving", "weeving", "veaving"},
	{"handicraft", "handycraft", "handikraft", "handycraft"},
	{"traditional", "tradisional", "tradishanal", "tradishonal"},
	{"kantha", "kanta", "kantha", "kuntha"},
	{"nakshi", "nakshi", "nokshi", "naqshi"},
	{"jamdani", "jamdoni", "jamdanee", "jamdoney"},
	{"dhokra", "dokra", "dhokora", "dokora"},
	{"terracotta", "teracota", "terakota", "terrakota"},
}

// 発音が近い綴りのグループ
var pronunciationGroups = [][]string{
	{"a", "ah", "ar"},
	{"e", "ee", "ea"},
	{"i", "ee", "ea"},
	{"o", "oh", "ow"},
	{"u", "oo", "ou"},
	{"f", "ph", "ff"},
	{"k", "c", "ch"},
	{"s", "c", "ss"},
	{"t", "tt", "th"},
	{"sh", "ch", "ss"},
	{"sh", "s", "ss"},
	{"ch", "c", "ts"},
	{"j", "z", "jh"},
	{"v", "b", "bh"},
	{"w", "v", "u"},
}

// SoundAlikes は発音の近い綴りの候補を返す（重複・空文字は除く）。
// 入力は小文字化して扱う。
func SoundAlikes(query string) []string {
	s := strings.ToLower(strings.TrimSpace(query))
	if s == "" {
		return nil
	}

	var out []string

	// 1. 句全体の置き換え
	for _, p := range soundPatterns {
		if !strings.Contains(s, p.term) {
			continue
		}
		for _, v := range p.words {
			out = append(out, strings.ReplaceAll(s, p.term, v))
		}
	}

	// 2. 単語ごとの置き換えを句に戻す
	for _, w := range strings.Fields(s) {
		if len(w) < 3 {
			continue
		}
		for _, p := range soundPatterns {
			if !strings.Contains(w, p.term) {
				continue
			}
			for _, v := range p.words {
				nw := strings.ReplaceAll(w, p.term, v)
				if nw != w {
					out = append(out, strings.ReplaceAll(s, w, nw))
				}
			}
		}
	}

	// 3. 工芸名の綴り揺れ
	for _, group := range craftVariations {
		if !slices.Contains(group, s) {
			continue
		}
		for _, v := range group {
			if v != s {
				out = append(out, v)
			}
		}
	}

	// 4. 発音グループ内での置き換え
	for _, group := range pronunciationGroups {
		for _, sound := range group {
			if !strings.Contains(s, sound) {
				continue
			}
			for _, other := range group {
				if other != sound {
					out = append(out, strings.ReplaceAll(s, sound, other))
				}
			}
		}
	}

	return dedupe(out)
}

// 最初の出現を残して重複を除く。空文字も除く
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
