// Package search は商品検索の語を展開する。
//
// 入力された語から、部分一致・単語ごとの一致・音の近さ（SOUNDEX / metaphone）・
// 同義語と誤綴りの辞書を使ったOR条件の一覧を作る。結果はSQL断片と位置パラメータで、
// 呼び出し側が OR で連結して WHERE に入れる。全文検索のインデックスは使わない。
package search

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
)

// 音声照合の方言
type Phonetic int

const (
	// SOUNDEXなどを使わない（sqlite）
	PhoneticNone Phonetic = iota
	// SOUNDEX() と SOUNDS LIKE
	PhoneticMySQL
	// fuzzystrmatch の soundex()
	PhoneticPostgres
)

// gormのdialector名から決める
func PhoneticFor(dialect string) Phonetic {
	switch dialect {
	case "mysql":
		return PhoneticMySQL
	case "postgres":
		return PhoneticPostgres
	default:
		return PhoneticNone
	}
}

type Options struct {
	Phonetic Phonetic
}

// Expansion は OR で結合する条件と、その位置パラメータ、提案語。
type Expansion struct {
	Conditions []string
	Params     []any
	// 「もしかして」用の語
	Suggestions []string
}

const (
	// 音声照合をするのは単語数がこれ未満のとき
	phoneticMaxWords = 5
	// 単語ごとのSOUNDEXは単語数がこれ以下のとき
	perWordSoundexMaxWords = 3
	// 音の近い綴りは先頭からこの数だけ使う
	soundAlikeLimit = 5
	minTokenLen     = 3
)

var (
	// 部分一致の対象（p: products, c: categories, a: artisans）
	likeFields = []string{"p.name", "p.description", "p.short_description", "c.name", "a.name"}
	// 同義語は商品の文言だけ
	textFields = []string{"p.name", "p.description", "p.short_description"}
	// 句全体のSOUNDEX
	soundexFields = []string{"p.name", "c.name", "a.name", "p.description", "p.short_description"}
	// 名前だけ（説明文は重いので除外）
	nameFields = []string{"p.name", "c.name", "a.name"}
)

// Expand は検索語を条件の集合に展開する。空の入力なら空を返す。失敗はしない。
func Expand(query string, opts Options) Expansion {
	q := strings.TrimSpace(query)
	var ex Expansion
	if q == "" {
		return ex
	}

	words := strings.Fields(q)

	// 1. 句全体の部分一致
	ex.addLike(likeFields, q)

	// 2. 単語ごとの部分一致
	for _, w := range words {
		if len(w) >= minTokenLen {
			ex.addLike(likeFields, w)
		}
	}

	// 3. 音の近さ
	if len(words) < phoneticMaxWords {
		ex.addPhonetic(q, words, opts.Phonetic)

		for i, pat := range SoundAlikes(q) {
			if i >= soundAlikeLimit {
				break
			}
			like := "%" + pat + "%"
			ex.Conditions = append(ex.Conditions, "(LOWER(p.name) LIKE ? OR LOWER(p.short_description) LIKE ?)")
			ex.Params = append(ex.Params, like, like)
		}
	}

	// 4. 同義語・誤綴り
	ex.Suggestions = Suggest(q)
	for _, s := range ex.Suggestions {
		ex.addLike(textFields, s)
	}

	return ex
}

func (ex *Expansion) addLike(fields []string, term string) {
	like := "%" + term + "%"
	for _, f := range fields {
		ex.Conditions = append(ex.Conditions, "LOWER("+f+") LIKE LOWER(?)")
		ex.Params = append(ex.Params, like)
	}
}

func (ex *Expansion) addSoundex(fields []string, term string, dialect Phonetic) {
	fn := "SOUNDEX"
	if dialect == PhoneticPostgres {
		fn = "soundex"
	}
	for _, f := range fields {
		ex.Conditions = append(ex.Conditions, fmt.Sprintf("%s(%s) = %s(?)", fn, f, fn))
		ex.Params = append(ex.Params, term)
	}
}

func (ex *Expansion) addPhonetic(q string, words []string, dialect Phonetic) {
	if dialect == PhoneticNone {
		return
	}

	ex.addSoundex(soundexFields, q, dialect)

	// 先頭部分の音の比較（metaphoneのキー長ぶん）
	key, _ := matchr.DoubleMetaphone(q)
	if n := len(key); n > 0 {
		for _, f := range nameFields {
			var cond string
			if dialect == PhoneticPostgres {
				cond = fmt.Sprintf("soundex(substring(%s from 1 for %d)) = soundex(?)", f, n)
			} else {
				cond = fmt.Sprintf("SUBSTRING(%s, 1, %d) SOUNDS LIKE ?", f, n)
			}
			ex.Conditions = append(ex.Conditions, cond)
			ex.Params = append(ex.Params, key)
		}
	}

	if len(words) > perWordSoundexMaxWords {
		return
	}
	for _, w := range words {
		if len(w) >= minTokenLen {
			ex.addSoundex(nameFields, w, dialect)
		}
	}
}
