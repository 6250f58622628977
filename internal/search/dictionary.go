package search

// 辞書は順序付きのスライスで持つ（提案語の並びを安定させるため）
type entry struct {
	term  string
	words []string
}

// 同義語（正規語 → 同義語）
var synonyms = []entry{
	// 陶器
	{"pottery", []string{"ceramic", "clay", "terracotta", "earthenware"}},
	{"ceramic", []string{"pottery", "clay", "terracotta"}},
	{"clay", []string{"pottery", "ceramic", "terracotta"}},
	{"pot", []string{"pottery", "ceramic", "vessel"}},
	{"vase", []string{"pottery", "ceramic", "pot", "vessel"}},

	// 刺繍
	{"embroidery", []string{"needlework", "stitching", "threadwork", "handwork"}},
	{"embroidered", []string{"embroidery", "stitched", "needlework"}},
	{"stitch", []string{"embroidery", "needlework", "sewing"}},
	{"thread", []string{"embroidery", "needlework", "yarn"}},

	// 織物
	{"textile", []string{"fabric", "cloth", "material", "weaving"}},
	{"fabric", []string{"textile", "cloth", "material"}},
	{"cloth", []string{"textile", "fabric", "material"}},
	{"weaving", []string{"textile", "fabric", "handloom"}},
	{"handloom", []string{"weaving", "textile", "fabric"}},

	// ジュート
	{"jute", []string{"fiber", "natural", "eco", "sustainable"}},
	{"fiber", []string{"jute", "natural", "textile"}},

	// 金属
	{"metal", []string{"brass", "copper", "bronze", "iron", "steel"}},
	{"brass", []string{"metal", "bronze", "copper"}},
	{"copper", []string{"metal", "brass", "bronze"}},
	{"bronze", []string{"metal", "brass", "copper"}},

	// 木工
	{"wood", []string{"wooden", "timber", "carved", "handicraft"}},
	{"wooden", []string{"wood", "timber", "carved"}},
	{"carved", []string{"wood", "wooden", "sculpture"}},
	{"carving", []string{"carved", "wood", "sculpture"}},

	// 一般
	{"handicraft", []string{"handcraft", "handicrafts", "handmade"}},
	{"handmade", []string{"handicraft", "handcraft", "artisan"}},
	{"artisan", []string{"craftsman", "handmade", "handicraft"}},
	{"traditional", []string{"classic", "heritage", "cultural"}},

	// ベンガルの工芸
	{"kantha", []string{"embroidery", "quilting", "stitching"}},
	{"dhokra", []string{"metal", "brass", "bronze", "casting"}},
	{"terracotta", []string{"pottery", "clay", "ceramic"}},
	{"jamdani", []string{"textile", "weaving", "fabric", "muslin"}},
	{"nakshi", []string{"embroidery", "decorative", "pattern"}},
}

// よくある綴り間違い（正規語 → 誤綴り）
var misspellings = []entry{
	{"handicraft", []string{"handicraf", "handicrafts", "handycraft", "handiraft"}},
	{"embroidery", []string{"embroidry", "embroydery", "embrodery", "emroidery"}},
	{"pottery", []string{"potery", "poterry", "potary"}},
	{"ceramic", []string{"ceremic", "ceramik", "serramic"}},
	{"traditional", []string{"tradicional", "tradisional", "traditional"}},
	{"artisan", []string{"artizen", "artisian", "artisan"}},
	{"handmade", []string{"handmaid", "hand-made", "handmde"}},
	{"textile", []string{"textil", "textille", "textie"}},
	{"wooden", []string{"wooded", "woden", "woodn"}},
	{"metal", []string{"metall", "meatl", "metel"}},
	{"jute", []string{"jut", "juite", "joot"}},
	{"weaving", []string{"weving", "weavng", "weaving"}},
}

var (
	synonymIndex     = index(synonyms)
	misspellingIndex = index(misspellings)
)

func index(entries []entry) map[string][]string {
	m := make(map[string][]string, len(entries))
	for _, e := range entries {
		m[e.term] = e.words
	}
	return m
}
