package db

import (
	"context"
	"time"

	"handicrafts/internal/domain/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedConfig はデモ用データの設定
type SeedConfig struct {
	// 空ならデモユーザーは作らない
	DemoEmail        string
	DemoPasswordHash string
	BatchSize        int
}

type seedProduct struct {
	name, short, desc string
	price, original   int64
	discount          int
	stock             int64
	category, artisan int // seedCategories / seedArtisans の添字
	image             string
}

var (
	seedCategories = []model.Category{
		{Name: "Pottery & Terracotta", Description: "Wheel-thrown and hand-built clay work from riverside villages"},
		{Name: "Nakshi Kantha", Description: "Layered quilts and wraps with running-stitch embroidery"},
		{Name: "Jamdani & Handloom", Description: "Fine muslin and handloom textiles"},
		{Name: "Jute Crafts", Description: "Bags, rugs and home goods woven from golden fibre"},
		{Name: "Metal & Dhokra", Description: "Lost-wax brass casting and hammered copperware"},
		{Name: "Wood Carving", Description: "Carved mango and teak wood decor"},
	}

	seedArtisans = []model.Artisan{
		{Name: "Rahima Begum", Bio: "Third-generation kantha stitcher leading a women's cooperative.", Location: "Jessore", Speciality: "Nakshi kantha embroidery", Image: "images/artisans/rahima.jpg"},
		{Name: "Gopal Pal", Bio: "Potter working with river clay and open-fire kilns.", Location: "Rayer Bazar, Dhaka", Speciality: "Terracotta and pottery", Image: "images/artisans/gopal.jpg"},
		{Name: "Abdul Karim", Bio: "Master weaver of Dhakai jamdani on pit looms.", Location: "Rupganj, Narayanganj", Speciality: "Jamdani weaving", Image: "images/artisans/karim.jpg"},
		{Name: "Shapla Jute Collective", Bio: "Rural collective turning jute into everyday goods.", Location: "Rangpur", Speciality: "Jute weaving", Image: "images/artisans/shapla.jpg"},
		{Name: "Dhiren Karmakar", Bio: "Dhokra caster using the lost-wax method.", Location: "Bogura", Speciality: "Dhokra brass casting", Image: "images/artisans/dhiren.jpg"},
		{Name: "Mithu Sutradhar", Bio: "Wood carver known for floral relief panels.", Location: "Khulna", Speciality: "Wood carving", Image: "images/artisans/mithu.jpg"},
	}

	seedProducts = []seedProduct{
		{"Terracotta Flower Vase", "Hand-burnished terracotta vase", "Tall vase shaped on the wheel and burnished with river stone before firing.", 850, 1000, 15, 25, 0, 1, "images/products/terracotta-vase.jpg"},
		{"Clay Water Pitcher", "Traditional pottery kolshi", "Porous clay pitcher that keeps water cool in summer.", 650, 0, 0, 40, 0, 1, "images/products/clay-pitcher.jpg"},
		{"Ceramic Tea Set", "Glazed ceramic cups and pot", "Six cups and a teapot finished in a deep indigo glaze.", 2400, 2800, 14, 10, 0, 1, "images/products/ceramic-tea-set.jpg"},
		{"Nakshi Kantha Bedspread", "Embroidered cotton quilt", "Double bedspread stitched by hand over three months with village motifs.", 5500, 6500, 15, 5, 1, 0, "images/products/kantha-bedspread.jpg"},
		{"Kantha Stitch Cushion Cover", "Hand embroidery cushion", "Recycled sari layers with running stitch embroidery.", 750, 0, 0, 60, 1, 0, "images/products/kantha-cushion.jpg"},
		{"Dhakai Jamdani Saree", "Handwoven muslin saree", "Fine count cotton saree woven with floating motifs on a pit loom.", 12500, 14000, 11, 3, 2, 2, "images/products/jamdani-saree.jpg"},
		{"Handloom Cotton Gamchha", "Checked handloom towel", "Soft handloom textile towel in traditional red checks.", 350, 0, 0, 120, 2, 2, "images/products/gamchha.jpg"},
		{"Jute Tote Bag", "Eco-friendly jute bag", "Sturdy natural fiber tote with cotton handles.", 450, 0, 0, 80, 3, 3, "images/products/jute-tote.jpg"},
		{"Jute Area Rug", "Braided jute rug", "Round braided rug in natural and dyed jute.", 3200, 3600, 11, 12, 3, 3, "images/products/jute-rug.jpg"},
		{"Dhokra Elephant Figurine", "Lost-wax brass elephant", "Brass elephant cast with the dhokra method, each one unique.", 2900, 0, 0, 8, 4, 4, "images/products/dhokra-elephant.jpg"},
		{"Hammered Copper Jug", "Handmade copper jug", "Hammered copper jug with brass handle.", 2100, 2500, 16, 15, 4, 4, "images/products/copper-jug.jpg"},
		{"Carved Wooden Wall Panel", "Floral wood carving", "Mango wood panel carved in deep floral relief.", 4200, 0, 0, 6, 5, 5, "images/products/wood-panel.jpg"},
		{"Wooden Jewelry Box", "Carved teak box", "Small teak box with carved lid and brass hinges.", 1500, 1800, 17, 20, 5, 5, "images/products/wood-box.jpg"},
	}
)

// Seed はカテゴリ・職人・商品（+デモユーザー）を入れる。既にあれば何もしない。
func Seed(ctx context.Context, gdb *gorm.DB, cfg SeedConfig) error {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.Category{}).Count(&existing).Error; err != nil {
			return err
		}
		if existing == 0 {
			if err := seedCatalog(tx, cfg.BatchSize); err != nil {
				return err
			}
		}
		if cfg.DemoEmail == "" {
			return nil
		}
		return seedDemoUser(tx, cfg)
	})
}

func seedCatalog(tx *gorm.DB, batchSize int) error {
	categories := append([]model.Category(nil), seedCategories...)
	if err := tx.Create(&categories).Error; err != nil {
		return err
	}
	artisans := append([]model.Artisan(nil), seedArtisans...)
	if err := tx.Create(&artisans).Error; err != nil {
		return err
	}

	// created_atをずらして「新しい順」が決まるようにする
	base := time.Now().Add(-time.Duration(len(seedProducts)) * time.Hour)
	products := make([]model.Product, 0, len(seedProducts))
	for i, sp := range seedProducts {
		p := model.Product{
			Name:               sp.name,
			Description:        sp.desc,
			ShortDescription:   sp.short,
			Price:              decimal.NewFromInt(sp.price),
			DiscountPercentage: sp.discount,
			Image:              sp.image,
			StockQuantity:      sp.stock,
			CategoryID:         categories[sp.category].ID,
			ArtisanID:          artisans[sp.artisan].ID,
			Status:             model.ProductStatusActive,
			CreatedAt:          base.Add(time.Duration(i) * time.Hour),
		}
		if sp.original > 0 {
			p.OriginalPrice = decimal.NewNullDecimal(decimal.NewFromInt(sp.original))
		}
		products = append(products, p)
	}
	return tx.CreateInBatches(&products, batchSize).Error
}

func seedDemoUser(tx *gorm.DB, cfg SeedConfig) error {
	var count int64
	if err := tx.Model(&model.User{}).Where("email = ?", cfg.DemoEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Create(&model.User{
		FirstName:     "Demo",
		LastName:      "Customer",
		Email:         cfg.DemoEmail,
		Password:      cfg.DemoPasswordHash,
		OAuthProvider: model.OAuthProviderLocal,
		Status:        model.UserStatusActive,
	}).Error
}
