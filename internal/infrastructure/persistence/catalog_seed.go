package persistence

import (
	"fmt"

	"github.com/satyaprakrati/cozico/internal/domain/catalog"
	"github.com/satyaprakrati/cozico/internal/domain/shared/valueobject"
)

const assetBaseURL = "https://cdn.cozico.com"

var (
	white = catalog.Color{Name: "White", Hex: "#FFFFFF"}
	black = catalog.Color{Name: "Black", Hex: "#1A1A1A"}
	navy  = catalog.Color{Name: "Navy", Hex: "#1B2A4A"}
	olive = catalog.Color{Name: "Olive", Hex: "#556B2F"}
	grey  = catalog.Color{Name: "Grey", Hex: "#808080"}
	brown = catalog.Color{Name: "Brown", Hex: "#6B4226"}
	beige = catalog.Color{Name: "Beige", Hex: "#D8C8A8"}
	blue  = catalog.Color{Name: "Blue", Hex: "#3A6EA5"}
)

var (
	apparelSizes = []string{"S", "M", "L", "XL", "XXL"}
	waistSizes   = []string{"28", "30", "32", "34", "36", "38"}
	suitSizes    = []string{"38", "40", "42", "44", "46"}
	shoeSizes    = []string{"7", "8", "9", "10", "11", "12"}
)

func productImage(id string) string {
	return fmt.Sprintf("%s/products/%s/1.jpg", assetBaseURL, id)
}

func productGallery(id string, n int) []string {
	images := make([]string, n)
	for i := range images {
		images[i] = fmt.Sprintf("%s/products/%s/%d.jpg", assetBaseURL, id, i+1)
	}
	return images
}

func markdown(v int64) *valueobject.Money {
	m := valueobject.Rupees(v)
	return &m
}

// seedTaxonomy is the storefront category tree, in menu order
func seedTaxonomy() catalog.Taxonomy {
	return catalog.Taxonomy{Departments: []catalog.Department{
		{
			ID: "clothing", Name: "Clothing", Image: assetBaseURL + "/categories/clothing.jpg",
			Subcategories: []catalog.Subcategory{
				{ID: "shirts", Name: "Shirts", Parent: "clothing"},
				{ID: "t-shirts", Name: "T-Shirts", Parent: "clothing"},
				{ID: "pants", Name: "Pants", Parent: "clothing"},
				{ID: "shorts", Name: "Shorts", Parent: "clothing"},
				{ID: "joggers", Name: "Joggers", Parent: "clothing"},
			},
		},
		{
			ID: "suits", Name: "Suits", Image: assetBaseURL + "/categories/suits.jpg",
			Subcategories: []catalog.Subcategory{
				{ID: "wedding-suits", Name: "Wedding Suits", Parent: "suits"},
				{ID: "office-suits", Name: "Office Suits", Parent: "suits"},
				{ID: "casual-suits", Name: "Casual Suits", Parent: "suits"},
			},
		},
		{
			ID: "shoes", Name: "Shoes", Image: assetBaseURL + "/categories/shoes.jpg",
			Subcategories: []catalog.Subcategory{
				{ID: "formal-shoes", Name: "Formal Shoes", Parent: "shoes"},
				{ID: "sneakers", Name: "Sneakers", Parent: "shoes"},
				{ID: "loafers", Name: "Loafers", Parent: "shoes"},
				{ID: "sports-shoes", Name: "Sports Shoes", Parent: "shoes"},
			},
		},
	}}
}

// collectionSeed lists collection members by product ID
type collectionSeed struct {
	catalog.Collection
	productIDs []string
}

func seedCollections() []collectionSeed {
	return []collectionSeed{
		{
			Collection: catalog.Collection{
				ID:          "wedding",
				Name:        "Wedding Collection",
				Description: "Make your special day unforgettable with our exquisite wedding wear",
				Image:       assetBaseURL + "/collections/wedding.jpg",
			},
			productIDs: []string{"velvet-tuxedo-suit", "ivory-three-piece-suit", "leather-derby-shoes", "oxford-brogues", "tassel-loafers"},
		},
		{
			Collection: catalog.Collection{
				ID:          "office",
				Name:        "Office Essentials",
				Description: "Sharp, polished looks for the modern professional",
				Image:       assetBaseURL + "/collections/office.jpg",
			},
			productIDs: []string{"charcoal-office-suit", "navy-pinstripe-suit", "classic-oxford-shirt", "slim-fit-formal-shirt", "tailored-trousers", "leather-derby-shoes"},
		},
		{
			Collection: catalog.Collection{
				ID:          "casual",
				Name:        "Weekend Casuals",
				Description: "Relaxed styles for off-duty days",
				Image:       assetBaseURL + "/collections/casual.jpg",
			},
			productIDs: []string{"linen-casual-suit", "linen-casual-shirt", "essential-crew-tee", "tech-fleece-joggers", "cargo-shorts", "minimal-white-sneakers", "suede-penny-loafers"},
		},
	}
}

// seedProducts is the compiled-in catalog in featured order
func seedProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID: "classic-oxford-shirt", Name: "Classic Oxford Shirt",
			Category: "Clothing", Subcategory: "Shirts",
			Price: valueobject.Rupees(1899), OriginalPrice: markdown(2499),
			Image: productImage("classic-oxford-shirt"), Images: productGallery("classic-oxford-shirt", 3),
			Rating: 4.8, Reviews: 324,
			Sizes: apparelSizes, Colors: []catalog.Color{white, blue, navy},
			Description: "A wardrobe staple in soft cotton oxford with a button-down collar.",
			InStock:     true, Badge: catalog.BadgeBestSeller,
		},
		{
			ID: "linen-casual-shirt", Name: "Linen Casual Shirt",
			Category: "Clothing", Subcategory: "Shirts",
			Price: valueobject.Rupees(2199), OriginalPrice: markdown(2999),
			Image: productImage("linen-casual-shirt"), Images: productGallery("linen-casual-shirt", 2),
			Rating: 4.6, Reviews: 189,
			Sizes: []string{"S", "M", "L", "XL"}, Colors: []catalog.Color{beige, white, olive},
			Description: "Breathable pure linen cut for a relaxed fit.",
			InStock:     true, Badge: catalog.BadgeNewArrival,
		},
		{
			ID: "slim-fit-formal-shirt", Name: "Slim Fit Formal Shirt",
			Category: "Clothing", Subcategory: "Shirts",
			Price:  valueobject.Rupees(1599),
			Image:  productImage("slim-fit-formal-shirt"),
			Rating: 4.5, Reviews: 256,
			Sizes: apparelSizes, Colors: []catalog.Color{white, black, navy},
			Description: "Crisp poplin with a tailored slim silhouette.",
			InStock:     true,
		},
		{
			ID: "essential-crew-tee", Name: "Essential Crew Neck Tee",
			Category: "Clothing", Subcategory: "T-Shirts",
			Price: valueobject.Rupees(799), OriginalPrice: markdown(999),
			Image: productImage("essential-crew-tee"), Images: productGallery("essential-crew-tee", 3),
			Rating: 4.7, Reviews: 512,
			Sizes: apparelSizes, Colors: []catalog.Color{white, black, navy, grey},
			Description: "Heavyweight combed cotton tee that keeps its shape.",
			InStock:     true, Badge: catalog.BadgeBestSeller,
		},
		{
			ID: "graphic-print-tee", Name: "Graphic Print Tee",
			Category: "Clothing", Subcategory: "T-Shirts",
			Price:  valueobject.Rupees(999),
			Image:  productImage("graphic-print-tee"),
			Rating: 4.3, Reviews: 143,
			Sizes: []string{"S", "M", "L", "XL"}, Colors: []catalog.Color{black, white},
			Description: "Soft-hand screen print on a relaxed cotton tee.",
			InStock:     true, Badge: catalog.BadgeTrending,
		},
		{
			ID: "pique-polo-tshirt", Name: "Pique Polo T-Shirt",
			Category: "Clothing", Subcategory: "T-Shirts",
			Price: valueobject.Rupees(1299), OriginalPrice: markdown(1699),
			Image:  productImage("pique-polo-tshirt"),
			Rating: 4.5, Reviews: 208,
			Sizes: apparelSizes, Colors: []catalog.Color{navy, olive, white},
			Description: "Classic two-button polo in textured pique.",
			InStock:     true,
		},
		{
			ID: "stretch-chino-pants", Name: "Stretch Chino Pants",
			Category: "Clothing", Subcategory: "Pants",
			Price: valueobject.Rupees(2499), OriginalPrice: markdown(3299),
			Image: productImage("stretch-chino-pants"), Images: productGallery("stretch-chino-pants", 2),
			Rating: 4.6, Reviews: 278,
			Sizes: waistSizes, Colors: []catalog.Color{beige, navy, olive, black},
			Description: "Four-way stretch chinos that move with you.",
			InStock:     true, Badge: catalog.BadgeBestSeller,
		},
		{
			ID: "tailored-trousers", Name: "Tailored Formal Trousers",
			Category: "Clothing", Subcategory: "Pants",
			Price:  valueobject.Rupees(2799),
			Image:  productImage("tailored-trousers"),
			Rating: 4.4, Reviews: 132,
			Sizes: []string{"30", "32", "34", "36", "38", "40"}, Colors: []catalog.Color{grey, black, navy},
			Description: "Flat-front trousers in a wool-blend suiting fabric.",
			InStock:     true,
		},
		{
			ID: "cargo-shorts", Name: "Utility Cargo Shorts",
			Category: "Clothing", Subcategory: "Shorts",
			Price: valueobject.Rupees(1299), OriginalPrice: markdown(1599),
			Image:  productImage("cargo-shorts"),
			Rating: 4.2, Reviews: 96,
			Sizes: []string{"28", "30", "32", "34", "36"}, Colors: []catalog.Color{olive, beige, black},
			Description: "Cotton twill shorts with roomy cargo pockets.",
			InStock:     true,
		},
		{
			ID: "denim-shorts", Name: "Washed Denim Shorts",
			Category: "Clothing", Subcategory: "Shorts",
			Price:  valueobject.Rupees(1499),
			Image:  productImage("denim-shorts"),
			Rating: 4.1, Reviews: 74,
			Sizes: []string{"28", "30", "32", "34", "36"}, Colors: []catalog.Color{blue, black},
			Description: "Mid-wash denim shorts with a clean hem.",
			InStock:     false,
		},
		{
			ID: "tech-fleece-joggers", Name: "Tech Fleece Joggers",
			Category: "Clothing", Subcategory: "Joggers",
			Price: valueobject.Rupees(1999), OriginalPrice: markdown(2499),
			Image: productImage("tech-fleece-joggers"), Images: productGallery("tech-fleece-joggers", 2),
			Rating: 4.7, Reviews: 301,
			Sizes: apparelSizes, Colors: []catalog.Color{black, grey, navy},
			Description: "Lightweight fleece joggers with tapered legs and zip pockets.",
			InStock:     true, Badge: catalog.BadgeTrending,
		},
		{
			ID: "classic-sweat-joggers", Name: "Classic Sweat Joggers",
			Category: "Clothing", Subcategory: "Joggers",
			Price:  valueobject.Rupees(1499),
			Image:  productImage("classic-sweat-joggers"),
			Rating: 4.3, Reviews: 118,
			Sizes: []string{"S", "M", "L", "XL"}, Colors: []catalog.Color{grey, black},
			Description: "Brushed-back cotton joggers for everyday comfort.",
			InStock:     true,
		},
		{
			ID: "velvet-tuxedo-suit", Name: "Velvet Tuxedo Wedding Suit",
			Category: "Suits", Subcategory: "Wedding Suits",
			Price: valueobject.Rupees(24999), OriginalPrice: markdown(32999),
			Image: productImage("velvet-tuxedo-suit"), Images: productGallery("velvet-tuxedo-suit", 4),
			Rating: 4.9, Reviews: 87,
			Sizes: suitSizes, Colors: []catalog.Color{black, navy},
			Description: "Rich velvet tuxedo with satin peak lapels, made for the big day.",
			InStock:     true, Badge: catalog.BadgeBestSeller,
		},
		{
			ID: "ivory-three-piece-suit", Name: "Ivory Three-Piece Wedding Suit",
			Category: "Suits", Subcategory: "Wedding Suits",
			Price: valueobject.Rupees(29999), OriginalPrice: markdown(34999),
			Image: productImage("ivory-three-piece-suit"), Images: productGallery("ivory-three-piece-suit", 3),
			Rating: 4.8, Reviews: 54,
			Sizes: []string{"38", "40", "42", "44"}, Colors: []catalog.Color{beige, white},
			Description: "Jacket, waistcoat and trousers in an ivory wool blend.",
			InStock:     true, Badge: catalog.BadgeNewArrival,
		},
		{
			ID: "charcoal-office-suit", Name: "Charcoal Two-Piece Office Suit",
			Category: "Suits", Subcategory: "Office Suits",
			Price: valueobject.Rupees(14999), OriginalPrice: markdown(18999),
			Image: productImage("charcoal-office-suit"), Images: productGallery("charcoal-office-suit", 3),
			Rating: 4.7, Reviews: 162,
			Sizes: suitSizes, Colors: []catalog.Color{grey, black, navy},
			Description: "A sharp single-breasted suit for the working week.",
			InStock:     true, Badge: catalog.BadgeBestSeller,
		},
		{
			ID: "navy-pinstripe-suit", Name: "Navy Pinstripe Suit",
			Category: "Suits", Subcategory: "Office Suits",
			Price:  valueobject.Rupees(16999),
			Image:  productImage("navy-pinstripe-suit"),
			Rating: 4.5, Reviews: 98,
			Sizes: []string{"38", "40", "42", "44"}, Colors: []catalog.Color{navy},
			Description: "Subtle pinstripes on a structured navy cloth.",
			InStock:     true,
		},
		{
			ID: "linen-casual-suit", Name: "Linen Casual Suit",
			Category: "Suits", Subcategory: "Casual Suits",
			Price: valueobject.Rupees(11999), OriginalPrice: markdown(14999),
			Image: productImage("linen-casual-suit"), Images: productGallery("linen-casual-suit", 2),
			Rating: 4.4, Reviews: 61,
			Sizes: []string{"38", "40", "42", "44"}, Colors: []catalog.Color{beige, olive, blue},
			Description: "Unstructured linen suit for summer events.",
			InStock:     true, Badge: catalog.BadgeTrending,
		},
		{
			ID: "leather-derby-shoes", Name: "Leather Derby Shoes",
			Category: "Shoes", Subcategory: "Formal Shoes",
			Price: valueobject.Rupees(4999), OriginalPrice: markdown(6499),
			Image: productImage("leather-derby-shoes"), Images: productGallery("leather-derby-shoes", 3),
			Rating: 4.8, Reviews: 203,
			Sizes: shoeSizes, Colors: []catalog.Color{black, brown},
			Description: "Full-grain leather derbies on a Goodyear-welted sole.",
			InStock:     true, Badge: catalog.BadgeBestSeller,
		},
		{
			ID: "oxford-brogues", Name: "Oxford Brogues",
			Category: "Shoes", Subcategory: "Formal Shoes",
			Price:  valueobject.Rupees(5499),
			Image:  productImage("oxford-brogues"),
			Rating: 4.6, Reviews: 117,
			Sizes: []string{"7", "8", "9", "10", "11"}, Colors: []catalog.Color{brown, black},
			Description: "Wingtip brogues with hand-punched detailing.",
			InStock:     true,
		},
		{
			ID: "minimal-white-sneakers", Name: "Minimal White Sneakers",
			Category: "Shoes", Subcategory: "Sneakers",
			Price: valueobject.Rupees(3499), OriginalPrice: markdown(4299),
			Image: productImage("minimal-white-sneakers"), Images: productGallery("minimal-white-sneakers", 3),
			Rating: 4.7, Reviews: 389,
			Sizes: shoeSizes, Colors: []catalog.Color{white, black},
			Description: "Clean leather low-tops that go with everything.",
			InStock:     true, Badge: catalog.BadgeTrending,
		},
		{
			ID: "retro-runner-sneakers", Name: "Retro Runner Sneakers",
			Category: "Shoes", Subcategory: "Sneakers",
			Price:  valueobject.Rupees(2999),
			Image:  productImage("retro-runner-sneakers"),
			Rating: 4.3, Reviews: 142,
			Sizes: []string{"7", "8", "9", "10", "11"}, Colors: []catalog.Color{grey, navy, white},
			Description: "Suede and mesh runners with a vintage sole.",
			InStock:     true, Badge: catalog.BadgeNewArrival,
		},
		{
			ID: "suede-penny-loafers", Name: "Suede Penny Loafers",
			Category: "Shoes", Subcategory: "Loafers",
			Price: valueobject.Rupees(3999), OriginalPrice: markdown(4999),
			Image:  productImage("suede-penny-loafers"),
			Rating: 4.6, Reviews: 156,
			Sizes: []string{"7", "8", "9", "10", "11"}, Colors: []catalog.Color{brown, beige, navy},
			Description: "Soft suede loafers with a hand-sewn apron toe.",
			InStock:     true,
		},
		{
			ID: "tassel-loafers", Name: "Tassel Leather Loafers",
			Category: "Shoes", Subcategory: "Loafers",
			Price:  valueobject.Rupees(4499),
			Image:  productImage("tassel-loafers"),
			Rating: 4.4, Reviews: 71,
			Sizes: shoeSizes, Colors: []catalog.Color{black, brown},
			Description: "Polished calf loafers finished with tassels.",
			InStock:     true,
		},
		{
			ID: "performance-running-shoes", Name: "Performance Running Shoes",
			Category: "Shoes", Subcategory: "Sports Shoes",
			Price: valueobject.Rupees(3999), OriginalPrice: markdown(5499),
			Image: productImage("performance-running-shoes"), Images: productGallery("performance-running-shoes", 2),
			Rating: 4.5, Reviews: 231,
			Sizes: shoeSizes, Colors: []catalog.Color{black, blue, grey},
			Description: "Responsive cushioning and a breathable knit upper.",
			InStock:     true, Badge: catalog.BadgeNewArrival,
		},
		{
			ID: "court-training-shoes", Name: "Court Training Shoes",
			Category: "Shoes", Subcategory: "Sports Shoes",
			Price:  valueobject.Rupees(2799),
			Image:  productImage("court-training-shoes"),
			Rating: 4.2, Reviews: 88,
			Sizes: []string{"7", "8", "9", "10", "11"}, Colors: []catalog.Color{white, navy},
			Description: "Stable trainers for court and gym sessions.",
			InStock:     false,
		},
	}
}
