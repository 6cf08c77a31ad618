package rules

// Static categorization table for the FMCG catalog. Brand-gated rules carry
// lower priority numbers than their generic keyword fallbacks so that a
// branded match wins over a bare keyword match.
var table = []Rule{
	// Personal care, brand-gated.
	{Priority: 1, Keywords: []string{"soap", "bathing bar"}, Brands: []string{"Lifebuoy", "Lux", "Dove", "Pears", "Hamam", "Liril"}, Category: "Personal Care", Subcategory: "Bath Soaps"},
	{Priority: 1, Keywords: []string{"shampoo", "conditioner"}, Brands: []string{"Clinic Plus", "Sunsilk", "Dove", "Tresemme", "Indulekha"}, Category: "Personal Care", Subcategory: "Hair Care"},
	{Priority: 1, Keywords: []string{"toothpaste", "tooth paste", "toothbrush"}, Brands: []string{"Closeup", "Pepsodent"}, Category: "Personal Care", Subcategory: "Oral Care"},
	{Priority: 2, Keywords: []string{"face wash", "facewash", "cream", "lotion", "moisturiser", "moisturizer"}, Brands: []string{"Ponds", "Vaseline", "Fair & Lovely", "Glow & Lovely", "Lakme"}, Category: "Personal Care", Subcategory: "Skin Care"},
	{Priority: 2, Keywords: []string{"deo", "deodorant", "talc", "perfume", "body spray"}, Brands: []string{"Axe", "Rexona"}, Category: "Personal Care", Subcategory: "Deodorants"},

	// Home care, brand-gated.
	{Priority: 3, Keywords: []string{"detergent", "washing powder", "washing bar", "matic"}, Brands: []string{"Surf Excel", "Rin", "Wheel", "Comfort"}, Category: "Home Care", Subcategory: "Laundry"},
	{Priority: 3, Keywords: []string{"dishwash", "dish wash", "dish bar", "scrubber"}, Brands: []string{"Vim"}, Category: "Home Care", Subcategory: "Dishwashing"},
	{Priority: 4, Keywords: []string{"toilet cleaner", "floor cleaner", "disinfectant"}, Brands: []string{"Domex", "Cif"}, Category: "Home Care", Subcategory: "Household Cleaners"},

	// Foods & beverages, brand-gated.
	{Priority: 5, Keywords: []string{"tea", "chai"}, Brands: []string{"Brooke Bond", "Red Label", "Taj Mahal", "Taaza", "Lipton"}, Category: "Beverages", Subcategory: "Tea"},
	{Priority: 5, Keywords: []string{"coffee"}, Brands: []string{"Bru"}, Category: "Beverages", Subcategory: "Coffee"},
	{Priority: 6, Keywords: []string{"ketchup", "jam", "squash", "sauce"}, Brands: []string{"Kissan"}, Category: "Foods", Subcategory: "Sauces & Spreads"},
	{Priority: 6, Keywords: []string{"soup", "noodles", "masala", "stock cube"}, Brands: []string{"Knorr"}, Category: "Foods", Subcategory: "Instant Foods"},
	{Priority: 6, Keywords: []string{"health drink", "malt", "protein plus"}, Brands: []string{"Horlicks", "Boost"}, Category: "Beverages", Subcategory: "Health Drinks"},
	{Priority: 7, Keywords: []string{"ice cream", "icecream", "kulfi", "frozen dessert"}, Brands: []string{"Kwality Walls", "Magnum", "Cornetto"}, Category: "Foods", Subcategory: "Ice Cream"},

	// Generic keyword fallbacks, no brand gate.
	{Priority: 10, Keywords: []string{"soap", "bathing bar", "body wash", "handwash", "hand wash"}, Category: "Personal Care", Subcategory: "Bath Soaps"},
	{Priority: 10, Keywords: []string{"shampoo", "conditioner", "hair oil"}, Category: "Personal Care", Subcategory: "Hair Care"},
	{Priority: 10, Keywords: []string{"toothpaste", "toothbrush", "mouthwash"}, Category: "Personal Care", Subcategory: "Oral Care"},
	{Priority: 11, Keywords: []string{"detergent", "washing powder", "fabric conditioner"}, Category: "Home Care", Subcategory: "Laundry"},
	{Priority: 11, Keywords: []string{"dishwash", "dish wash"}, Category: "Home Care", Subcategory: "Dishwashing"},
	{Priority: 12, Keywords: []string{"tea"}, Category: "Beverages", Subcategory: "Tea"},
	{Priority: 12, Keywords: []string{"coffee"}, Category: "Beverages", Subcategory: "Coffee"},
	{Priority: 13, Keywords: []string{"biscuit", "cookie", "chips", "namkeen", "wafer"}, Category: "Snacks", Subcategory: "Packaged Snacks"},
	{Priority: 13, Keywords: []string{"chocolate", "candy", "toffee"}, Category: "Snacks", Subcategory: "Confectionery"},
	{Priority: 14, Keywords: []string{"atta", "flour", "rice", "dal", "pulses"}, Category: "Foods", Subcategory: "Staples"},
	{Priority: 14, Keywords: []string{"oil", "ghee"}, Category: "Foods", Subcategory: "Cooking Oils"},
	{Priority: 15, Keywords: []string{"water", "juice", "drink"}, Category: "Beverages", Subcategory: "Soft Drinks & Juices"},
}
