// Package taxonomy holds the marketplace category tree used by the
// filter bar and category endpoints.
package taxonomy

import "sort"

// tree maps each top-level category to its sub-categories.
var tree = map[string][]string{
	"Electronics": {
		"Accessories & Supplies", "Camera & Photo", "Car & Vehicle Electronics",
		"Cell Phones & Accessories", "Computers & Accessories", "Headphones",
		"Home Audio", "Office Electronics", "Portable Audio & Video",
		"Security & Surveillance", "Television & Video", "Video Game Consoles & Accessories",
		"Wearable Technology", "GPS & Navigation", "Service Plans",
	},
	"Computers": {
		"Computer Accessories & Peripherals", "Computer Components", "Computers & Tablets",
		"Data Storage", "Laptop Accessories", "Monitors", "Networking Products",
		"Printers", "Scanners", "Servers", "Tablet Accessories", "Warranties & Services",
	},
	"Smart Home": {
		"Smart Home Lighting", "Smart Locks and Entry", "Security Cameras and Systems",
		"Plugs and Outlets", "Heating and Cooling", "Voice Assistants and Hubs",
		"Vacuums and Mops", "WIFI and Networking", "Smart Home Entertainment", "Pet", "Lawn & Garden",
	},
	"Home & Kitchen": {
		"Bath", "Bedding", "Furniture", "Home Décor", "Kitchen & Dining",
		"Lighting & Ceiling Fans", "Seasonal Décor", "Storage & Organization",
		"Vacuums & Floor Care", "Wall Art", "Heating, Cooling & Air Quality",
		"Irons & Steamers", "Kids' Home Store", "Event & Party Supplies",
	},
	"Beauty & Personal Care": {
		"Makeup", "Skin Care", "Hair Care", "Fragrance", "Foot, Hand & Nail Care",
		"Tools & Accessories", "Shave & Hair Removal", "Personal Care", "Oral Care",
		"Luxury Beauty", "Professional Beauty", "Salon & Spa Equipment",
	},
	"Fashion": {
		"Women's Clothing", "Women's Shoes", "Women's Jewelry", "Women's Handbags",
		"Men's Clothing", "Men's Shoes", "Men's Watches", "Men's Accessories",
		"Girls' Fashion", "Boys' Fashion", "Baby Clothing & Shoes", "Luggage & Travel Gear", "Uniforms, Work & Safety",
	},
	"Health & Household": {
		"Baby & Child Care", "Health Care", "Household Supplies", "Medical Supplies & Equipment",
		"Oral Care", "Sports Nutrition", "Vitamins & Dietary Supplements", "Wellness & Relaxation",
		"Sexual Wellness", "Vision Care",
	},
	"Grocery & Gourmet Food": {
		"Beverages", "Breakfast Foods", "Candy & Chocolate", "Cooking & Baking",
		"Dairy, Cheese & Eggs", "Meat & Seafood", "Produce", "Snack Foods",
		"Pantry Staples", "Fresh Flowers & Live Indoor Plants",
	},
	"Books": {
		"Arts & Photography", "Biographies & Memoirs", "Business & Money", "Children's Books",
		"Cookbooks, Food & Wine", "History", "Literature & Fiction", "Mystery, Thriller & Suspense",
		"Romance", "Sci-Fi & Fantasy", "Self-Help", "Textbooks", "Comics & Graphic Novels",
	},
	"Industrial & Scientific": {
		"Abrasive & Finishing Products", "Cutting Tools", "Fasteners", "Filtration",
		"Industrial Electrical", "Industrial Hardware", "Industrial Power & Hand Tools",
		"Lab & Scientific Products", "Material Handling", "Occupational Health & Safety",
		"Packaging & Shipping Supplies", "Professional Medical Supplies", "Robotics",
		"Tapes, Adhesives & Sealants", "Janitorial & Sanitation Supplies",
	},
	"Sports & Outdoors": {
		"Outdoor Recreation", "Sports & Fitness", "Fan Shop", "Team Sports",
		"Hunting & Fishing", "Golf", "Leisure Sports & Game Room",
		"Cycling", "Water Sports", "Winter Sports",
	},
	"Tools & Home Improvement": {
		"Appliances", "Building Supplies", "Electrical", "Hardware",
		"Kitchen & Bath Fixtures", "Light Bulbs", "Power & Hand Tools",
		"Safety & Security", "Storage & Home Organization", "Welding & Soldering",
		"Paint, Wall Treatments & Supplies", "Rough Plumbing",
	},
	"Garden & Outdoor": {
		"Gardening & Lawn Care", "Grills & Outdoor Cooking", "Outdoor Décor",
		"Patio Furniture & Accessories", "Pools, Hot Tubs & Supplies", "Snow Removal",
		"Generators & Portable Power",
	},
	"Toys & Games": {
		"Action Figures & Statues", "Arts & Crafts", "Baby & Toddler Toys", "Building Toys",
		"Dolls & Accessories", "Electronics for Kids", "Games", "Learning & Education",
		"Puzzles", "Sports & Outdoor Play", "Vehicles, Trains & Remote-Control",
		"Collectibles", "Costumes & Dress Up", "Novelty & Gag Toys",
	},
	"Video Games": {
		"PlayStation 5", "PlayStation 4", "Xbox Series X & S", "Xbox One",
		"Nintendo Switch", "PC Gaming", "Retro Gaming", "Virtual Reality",
		"Mac Gaming", "Microconsoles",
	},
	"Automotive": {
		"Car Care", "Car Electronics & Accessories", "Exterior Accessories",
		"Interior Accessories", "Motorcycle & Powersports", "Oils & Fluids",
		"Replacement Parts", "Tires & Wheels", "Tools & Equipment",
		"Heavy Duty & Commercial Vehicle Equipment", "RV Parts & Accessories",
	},
	"Baby": {
		"Activity & Entertainment", "Apparel & Accessories", "Baby Care", "Car Seats",
		"Diapering", "Feeding", "Nursery", "Potty Training", "Safety",
		"Strollers & Accessories", "Travel Gear", "Gifts", "Pregnancy & Maternity",
	},
	"Pet Supplies": {
		"Dogs", "Cats", "Fish & Aquatic Pets", "Birds", "Horses", "Reptiles & Amphibians", "Small Animals",
	},
	"Office Products": {
		"Office Electronics", "Office Furniture & Lighting", "Office Supplies",
		"School Supplies", "Papers", "Educational Supplies",
	},
	"Arts, Crafts & Sewing": {
		"Painting, Drawing & Art Supplies", "Beading & Jewelry Making", "Fabric",
		"Knitting & Crochet", "Needlework", "Organization", "Scrapbooking",
		"Sewing", "Party Decorations", "Printmaking", "Sculpture & Modeling",
	},
	"Musical Instruments": {
		"Guitars", "Keyboards & MIDI", "Drums & Percussion", "Studio Recording Equipment",
		"Band & Orchestra", "Live Sound & Stage", "DJ & Karaoke Equipment",
		"Microphones & Accessories", "Amplifiers & Effects",
	},
	"Luggage & Travel Gear": {
		"Carry-ons", "Checked Luggage", "Travel Accessories", "Backpacks",
		"Briefcases", "Duffel Bags", "Laptop Bags", "Umbrellas", "Wallets, Card Cases & Money Organizers",
	},
	"Movies & TV": {
		"Movies", "TV Shows", "Blu-ray", "DVD", "4K Ultra HD", "Kids & Family",
	},
	"Software": {
		"Accounting & Finance", "Antivirus & Security", "Business & Office",
		"Education & Reference", "Operating Systems", "Programming & Web Development",
		"Design & Illustration", "Video & Audio",
	},
	"Appliances": {
		"Refrigerators", "Freezers", "Ice Makers", "Ranges, Ovens & Cooktops",
		"Microwaves", "Dishwashers", "Washers & Dryers", "Parts & Accessories",
	},
}

// Categories returns the top-level category names in sorted order.
func Categories() []string {
	out := make([]string, 0, len(tree))
	for name := range tree {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SubCategories returns the sub-categories of a top-level category in
// their canonical display order, or nil for an unknown category.
func SubCategories(category string) []string {
	subs, ok := tree[category]
	if !ok {
		return nil
	}
	out := make([]string, len(subs))
	copy(out, subs)
	return out
}

// Valid reports whether the category exists, and when sub is non-empty,
// whether it belongs to that category.
func Valid(category, sub string) bool {
	subs, ok := tree[category]
	if !ok {
		return false
	}
	if sub == "" {
		return true
	}
	for _, s := range subs {
		if s == sub {
			return true
		}
	}
	return false
}

// Tree returns a copy of the full category tree.
func Tree() map[string][]string {
	out := make(map[string][]string, len(tree))
	for k := range tree {
		out[k] = SubCategories(k)
	}
	return out
}
