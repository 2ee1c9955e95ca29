// internal/domain/booking/tables.go
package booking

// Prices are rubles per unit. Wheel work is keyed by wheel diameter,
// painting by paint type, soundproofing by body class.

var mountingTable = PricingTable{
	"wheel-removal": {
		"r13": 150, "r14": 180, "r15": 220, "r16": 260, "r17": 300,
		"r18": 350, "r19": 400, "r20": 450, "r21": 500, "r22": 550,
	},
	"wheel-install": {
		"r13": 150, "r14": 180, "r15": 220, "r16": 260, "r17": 300,
		"r18": 350, "r19": 400, "r20": 450, "r21": 500, "r22": 550,
	},
	"tire-removal": {
		"r13": 120, "r14": 140, "r15": 170, "r16": 200, "r17": 240,
		"r18": 280, "r19": 320, "r20": 360, "r21": 400, "r22": 450,
	},
	"tire-install": {
		"r13": 120, "r14": 140, "r15": 170, "r16": 200, "r17": 240,
		"r18": 280, "r19": 320, "r20": 360, "r21": 400, "r22": 450,
	},
	"balancing": {
		"r13": 300, "r14": 350, "r15": 400, "r16": 480, "r17": 550,
		"r18": 650, "r19": 750, "r20": 850, "r21": 950, "r22": 1050,
	},
}

var studdingTable = PricingTable{
	"studding": {
		"r13": 1200, "r14": 1300, "r15": 1400, "r16": 1550, "r17": 1700,
		"r18": 1900, "r19": 2100, "r20": 2300, "r21": 2500, "r22": 2700,
	},
}

var paintingTable = PricingTable{
	"wheel-painting": {
		"standard": 2500, "premium": 4000, "candy": 6000,
	},
	"primer": {
		"standard": 800, "premium": 1200, "candy": 1200,
	},
	"polish": {
		"standard": 600, "premium": 900, "candy": 1500,
	},
}

var soundproofingTable = PricingTable{
	"arches": {
		"sedan": 6000, "suv": 8000,
	},
	"doors": {
		"sedan": 9000, "suv": 12000,
	},
	"trunk": {
		"sedan": 5000, "suv": 7000,
	},
	"floor": {
		"sedan": 11000, "suv": 15000,
	},
}

var storageTable = PricingTable{
	"storage-season": {
		"r13": 2000, "r14": 2200, "r15": 2400, "r16": 2700, "r17": 3000,
		"r18": 3400, "r19": 3800, "r20": 4200, "r21": 4600, "r22": 5000,
	},
}

// DefaultTable returns the built-in pricing table for a service
func DefaultTable(t ServiceType) PricingTable {
	switch t {
	case ServiceTireMounting:
		return mountingTable
	case ServiceStudding:
		return studdingTable
	case ServicePainting:
		return paintingTable
	case ServiceSoundproofing:
		return soundproofingTable
	case ServiceTireStorage:
		return storageTable
	default:
		return PricingTable{}
	}
}
