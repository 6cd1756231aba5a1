package registry

// defaultCompanies is the built-in catalog, grouped by sector.
var defaultCompanies = []Company{
	// Technology
	{
		Ticker:        "AAPL",
		Name:          "Apple Inc.",
		CIK:           "0000320193",
		Sector:        SectorTechnology,
		Industry:      "Consumer Electronics",
		Headquarters:  "Cupertino, California",
		Description:   "Designs, manufactures, and markets smartphones, computers, tablets, wearables",
		SP500:         true,
		FiscalYearEnd: "September",
		Competitors:   []string{"MSFT", "GOOGL", "SAMSUNG"},
	},
	{
		Ticker:       "MSFT",
		Name:         "Microsoft Corporation",
		CIK:          "0000789019",
		Sector:       SectorTechnology,
		Industry:     "Software & Cloud Services",
		Headquarters: "Redmond, Washington",
		Description:  "Develops software, cloud computing, and hardware products",
		SP500:        true,
		Competitors:  []string{"AAPL", "GOOGL", "AMZN", "ORCL"},
	},
	{
		Ticker:       "GOOGL",
		Name:         "Alphabet Inc.",
		CIK:          "0001652044",
		Sector:       SectorTechnology,
		Industry:     "Internet Services & AI",
		Headquarters: "Mountain View, California",
		Description:  "Parent company of Google, focused on search, advertising, and cloud",
		SP500:        true,
		Competitors:  []string{"MSFT", "META", "AMZN"},
	},
	{
		Ticker:       "AMZN",
		Name:         "Amazon.com, Inc.",
		CIK:          "0001018724",
		Sector:       SectorTechnology,
		Industry:     "E-commerce & Cloud Computing",
		Headquarters: "Seattle, Washington",
		Description:  "E-commerce, cloud computing (AWS), digital streaming",
		SP500:        true,
		Competitors:  []string{"MSFT", "GOOGL", "WMT"},
	},
	{
		Ticker:        "NVDA",
		Name:          "NVIDIA Corporation",
		CIK:           "0001045810",
		Sector:        SectorTechnology,
		Industry:      "Semiconductors",
		Headquarters:  "Santa Clara, California",
		Description:   "Graphics processing units (GPUs) and AI computing",
		SP500:         true,
		FiscalYearEnd: "January",
		Competitors:   []string{"AMD", "INTC", "QCOM"},
	},
	{
		Ticker:       "META",
		Name:         "Meta Platforms, Inc.",
		CIK:          "0001326801",
		Sector:       SectorTechnology,
		Industry:     "Social Media & Metaverse",
		Headquarters: "Menlo Park, California",
		Description:  "Social networking, virtual reality, digital advertising",
		SP500:        true,
		Competitors:  []string{"GOOGL", "SNAP", "PINS"},
	},
	{
		Ticker:       "INTC",
		Name:         "Intel Corporation",
		CIK:          "0000050863",
		Sector:       SectorTechnology,
		Industry:     "Semiconductors",
		Headquarters: "Santa Clara, California",
		Description:  "Semiconductor chip manufacturing",
		SP500:        true,
		Competitors:  []string{"AMD", "NVDA", "QCOM"},
	},
	{
		Ticker:       "AMD",
		Name:         "Advanced Micro Devices, Inc.",
		CIK:          "0000002488",
		Sector:       SectorTechnology,
		Industry:     "Semiconductors",
		Headquarters: "Santa Clara, California",
		Description:  "Semiconductor products for computing and graphics",
		SP500:        true,
		Competitors:  []string{"INTC", "NVDA"},
	},
	{
		Ticker:        "CRM",
		Name:          "Salesforce, Inc.",
		CIK:           "0001108524",
		Sector:        SectorTechnology,
		Industry:      "Cloud Software",
		Headquarters:  "San Francisco, California",
		Description:   "Cloud-based CRM and enterprise software",
		SP500:         true,
		FiscalYearEnd: "January",
		Competitors:   []string{"MSFT", "ORCL", "SAP"},
	},
	{
		Ticker:        "ORCL",
		Name:          "Oracle Corporation",
		CIK:           "0001341439",
		Sector:        SectorTechnology,
		Industry:      "Enterprise Software & Cloud",
		Headquarters:  "Austin, Texas",
		Description:   "Database software, cloud infrastructure, enterprise applications",
		SP500:         true,
		FiscalYearEnd: "May",
		Competitors:   []string{"MSFT", "SAP", "IBM"},
	},

	// Healthcare
	{
		Ticker:       "JNJ",
		Name:         "Johnson & Johnson",
		CIK:          "0000200406",
		Sector:       SectorHealthcare,
		Industry:     "Pharmaceuticals & Medical Devices",
		Headquarters: "New Brunswick, New Jersey",
		Description:  "Pharmaceuticals, medical devices, and consumer health products",
		SP500:        true,
		Competitors:  []string{"PFE", "MRK", "ABBV"},
	},
	{
		Ticker:       "UNH",
		Name:         "UnitedHealth Group Incorporated",
		CIK:          "0000731766",
		Sector:       SectorHealthcare,
		Industry:     "Health Insurance",
		Headquarters: "Minnetonka, Minnesota",
		Description:  "Health insurance and healthcare services",
		SP500:        true,
		Competitors:  []string{"CVS", "ANTM", "CI"},
	},
	{
		Ticker:       "PFE",
		Name:         "Pfizer Inc.",
		CIK:          "0000078003",
		Sector:       SectorHealthcare,
		Industry:     "Pharmaceuticals",
		Headquarters: "New York, New York",
		Description:  "Pharmaceutical and biotechnology corporation",
		SP500:        true,
		Competitors:  []string{"JNJ", "MRK", "ABBV"},
	},
	{
		Ticker:       "ABBV",
		Name:         "AbbVie Inc.",
		CIK:          "0001551152",
		Sector:       SectorHealthcare,
		Industry:     "Pharmaceuticals",
		Headquarters: "North Chicago, Illinois",
		Description:  "Biopharmaceutical company focused on immunology",
		SP500:        true,
		Competitors:  []string{"JNJ", "PFE", "MRK"},
	},
	{
		Ticker:       "MRK",
		Name:         "Merck & Co., Inc.",
		CIK:          "0000310158",
		Sector:       SectorHealthcare,
		Industry:     "Pharmaceuticals",
		Headquarters: "Rahway, New Jersey",
		Description:  "Global pharmaceutical company",
		SP500:        true,
		Competitors:  []string{"JNJ", "PFE", "ABBV"},
	},
	{
		Ticker:       "LLY",
		Name:         "Eli Lilly and Company",
		CIK:          "0000059478",
		Sector:       SectorHealthcare,
		Industry:     "Pharmaceuticals",
		Headquarters: "Indianapolis, Indiana",
		Description:  "Pharmaceutical company focused on diabetes and oncology",
		SP500:        true,
		Competitors:  []string{"NVO", "PFE", "MRK"},
	},

	// Financial Services
	{
		Ticker:       "JPM",
		Name:         "JPMorgan Chase & Co.",
		CIK:          "0000019617",
		Sector:       SectorFinancial,
		Industry:     "Banking",
		Headquarters: "New York, New York",
		Description:  "Multinational investment bank and financial services",
		SP500:        true,
		Competitors:  []string{"BAC", "GS", "MS", "C"},
	},
	{
		Ticker:       "BAC",
		Name:         "Bank of America Corporation",
		CIK:          "0000070858",
		Sector:       SectorFinancial,
		Industry:     "Banking",
		Headquarters: "Charlotte, North Carolina",
		Description:  "Multinational investment bank and financial services",
		SP500:        true,
		Competitors:  []string{"JPM", "WFC", "C"},
	},
	{
		Ticker:       "GS",
		Name:         "The Goldman Sachs Group, Inc.",
		CIK:          "0000886982",
		Sector:       SectorFinancial,
		Industry:     "Investment Banking",
		Headquarters: "New York, New York",
		Description:  "Global investment banking and securities firm",
		SP500:        true,
		Competitors:  []string{"MS", "JPM"},
	},
	{
		Ticker:       "MS",
		Name:         "Morgan Stanley",
		CIK:          "0000895421",
		Sector:       SectorFinancial,
		Industry:     "Investment Banking",
		Headquarters: "New York, New York",
		Description:  "Global financial services firm",
		SP500:        true,
		Competitors:  []string{"GS", "JPM"},
	},
	{
		Ticker:       "WFC",
		Name:         "Wells Fargo & Company",
		CIK:          "0000072971",
		Sector:       SectorFinancial,
		Industry:     "Banking",
		Headquarters: "San Francisco, California",
		Description:  "Multinational financial services company",
		SP500:        true,
		Competitors:  []string{"JPM", "BAC", "C"},
	},
	{
		Ticker:        "V",
		Name:          "Visa Inc.",
		CIK:           "0001403161",
		Sector:        SectorFinancial,
		Industry:      "Payment Processing",
		Headquarters:  "San Francisco, California",
		Description:   "Global payments technology company",
		SP500:         true,
		FiscalYearEnd: "September",
		Competitors:   []string{"MA", "AXP"},
	},
	{
		Ticker:       "MA",
		Name:         "Mastercard Incorporated",
		CIK:          "0001141391",
		Sector:       SectorFinancial,
		Industry:     "Payment Processing",
		Headquarters: "Purchase, New York",
		Description:  "Global payments and technology company",
		SP500:        true,
		Competitors:  []string{"V", "AXP"},
	},

	// Consumer
	{
		Ticker:        "WMT",
		Name:          "Walmart Inc.",
		CIK:           "0000104169",
		Sector:        SectorConsumer,
		Industry:      "Retail",
		Headquarters:  "Bentonville, Arkansas",
		Description:   "Multinational retail corporation",
		SP500:         true,
		FiscalYearEnd: "January",
		Competitors:   []string{"AMZN", "TGT", "COST"},
	},
	{
		Ticker:       "KO",
		Name:         "The Coca-Cola Company",
		CIK:          "0000021344",
		Sector:       SectorConsumer,
		Industry:     "Beverages",
		Headquarters: "Atlanta, Georgia",
		Description:  "Multinational beverage corporation",
		SP500:        true,
		Competitors:  []string{"PEP", "KDP"},
	},
	{
		Ticker:       "PEP",
		Name:         "PepsiCo, Inc.",
		CIK:          "0000077476",
		Sector:       SectorConsumer,
		Industry:     "Beverages & Snacks",
		Headquarters: "Purchase, New York",
		Description:  "Multinational food, snack, and beverage corporation",
		SP500:        true,
		Competitors:  []string{"KO", "KDP"},
	},
	{
		Ticker:        "PG",
		Name:          "The Procter & Gamble Company",
		CIK:           "0000080424",
		Sector:        SectorConsumer,
		Industry:      "Consumer Goods",
		Headquarters:  "Cincinnati, Ohio",
		Description:   "Consumer goods corporation",
		SP500:         true,
		FiscalYearEnd: "June",
		Competitors:   []string{"UL", "CL", "KMB"},
	},
	{
		Ticker:        "COST",
		Name:          "Costco Wholesale Corporation",
		CIK:           "0000909832",
		Sector:        SectorConsumer,
		Industry:      "Retail",
		Headquarters:  "Issaquah, Washington",
		Description:   "Membership-only warehouse club",
		SP500:         true,
		FiscalYearEnd: "August",
		Competitors:   []string{"WMT", "TGT", "BJ"},
	},
	{
		Ticker:        "HD",
		Name:          "The Home Depot, Inc.",
		CIK:           "0000354950",
		Sector:        SectorConsumer,
		Industry:      "Home Improvement Retail",
		Headquarters:  "Atlanta, Georgia",
		Description:   "Home improvement retail company",
		SP500:         true,
		FiscalYearEnd: "January",
		Competitors:   []string{"LOW"},
	},

	// Energy
	{
		Ticker:       "XOM",
		Name:         "Exxon Mobil Corporation",
		CIK:          "0000034088",
		Sector:       SectorEnergy,
		Industry:     "Oil & Gas",
		Headquarters: "Irving, Texas",
		Description:  "Multinational oil and gas corporation",
		SP500:        true,
		Competitors:  []string{"CVX", "COP", "BP"},
	},
	{
		Ticker:       "CVX",
		Name:         "Chevron Corporation",
		CIK:          "0000093410",
		Sector:       SectorEnergy,
		Industry:     "Oil & Gas",
		Headquarters: "San Ramon, California",
		Description:  "Multinational energy corporation",
		SP500:        true,
		Competitors:  []string{"XOM", "COP", "BP"},
	},
	{
		Ticker:       "COP",
		Name:         "ConocoPhillips",
		CIK:          "0001163165",
		Sector:       SectorEnergy,
		Industry:     "Oil & Gas Exploration",
		Headquarters: "Houston, Texas",
		Description:  "Oil and gas exploration and production",
		SP500:        true,
		Competitors:  []string{"XOM", "CVX"},
	},
	{
		Ticker:       "NEE",
		Name:         "NextEra Energy, Inc.",
		CIK:          "0000753308",
		Sector:       SectorEnergy,
		Industry:     "Utilities & Renewable Energy",
		Headquarters: "Juno Beach, Florida",
		Description:  "Clean energy and utility company",
		SP500:        true,
		Competitors:  []string{"DUK", "SO"},
	},

	// Industrials
	{
		Ticker:       "CAT",
		Name:         "Caterpillar Inc.",
		CIK:          "0000018230",
		Sector:       SectorIndustrials,
		Industry:     "Heavy Equipment",
		Headquarters: "Irving, Texas",
		Description:  "Heavy equipment and machinery manufacturer",
		SP500:        true,
		Competitors:  []string{"DE", "CNHI"},
	},
	{
		Ticker:       "BA",
		Name:         "The Boeing Company",
		CIK:          "0000012927",
		Sector:       SectorIndustrials,
		Industry:     "Aerospace & Defense",
		Headquarters: "Arlington, Virginia",
		Description:  "Aerospace company and defense contractor",
		SP500:        true,
		Competitors:  []string{"LMT", "RTX", "GD"},
	},
	{
		Ticker:       "UPS",
		Name:         "United Parcel Service, Inc.",
		CIK:          "0001090727",
		Sector:       SectorIndustrials,
		Industry:     "Logistics & Delivery",
		Headquarters: "Atlanta, Georgia",
		Description:  "Package delivery and supply chain services",
		SP500:        true,
		Competitors:  []string{"FDX"},
	},
	{
		Ticker:       "GE",
		Name:         "General Electric Company",
		CIK:          "0000040545",
		Sector:       SectorIndustrials,
		Industry:     "Conglomerate",
		Headquarters: "Boston, Massachusetts",
		Description:  "Diversified technology and financial services",
		SP500:        true,
		Competitors:  []string{"HON", "MMM"},
	},
}
