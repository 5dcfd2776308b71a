package config

// Scoring holds the point delta awarded per move shape.
type Scoring struct {
	StockToWaste        int `yaml:"stock_to_waste" json:"stock_to_waste"`
	WasteToStock        int `yaml:"waste_to_stock" json:"waste_to_stock"`
	WasteToTableau      int `yaml:"waste_to_tableau" json:"waste_to_tableau"`
	WasteToFoundation   int `yaml:"waste_to_foundation" json:"waste_to_foundation"`
	TableauToTableau    int `yaml:"tableau_to_tableau" json:"tableau_to_tableau"`
	TableauToFoundation int `yaml:"tableau_to_foundation" json:"tableau_to_foundation"`
	FoundationToTableau int `yaml:"foundation_to_tableau" json:"foundation_to_tableau"`
	TableauReveal       int `yaml:"tableau_reveal" json:"tableau_reveal"`
}

// DefaultScoring returns the standard Windows-style table.
func DefaultScoring() Scoring {
	return Scoring{
		StockToWaste:        0,
		WasteToStock:        -100,
		WasteToTableau:      5,
		WasteToFoundation:   10,
		TableauToTableau:    0,
		TableauToFoundation: 15,
		FoundationToTableau: -15,
		TableauReveal:       5,
	}
}

// ApplyDefaults fills the whole table when none of it was configured.
// A partially written table is kept as is, since zero is a legal delta.
func (s *Scoring) ApplyDefaults() {
	if *s == (Scoring{}) {
		*s = DefaultScoring()
	}
}

func defaultLayout() LayoutConfig {
	return LayoutConfig{
		Stock: Point{X: -258, Y: 63},
		Waste: Point{X: -258, Y: 1},
		Piles: []Point{
			{X: -193, Y: 62},
			{X: -129, Y: 62},
			{X: -65, Y: 62},
			{X: -1, Y: 62},
			{X: 63, Y: 62},
			{X: 127, Y: 62},
			{X: 191, Y: 62},
		},
		Foundations: []Point{
			{X: 257, Y: 62},
			{X: 257, Y: 2},
			{X: 257, Y: -58},
			{X: 257, Y: -118},
		},
		CardWidth:      38,
		CardHeight:     52,
		WasteOffsetY:   16,
		PileOffsetY:    16,
		PileOffsetYMin: 6,
		PileDropTop:    88,
		PileDropBottom: -144,
		MaxWastes:      3,
		DragZ:          100,
		DragThreshold:  5,
	}
}

// Default returns the complete default configuration.
func Default() *Config {
	cfg := &Config{Version: "1"}
	cfg.ApplyDefaults()
	return cfg
}

// Easy returns the default configuration with single-card draws.
func Easy() *Config {
	cfg := Default()
	cfg.Rules.Difficulty = "easy"
	return cfg
}

// Hard returns the default configuration with three-card draws.
func Hard() *Config {
	cfg := Default()
	cfg.Rules.Difficulty = "hard"
	return cfg
}
