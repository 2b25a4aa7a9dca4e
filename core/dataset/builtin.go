package dataset

import "fmt"

var builtins = map[string]func() *DataSet{
	"fruit":       fruit,
	"temperature": temperature,
	"size":        size,
	"and":         func() *DataSet { return logicGate("AND") },
	"or":          func() *DataSet { return logicGate("OR") },
	"nand":        func() *DataSet { return logicGate("NAND") },
	"nor":         func() *DataSet { return logicGate("NOR") },
	"xor":         func() *DataSet { return logicGate("XOR") },
}

func fruit() *DataSet {
	return &DataSet{
		Name: "Fruit Classifier (Sweet=1 vs Citrus=0)",
		Inputs: [][]float64{
			{2, 8}, // low sweetness, yellow
			{3, 3},
			{4, 6},
			{5, 5}, // border case
			{8, 7},
			{9, 8},
			{7, 9},
			{8, 6},
		},
		Outputs:     []int{0, 0, 0, 0, 1, 1, 1, 1},
		InputLabels: []string{"Sweetness (0-10)", "Color Intensity (0-10)"},
		OutputLabel: "Type (0=Citrus, 1=Sweet)",
		SampleNames: []string{"Lemon", "Lime", "Grapefruit", "Orange", "Apple", "Banana", "Strawberry", "Grape"},
	}
}

func temperature() *DataSet {
	return &DataSet{
		Name: "Temperature Classifier (Hot=1 vs Cold=0)",
		Inputs: [][]float64{
			{5, 60},
			{10, 70},
			{12, 50},
			{15, 55},
			{28, 80},
			{32, 60},
			{35, 75},
			{30, 50},
		},
		Outputs:     []int{0, 0, 0, 0, 1, 1, 1, 1},
		InputLabels: []string{"Temp (C)", "Humidity (%)"},
		OutputLabel: "Classification (0=Cold, 1=Hot)",
		SampleNames: []string{"Cold Winter", "Cool Spring", "Mild", "Border", "Hot Humid", "Very Hot", "Extreme", "Summer"},
	}
}

func size() *DataSet {
	return &DataSet{
		Name: "Size Classifier (Big=1 vs Small=0)",
		Inputs: [][]float64{
			{1, 20},
			{2, 30},
			{3, 35},
			{4, 40},
			{15, 80},
			{20, 90},
			{25, 100},
			{18, 85},
		},
		Outputs:     []int{0, 0, 0, 0, 1, 1, 1, 1},
		InputLabels: []string{"Weight (kg)", "Height (cm)"},
		OutputLabel: "Size (0=Small, 1=Big)",
		SampleNames: []string{"Tiny Box", "Book", "Backpack", "Suitcase", "Chair", "Door", "Cabinet", "TV"},
	}
}

var gateTruthTables = map[string][]int{
	"AND":  {0, 0, 0, 1},
	"OR":   {0, 1, 1, 1},
	"NAND": {1, 1, 1, 0},
	"NOR":  {1, 0, 0, 0},
	// not linearly separable
	"XOR": {0, 1, 1, 0},
}

func logicGate(gate string) *DataSet {
	return &DataSet{
		Name:        fmt.Sprintf("%s logic gate", gate),
		Inputs:      [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		Outputs:     append([]int(nil), gateTruthTables[gate]...),
		InputLabels: []string{"A", "B"},
		OutputLabel: gate,
	}
}
