package main

import (
	"fmt"
	"os"

	"gridmodel"
	"gridmodel/grid"
)

func main() {
	var err error

	buses := []grid.Bus{
		{Number: 1, Role: grid.RoleReference, Name: "A"},
		{Number: 2, Role: grid.RolePQ, Name: "B"},
	}
	branches := []grid.Branch{
		&grid.Line{ID: 1, From: 1, To: 2, R: 0.01, X: 0.1, B: 0.0, Rate: 100, Status: true},
	}

	config := gridmodel.DefaultConfiguration()
	config.RetainIncidence = true

	network, err := gridmodel.Build(2, buses, branches, &config)
	if err != nil {
		panic(err)
	}

	fmt.Println("Ybus")
	network.Ybus().Print(os.Stdout, true, true)

	incidence, _ := network.Incidence()
	fmt.Println("Incidence")
	incidence.Print(os.Stdout, true, false)

	p, ok := network.PTDF()
	if !ok {
		panic("no reference bus")
	}
	fmt.Printf("PTDF (reference bus %d)\n", p.Reference())
	for b := 1; b <= network.BranchCount(); b++ {
		fmt.Printf("branch %d:", b)
		for bus := 1; bus <= network.BusCount(); bus++ {
			fmt.Printf(" %9.6f", p.At(b, bus))
		}
		fmt.Println()
	}
}
