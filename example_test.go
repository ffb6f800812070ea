package strips_test

import (
	"context"
	"fmt"
	"log"

	"github.com/planfirst/strips"
	"github.com/planfirst/strips/logic"
	"github.com/planfirst/strips/planning"
)

func ExampleSolver_Solve() {
	drive := planning.MustNewAction(planning.ActionSpec{
		Name:   "Drive",
		Params: []logic.Term{logic.NewVar("x"), logic.NewVar("y")},
		PrecondPos: []logic.Term{
			logic.MustParseTerm("At(x)"),
			logic.MustParseTerm("Connected(x, y)"),
		},
		Add: []logic.Term{logic.MustParseTerm("At(y)")},
		Del: []logic.Term{logic.MustParseTerm("At(x)")},
	})

	prob, err := strips.PDDL(
		[]string{
			"Connected(Sibiu, Fagaras)",
			"Connected(Fagaras, Bucharest)",
			"At(Sibiu)",
			"Connected(x, y) ==> Connected(y, x)",
		},
		[]*planning.Action{drive},
		"At(Bucharest)",
	)
	if err != nil {
		log.Fatal(err)
	}

	solver, err := strips.NewSolver()
	if err != nil {
		log.Fatal(err)
	}

	plan, err := solver.Solve(context.Background(), "romania", prob)
	if err != nil {
		log.Fatal(err)
	}
	for _, step := range plan.StepStrings() {
		fmt.Println(step)
	}
	// Output:
	// Drive(Sibiu, Fagaras)
	// Drive(Fagaras, Bucharest)
}
