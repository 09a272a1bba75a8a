package sample

import "fmt"

// Greeting is the default greeting
const Greeting = "hello"

var counter int

type Greeter struct {
	Name string
}

func (g *Greeter) Greet(times int, punctuation ...string) string {
	const suffix = "!"
	message := Greeting + " " + g.Name
	var parts []string
	for i := 0; i < times; i++ {
		parts = append(parts, message) // @loop
	}
	for idx, part := range parts {
		_ = idx
		_ = part
	}
	later := suffix
	counter++
	return fmt.Sprint(parts, later, punctuation) // @return
}

func Apply(values []int) int {
	total := 0
	visit := func(v int) {
		inner := v * 2 // @closure
		total += inner
	}
	for _, v := range values {
		visit(v)
	}
	return total // @apply
}
