package main

import (
	"log"

	"github.com/openhood/jeepcan/app/convert"
	"github.com/openhood/jeepcan/app/listen"
	"github.com/openhood/jeepcan/pkg/cli"
)

func main() {
	c := cli.NewCLI(
		"jeepcan",
		"Decode Jeep JL body-network CAN traffic into typed events.",
	)

	c.AddCommands(
		convert.NewCommand(),
		listen.NewCommand(),
	)

	if err := c.Run(); err != nil {
		log.Fatal(err)
	}
}
