package main

import (
	"os"

	pensievecmder "github.com/pensieveco/pensieve/cmd/pensieve"
)

func main() {
	cmd := pensievecmder.NewPensieveCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
