package main

import (
	"github.com/dhiraj-inti/aml-application/cmd/amlcontract/cmd"
)

// AML Oracle Contract CLI
//
func main() {
	cmd.Execute()
}
