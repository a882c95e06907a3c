package main

import "github.com/nfrund/safeonboard/cmd/onboard-cli/cmd"

func main() {
	cmd.Execute()
}
