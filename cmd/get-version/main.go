package main

import "github.com/oshokin/get-version/cmd/get-version/cmd"

func main() {
	cmd.Execute()
}
