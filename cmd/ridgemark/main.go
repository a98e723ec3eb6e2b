package main

import "github.com/fingervision/ridgemark/cmd/ridgemark/cmd"

func main() {
	cmd.Execute()
}
