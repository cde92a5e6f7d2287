package main

import "github.com/tanklog/mtreplay-service-go/cmd"

func main() {
	cmd.Execute()
}
