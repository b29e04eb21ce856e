package main

import "github.com/mj1618/mobile-locator/cmd"

func main() {
	cmd.Execute()
}
