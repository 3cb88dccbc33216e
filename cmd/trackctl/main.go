package main

import "github.com/jkowalczyk/price-tracker/cmd/trackctl/cmd"

func main() {
	cmd.Execute()
}
