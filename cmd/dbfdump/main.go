package main

import "github.com/xbaseio/dbf/cmd/dbfdump/cmd"

func main() {
	cmd.Execute()
}
