package main

import "snowreport/cmd"

func main() {
	cmd.Execute()
}
