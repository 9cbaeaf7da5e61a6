package main

import "github.com/Manu343726/reggen/cmd"

func main() {
	cmd.Execute()
}
