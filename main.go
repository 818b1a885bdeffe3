package main

import "github.com/hiiscan/ifrscan/cmd"

func main() {
	cmd.Execute()
}
