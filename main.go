package main

import "github.com/gdrealm/goiga/cmd"

func main() {
	cmd.Execute()
}
