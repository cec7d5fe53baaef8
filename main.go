package main

import "github.com/3kaiu/reader-sub001/cmd"

func main() {
	cmd.Execute()
}
