package main

import "nft-toolkit/cmd"

func main() {
	cmd.Execute()
}
