package main

import "vincit.fi/gallery-thumbs/cmd"

func main() {
	cmd.Execute()
}
