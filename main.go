package main

import "github.com/algrano/yt-grano/cmd"

func main() {
	cmd.Execute()
}
