package main

import "github.com/TingluoHuang/music-player/cmd"

func main() {
	cmd.Execute()
}
