package main

import "lostfound-backend/cmd"

func main() {
	cmd.Run()
}
