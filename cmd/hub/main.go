package main

import "github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/cmd/hub/root"

func main() {
	root.Execute()
}
