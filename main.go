package main

import "github.com/silcast/crane-admin/cmd"

func main() {
	cmd.Execute()
}
