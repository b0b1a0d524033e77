package main

import (
	"github.com/ssukijth0330/disney-hls-parser-new-discontinuity/cmd"
)

func main() {
	cmd.Execute()
}
