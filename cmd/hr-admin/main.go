package main

import "github.com/tuannt39-study/jhipster-sample/internal/cli"

func main() {
	cli.Execute()
}
