package main

import (
	"log"
	"os"

	"github.com/viant/dyopen"
)

func main() {
	if err := dyopen.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
