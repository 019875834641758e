package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/viant/postboard/cli"
)

func main() {
	err := cli.Run(context.Background(), os.Args[1:], os.Stdout)
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		fmt.Println(flagsErr.Message)
		return
	}
	if err != nil {
		log.Fatal(err)
	}
}
