package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/typelate/reportstamp/internal/stamp"
)

//go:generate go run ./

func main() {
	root, err := filepath.Abs(filepath.FromSlash("../.."))
	if err != nil {
		log.Fatal(err)
	}
	u := stamp.New(stamp.NewStorage(), log.New(os.Stderr, "generate-readme: ", 0))
	res, err := u.Update(context.Background(), stamp.Request{
		Root:         root,
		RunStartedAt: os.Getenv(stamp.RunStartedAtEnv),
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res)
}
