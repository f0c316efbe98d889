package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// Fail records why a piece of content was skipped so repeated fetch runs do
// not retry it.
func Fail(dir, name, reason string) {
	fmt.Printf("skip: %s/%s\n", dir, name)
	if err := os.MkdirAll(dir, 0o777); err != nil {
		panic(err)
	}
	file, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		panic(err)
	}
	defer file.Close()
	if _, err := file.Write([]byte(reason)); err != nil {
		panic(err)
	}
}
