package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"btreemap"
)

var (
	header   = color.New(color.FgCyan, color.Bold)
	found    = color.New(color.FgGreen)
	notFound = color.New(color.FgRed)
)

func main() {
	degree := flag.Int("degree", 3, "minimum degree of the B-tree")
	demo := flag.Bool("demo", false, "run the scripted demo instead of the REPL")
	flag.Parse()

	tree, err := btreemap.New[string](*degree)
	if err != nil {
		fmt.Fprintln(os.Stderr, "btree-demo:", err)
		os.Exit(1)
	}

	if *demo {
		runDemo(tree, *degree)
		return
	}
	runREPL(tree)
}

func runDemo(tree *btreemap.Map[string], degree int) {
	header.Printf("B-tree with minimum degree %d\n", degree)

	pairs := []struct{ key, val string }{
		{"10", "Ten"}, {"20", "Twenty"}, {"05", "Five"}, {"06", "Six"},
		{"12", "Twelve"}, {"30", "Thirty"}, {"07", "Seven"}, {"17", "Seventeen"},
	}
	header.Println("\nInserting key/value pairs...")
	for _, p := range pairs {
		tree.Set([]byte(p.key), p.val)
	}
	tree.Dump(os.Stdout)

	header.Println("\nSearching...")
	printLookup(tree, "06")
	printLookup(tree, "15")

	header.Println("\nDeleting key 06...")
	tree.Delete([]byte("06"))
	tree.Dump(os.Stdout)
	printLookup(tree, "06")

	header.Println("\nInserting more keys to demonstrate balancing...")
	for i := 40; i <= 50; i += 2 {
		tree.Set([]byte(fmt.Sprintf("%02d", i)), fmt.Sprintf("Value%d", i))
	}
	tree.Dump(os.Stdout)

	header.Println("\nDeleting keys 20, 30, 40...")
	for _, k := range []string{"20", "30", "40"} {
		tree.Delete([]byte(k))
	}
	tree.Dump(os.Stdout)
}

func printLookup(tree *btreemap.Map[string], key string) {
	val, err := tree.Get([]byte(key))
	switch {
	case err == nil:
		found.Printf("%s = %s\n", key, val)
	case errors.Is(err, btreemap.ErrKeyNotFound):
		notFound.Printf("%s not found\n", key)
	default:
		notFound.Printf("%s: %v\n", key, err)
	}
}

func runREPL(tree *btreemap.Map[string]) {
	fmt.Println(`Commands:
  SET <key> <value>  insert or overwrite a pair
  GET <key>          look up a key
  DEL <key>          delete a key
  DUMP               print the tree structure
  EXIT`)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		process(tree, scanner.Text())
		fmt.Print("> ")
	}
}

func process(tree *btreemap.Map[string], line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch strings.ToLower(fields[0]) {
	case "set":
		if len(fields) != 3 {
			fmt.Println("usage: SET <key> <value>")
			return
		}
		if err := tree.Set([]byte(fields[1]), fields[2]); err != nil {
			notFound.Println(err)
			return
		}
		tree.Dump(os.Stdout)
	case "get":
		if len(fields) != 2 {
			fmt.Println("usage: GET <key>")
			return
		}
		printLookup(tree, fields[1])
	case "del":
		if len(fields) != 2 {
			fmt.Println("usage: DEL <key>")
			return
		}
		if err := tree.Delete([]byte(fields[1])); err != nil {
			notFound.Println(err)
			return
		}
		tree.Dump(os.Stdout)
	case "dump":
		tree.Dump(os.Stdout)
	case "exit":
		os.Exit(0)
	default:
		fmt.Printf("unknown command %q\n", fields[0])
	}
}
