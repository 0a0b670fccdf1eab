// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/zenbasic/ncdos"
	"github.com/ezrec/zenbasic/profile"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %v [flags] command [args]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, `
commands:
  format [label]        Format the disk image
  ls                    List files
  put file [name]       Copy a host file onto the disk
  get name [file]       Copy a disk file to the host
  rm name               Delete a disk file
  dump name             Hex dump a disk file
  free                  Show free space

flags:
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	var image string
	var proFile string
	var verbose bool

	flag.StringVar(&image, "d", "zenbasic.dsk", ".dsk image to use")
	flag.StringVar(&proFile, "p", "", "machine profile .toml")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Usage = usage

	flag.Parse()

	if flag.NArg() == 0 {
		usage()
	}

	prof := profile.Default()
	if len(proFile) != 0 {
		var err error
		prof, err = profile.Load(proFile)
		if err != nil {
			log.Fatalf("%v: %v", proFile, err)
		}
	}

	disk, err := ncdos.Open(image, prof.Geometry, prof.Label)
	if err != nil {
		log.Fatalf("%v: %v", image, err)
	}
	disk.Verbose = verbose

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "format":
		label := prof.Label
		if len(args) > 0 {
			label = args[0]
		}
		err = disk.Format(label)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	case "ls":
		if label, ok := disk.Label(); ok {
			fmt.Printf("Volume %v\n", label)
		}
		for _, file := range disk.ListFiles() {
			fmt.Printf("%-12v %6v\n", file.Name, file.Size)
		}
	case "put":
		if len(args) < 1 {
			usage()
		}
		name := filepath.Base(args[0])
		if len(args) > 1 {
			name = args[1]
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("%v: %v", args[0], err)
		}
		err = disk.SaveFile(name, data)
		if err != nil {
			log.Fatalf("%v: %v", name, err)
		}
	case "get":
		if len(args) < 1 {
			usage()
		}
		out := strings.ToLower(args[0])
		if len(args) > 1 {
			out = args[1]
		}
		data, err := disk.LoadFile(args[0])
		if err != nil {
			log.Fatalf("%v: %v", args[0], err)
		}
		err = os.WriteFile(out, data, 0644)
		if err != nil {
			log.Fatalf("%v: %v", out, err)
		}
	case "rm":
		if len(args) < 1 {
			usage()
		}
		err = disk.DeleteFile(args[0])
		if err != nil {
			log.Fatalf("%v: %v", args[0], err)
		}
	case "dump":
		if len(args) < 1 {
			usage()
		}
		data, err := disk.LoadFile(args[0])
		if err != nil {
			log.Fatalf("%v: %v", args[0], err)
		}
		for at := 0; at < len(data); at += 16 {
			fmt.Printf("$%04X:", at)
			for _, b := range data[at:min(at+16, len(data))] {
				fmt.Printf(" %02X", b)
			}
			fmt.Println()
		}
	case "free":
		free := disk.FreeSectors()
		fmt.Printf("%v sectors free (%v bytes)\n",
			free, free*prof.Geometry.BytesPerSector)
	default:
		usage()
	}
}
