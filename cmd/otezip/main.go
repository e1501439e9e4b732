package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

var opts struct {
	List    List    `command:"list" alias:"ls" description:"list the entries of one or more archives"`
	Extract Extract `command:"extract" alias:"x" description:"extract one or more archives"`
	Create  Create  `command:"create" alias:"c" description:"create a new archive from files and directories"`
	Append  Append  `command:"append" alias:"a" description:"append files and directories to an archive"`
	Gzip    Gzip    `command:"gzip" alias:"gz" description:"compress standalone files with the DEFLATE codec in a gzip wrapper"`
	Gunzip  Gunzip  `command:"gunzip" alias:"gunz" description:"decompress standalone gzip files"`
	Version Version `command:"version" description:"print version information"`
}

func main() {
	p := flags.NewParser(&opts, flags.Default)

	_, err := p.Parse()
	if err != nil && !flags.WroteHelp(err) {
		os.Exit(1)
	}
}
