package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"lukechampine.com/flagg"
)

var (
	// to be supplied at build time
	githash   = "?"
	builddate = "?"
)

var (
	rootUsage = `Usage:
    b3sum [flags] [file...]
    b3sum [flags] [action]

Prints the BLAKE3 checksum of each file. With no file, or when file is -,
standard input is read.

Defaults for -l, -no-names, and -tag may be set in ~/.config/b3/b3sum.toml.

Actions:
    check           verify checksums listed in files
    version         print version information
`
	versionUsage = rootUsage
	checkUsage   = `Usage:
    b3sum [flags] check [file...]

Reads lines of the form "<checksum>  <path>" (as printed by b3sum) from each
file, or from standard input, and reports whether each path still matches its
checksum. The output length is taken from the length of each checksum. The
-key and -derive-key flags must match those used to produce the checksums.
`
)

func check(ctx string, err error) {
	if err != nil {
		log.Fatalln(ctx, err)
	}
}

func main() {
	log.SetFlags(0)
	err := loadConfig()
	check("Could not load config file:", err)

	rootCmd := flagg.Root
	length := rootCmd.Int("l", config.Length, "number of output bytes")
	keyHex := rootCmd.String("key", "", "32-byte key, hex-encoded, for keyed hashing")
	context := rootCmd.String("derive-key", "", "context string for key derivation")
	noNames := rootCmd.Bool("no-names", config.NoNames, "omit filenames from output")
	tag := rootCmd.Bool("tag", config.Tag, "print BSD-style checksums")
	rootCmd.Usage = flagg.SimpleUsage(rootCmd, rootUsage)
	versionCmd := flagg.New("version", versionUsage)
	checkCmd := flagg.New("check", checkUsage)

	cmd := flagg.Parse(flagg.Tree{
		Cmd: rootCmd,
		Sub: []flagg.Tree{
			{Cmd: versionCmd},
			{Cmd: checkCmd},
		},
	})
	args := cmd.Args()

	m, err := parseMode(*keyHex, *context)
	check("Invalid mode:", err)
	if len(args) == 0 {
		args = []string{"-"}
	}

	switch cmd {
	case versionCmd:
		log.Printf("b3sum v0.1.0\nCommit:     %s\nGo version: %s %s/%s\nBuild Date: %s\n",
			githash, runtime.Version(), runtime.GOOS, runtime.GOARCH, builddate)
	case rootCmd:
		if *length < 0 {
			log.Fatalln("Output length must not be negative")
		}
		for _, path := range args {
			sum, err := m.sumFile(path, *length)
			check("Hashing failed:", err)
			fmt.Println(formatSum(sum, path, *noNames, *tag))
		}
	case checkCmd:
		var failed int
		for _, path := range args {
			f := os.Stdin
			if path != "-" {
				f, err = os.Open(path)
				check("Could not open checksum file:", err)
			}
			n, err := checkSums(m, f, os.Stdout)
			f.Close()
			failed += n
			check("Check failed:", err)
		}
		if failed > 0 {
			log.Fatalf("WARNING: %v computed checksum(s) did NOT match", failed)
		}
	}
}
