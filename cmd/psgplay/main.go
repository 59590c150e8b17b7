// Command psgplay loads a PC-6001 PSG bytecode file and plays it through a
// pluggable backend, optionally rendering the session to a WAV file and/or
// reporting live state through a terminal or trace sink.
package main

import "os"

func main() {
	applyConfigDefaults()
	cli, ctx := parseArgs(os.Args[1:])

	switch ctx.Command() {
	case "play </path/to/song.psg>":
		playMain(cli.Play)
	case "info </path/to/song.psg>":
		infoMain(cli.Info)
	case "version":
		checkf(cli.Version.Run(), "version command failed")
	default:
		playMain(cli.Play)
	}
}
