package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"p6psg/internal/config"
	"p6psg/internal/log"
)

type CLI struct {
	Play    PlayCmd    `cmd:"" help:"Play a PSG bytecode file." default:"1"`
	Info    InfoCmd    `cmd:"" help:"Show channel layout for a PSG bytecode file."`
	Version VersionCmd `cmd:"" help:"Show psgplay version."`

	Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
}

type PlayCmd struct {
	Path string `arg:"" name:"/path/to/song.psg" help:"PC-6001 PSG bytecode file." required:"true" type:"existingfile"`

	Backend    string `name:"backend" help:"Output backend." enum:"headless,synth" default:"synth"`
	UI         string `name:"ui" help:"Event sink." enum:"term,trace,none" default:"term"`
	SampleRate int    `name:"rate" help:"Synth backend sample rate, in Hz." default:"44100"`
	Out        string `name:"out" help:"Write rendered audio to this WAV file (synth backend only)." type:"path"`
	MaxTicks   int    `name:"max-ticks" help:"Stop after N host ticks (0 = until all three channels' bytecode is exhausted)."`
}

type InfoCmd struct {
	Path string `arg:"" name:"/path/to/song.psg" required:"true" type:"existingfile"`
}

type VersionCmd struct{}

const version = "0.1.0"

func (VersionCmd) Run() error {
	fmt.Println("psgplay", version)
	return nil
}

var vars = kong.Vars{
	"log_help": "Enable logging for specified modules.",
}

func parseArgs(args []string) (CLI, *kong.Context) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("psgplay"),
		kong.Description("PC-6001 PSG bytecode player."),
		kong.UsageOnError(),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	return cli, ctx
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module
// mask. Implements kong.MapperValue.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	return applyLogSpec(ctx.Scan.Pop().Value.(string))
}

// applyLogSpec enables (or disables) debug logging per a comma-separated
// module list, shared by the --log flag and the config file's
// general.log_modules setting.
func applyLogSpec(spec string) error {
	nolog := false
	allLogs := false
	var mask log.ModuleMask

	for _, v := range strings.Split(spec, ",") {
		switch v {
		case "", "none":
			// config file left unset; nothing to do
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			mask |= mod.Mask()
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		log.Disable()
		return nil
	}
	if allLogs {
		mask = log.ModuleMaskAll
	}
	log.EnableDebugModules(mask)
	return nil
}

// applyConfigDefaults seeds logging from the on-disk player config before
// CLI flags (which take precedence, decoding after this call) are parsed.
func applyConfigDefaults() {
	cfg := config.LoadOrDefault()
	if cfg.General.LogModules == "" {
		return
	}
	if err := applyLogSpec(cfg.General.LogModules); err != nil {
		log.ModPlayer.Warnf("ignoring invalid config log_modules %q: %v", cfg.General.LogModules, err)
	}
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+": %s", append(args, err)...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
