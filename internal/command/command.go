// Package command implements the attui console command that edits the HUD
// config at runtime.
package command

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"attitude-hud/internal/config"
)

// Verbs accepted by the host console dispatcher
var Verbs = []string{"attui", "attitudeui"}

const helpText = `attui - attitude indicator settings
  attui show                         print current settings
  attui scale <float>                gauge size (min 0.1)
  attui movex|offsetx <px>           horizontal offset
  attui movey|offsety <px>           vertical offset
  attui color <base|level|font|bg> <r g b [a]> | <#RRGGBB[AA]>
  attui font size <int>              label font size (min 10)
  attui text <on|off>                show or hide the pitch label
  attui reset                        restore defaults
  attui reload                       re-read the config file
  attui path                         print the config file path`

// Interpreter applies attui commands to a config and persists the result.
type Interpreter struct {
	cfg  *config.Config
	path string
	out  io.Writer
	root *cobra.Command

	// saved is called after every successful save; used by tests and the
	// host status bar.
	saved func()
}

// New creates an interpreter editing cfg and saving to path. Output lines
// are written to out.
func New(cfg *config.Config, path string, out io.Writer) *Interpreter {
	in := &Interpreter{
		cfg:  cfg,
		path: path,
		out:  out,
	}
	in.root = in.newRootCommand()
	return in
}

// OnSave registers fn to run after each successful save.
func (in *Interpreter) OnSave(fn func()) {
	in.saved = fn
}

// IsVerb reports whether word names this command.
func IsVerb(word string) bool {
	for _, v := range Verbs {
		if strings.EqualFold(word, v) {
			return true
		}
	}
	return false
}

// Run executes one command line. args excludes the verb and is already
// split on whitespace. Errors are reported to the output, never returned.
func (in *Interpreter) Run(args []string) {
	// cobra falls back to os.Args when given nil
	line := []string{}
	if len(args) > 0 {
		line = append(line, strings.ToLower(args[0]))
		line = append(line, args[1:]...)
	}

	in.root.SetArgs(line)
	if err := in.root.Execute(); err != nil {
		in.println(err.Error())
	}
}

func (in *Interpreter) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:                "attui",
		Aliases:            []string{"attitudeui"},
		Short:              "Attitude indicator settings",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				in.show()
				return
			}
			in.println(helpText)
		},
	}
	root.SetOut(in.out)
	root.SetErr(in.out)
	root.SetHelpFunc(func(*cobra.Command, []string) { in.println(helpText) })

	root.AddCommand(
		in.leaf("show", nil, func([]string) { in.show() }),
		in.leaf("scale", nil, in.setScale),
		in.leaf("movex", []string{"offsetx"}, func(args []string) { in.setOffset(args, "offsetX", &in.cfg.OffsetX) }),
		in.leaf("movey", []string{"offsety"}, func(args []string) { in.setOffset(args, "offsetY", &in.cfg.OffsetY) }),
		in.leaf("color", []string{"colour"}, in.setColor),
		in.leaf("font", nil, in.setFont),
		in.leaf("text", nil, in.setText),
		in.leaf("reset", nil, in.reset),
		in.leaf("reload", nil, in.reload),
		in.leaf("path", nil, func([]string) { in.println(in.path) }),
	)
	return root
}

// leaf builds a subcommand that takes raw positional arguments, so values
// such as -20 are not mistaken for flags.
func (in *Interpreter) leaf(name string, aliases []string, run func(args []string)) *cobra.Command {
	return &cobra.Command{
		Use:                name,
		Aliases:            aliases,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			run(args)
		},
	}
}

func (in *Interpreter) setScale(args []string) {
	if len(args) != 1 {
		in.println("usage: attui scale <float>")
		return
	}
	v, ok := parseNumber(args[0])
	if !ok {
		in.println("usage: attui scale <float>")
		return
	}
	in.cfg.Scale = math.Max(v, config.MinScale)
	in.commit("scale", formatFloat(in.cfg.Scale))
}

func (in *Interpreter) setOffset(args []string, key string, dst *float64) {
	const usage = "usage: attui movex|movey <px>"
	if len(args) != 1 {
		in.println(usage)
		return
	}
	v, ok := parseNumber(args[0])
	if !ok {
		in.println(usage)
		return
	}
	*dst = v
	in.commit(key, formatFloat(v))
}

func (in *Interpreter) setColor(args []string) {
	const usage = "usage: attui color <base|level|font|bg> <r g b [a]> | <#RRGGBB[AA]>"
	if len(args) < 2 {
		in.println(usage)
		return
	}

	key, dst := in.colorTarget(args[0])
	if dst == nil {
		in.println(usage)
		return
	}

	c, ok := parseColorArgs(args[1:])
	if !ok {
		in.println(usage)
		return
	}
	*dst = c
	in.commit(key, "#"+config.FormatHexColor(c))
}

func (in *Interpreter) colorTarget(name string) (string, *color.NRGBA) {
	switch strings.ToLower(name) {
	case "base":
		return "baseColor", &in.cfg.Base
	case "level":
		return "levelColor", &in.cfg.Level
	case "font", "text":
		return "fontColor", &in.cfg.Font
	case "bg", "background":
		return "backgroundColor", &in.cfg.Background
	}
	return "", nil
}

func (in *Interpreter) setFont(args []string) {
	if len(args) != 2 || !strings.EqualFold(args[0], "size") {
		in.println("usage: attui font size <int>")
		return
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		in.println("usage: attui font size <int>")
		return
	}
	if n < config.MinFontSize {
		n = config.MinFontSize
	}
	in.cfg.FontSize = n
	in.commit("fontSize", strconv.Itoa(n))
}

func (in *Interpreter) setText(args []string) {
	if len(args) != 1 {
		in.println("usage: attui text <on|off>")
		return
	}
	on, ok := parseToggle(args[0])
	if !ok {
		in.println("usage: attui text <on|off>")
		return
	}
	in.cfg.ShowText = on
	in.commit("text", onOff(on))
}

func (in *Interpreter) reset([]string) {
	*in.cfg = config.Default()
	in.commit("reset", "defaults")
}

func (in *Interpreter) reload([]string) {
	*in.cfg = config.Load(in.path, *in.cfg)
	in.println("reloaded " + in.path)
	in.show()
}

// commit normalizes the config, saves it and prints the confirmation line.
func (in *Interpreter) commit(key, value string) {
	in.cfg.Normalize()
	if err := config.Save(in.path, *in.cfg); err != nil {
		log.Printf("Config save failed: %v", err)
	} else if in.saved != nil {
		in.saved()
	}
	in.println(fmt.Sprintf("%s -> %s", key, value))
}

func (in *Interpreter) show() {
	in.println(Status(in.cfg))
}

// Status renders cfg as a single key=value line.
func Status(cfg *config.Config) string {
	return fmt.Sprintf("scale=%s offset=(%s,%s) bg=#%s base=#%s level=#%s font=#%s fontSize=%d text=%s",
		formatFloat(cfg.Scale),
		formatFloat(cfg.OffsetX),
		formatFloat(cfg.OffsetY),
		config.FormatHexColor(cfg.Background),
		config.FormatHexColor(cfg.Base),
		config.FormatHexColor(cfg.Level),
		config.FormatHexColor(cfg.Font),
		cfg.FontSize,
		onOff(cfg.ShowText),
	)
}

func (in *Interpreter) println(s string) {
	fmt.Fprintln(in.out, s)
}

// parseColorArgs accepts a single hex token or 3-4 numeric channels. If any
// channel exceeds 1 all channels are read on the 0-255 scale.
func parseColorArgs(args []string) (color.NRGBA, bool) {
	if len(args) == 1 {
		return config.ParseHexColor(args[0])
	}
	if len(args) != 3 && len(args) != 4 {
		return color.NRGBA{}, false
	}

	ch := [4]float64{0, 0, 0, 1}
	bytes := false
	for i, a := range args {
		v, ok := parseNumber(a)
		if !ok {
			return color.NRGBA{}, false
		}
		ch[i] = v
		if v > 1 {
			bytes = true
		}
	}

	if bytes {
		if len(args) == 3 {
			ch[3] = 255
		}
		for i := range ch {
			ch[i] /= 255
		}
	}
	return config.ColorFromFloats(ch[0], ch[1], ch[2], ch[3]), true
}

// parseNumber parses invariant decimal text and rejects NaN and infinities.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseToggle(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "on", "1", "true", "yes":
		return true, true
	case "off", "0", "false", "no":
		return false, true
	}
	return false, false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
