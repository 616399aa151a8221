package config

import (
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/JotaGreen/keytap-sub001/internal/game"
	"github.com/JotaGreen/keytap-sub001/internal/score"
)

var (
	Directory     = kingpin.Arg("directory", "Song/map directory").Required().ExistingDir()
	Rate          = kingpin.Flag("rate", "Playback speed").Default("1.0").Short('r').Float64()
	Offset        = kingpin.Flag("offset", "Global note offset").Default("0ms").Short('o').Duration()
	Delay         = kingpin.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	FramePeriod   = kingpin.Flag("frame-period", "Render frame period").Default("16ms").Short('p').Duration()
	ScrollSpeed   = kingpin.Flag("scroll-speed", "Columns per second").Default("20").Short('s').Float64()
	SeekStep      = kingpin.Flag("seek-step", "Paused seek step").Default("1s").Duration()
	goodWindow    = kingpin.Flag("good", "Good hit window").Default("140ms").Duration()
	perfectWindow = kingpin.Flag("perfect", "Perfect hit window, 0 is half of good").Default("0ms").Duration()
	Wait          = kingpin.Flag("wait", "Hold time on a miss until its key is played").Short('w').Bool()
	noDeath       = kingpin.Flag("no-death", "Keep playing after health empties").Bool()
	healthStart   = kingpin.Flag("health-start", "Starting health").Default("50").Int()
	healthMax     = kingpin.Flag("health-max", "Health ceiling").Default("100").Int()
	Keys          = kingpin.Flag("keys", "Keys for C through B").Default("awsedftgyhuj").Short('k').String()
	MIDI          = kingpin.Flag("midi", "Listen for notes on a MIDI input port").Short('m').Bool()
	MIDIPort      = kingpin.Flag("midi-port", "MIDI input port name substring").String()
	DB            = kingpin.Flag("db", "Score database path").Default("scores.db").String()
)

// Parse is called from main, never from init, so test binaries
// importing this package keep their own flags.
func Parse() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}

func Windows() (game.Windows, error) {
	return game.NewWindows(*goodWindow, *perfectWindow)
}

func Rules() score.Rules {
	rules := score.DefaultRules()
	rules.NoDeath = *noDeath
	rules.StartHealth = *healthStart
	rules.MaxHealth = *healthMax
	return rules
}
