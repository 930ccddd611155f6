package logo

import (
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

func Display() {
	s, _ := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Base", pterm.FgCyan.ToStyle()),
		putils.LettersFromStringWithStyle("58", pterm.FgLightMagenta.ToStyle())).Srender()
	pterm.DefaultCenter.Println(s)
	pterm.DefaultCenter.WithCenterEachLineSeparately().
		Println("Base58 and Base58Check codec\nbitcoin, monero, flickr and ripple alphabets")
}
