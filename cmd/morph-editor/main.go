package main

import (
	"flag"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"

	"github.com/esimov/morph/editor"
)

const appID = "com.esimov.morph-editor"

func main() {
	debugMode := flag.Bool("debug", false, "Enable verbose logging")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stdout)
	if *debugMode {
		log.SetLevel(logrus.DebugLevel)
	}

	myApp := app.NewWithID(appID)
	window := myApp.NewWindow("Morph Editor")
	window.Resize(fyne.NewSize(1200, 800))

	ed := editor.New(window, log)
	window.SetContent(ed.BuildUI())

	log.Info("Starting morph editor")
	window.ShowAndRun()
}
