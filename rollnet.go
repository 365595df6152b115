// This file is part of Rollnet.
//
// Rollnet is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rollnet is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Rollnet.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jetsetilly/rollnet/comparison"
	"github.com/jetsetilly/rollnet/logger"
	"github.com/jetsetilly/rollnet/modalflag"
	"github.com/jetsetilly/rollnet/netplay"
	"github.com/jetsetilly/rollnet/performance"
	"github.com/jetsetilly/rollnet/performance/limiter"
	"github.com/jetsetilly/rollnet/prefs"
	"github.com/jetsetilly/rollnet/sim"
	"github.com/jetsetilly/rollnet/statsview"
	"github.com/jetsetilly/rollnet/userinput"
	"github.com/jetsetilly/rollnet/version"
)

// number of ticks between updates of the status line
const statusInterval = 15

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("PLAY", "COMPARE", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "PLAY":
		err = play(md)
	case "COMPARE":
		err = compare(md)
	case "PERFORMANCE":
		err = perform(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.Path(), err)
		os.Exit(20)
	}
}

func play(md *modalflag.Modes) error {
	md.NewMode()

	config := md.AddString("config", "", "preferences file (default netplay.yaml in resource directory)")
	player := md.AddInt("player", 1, "player slot: 1 or 2")
	remote := md.AddString("remote", "", "remote host with optional port")
	loopback := md.AddBool("loopback", false, "both players on this machine")
	port := md.AddInt("port", netplay.DefaultPort, "base port")
	window := md.AddInt("window", 0, "prediction window in frames (0 for the default)")
	diagnostics := md.AddBool("diagnostics", false, "desync detection and state dumps")
	dumpDir := md.AddString("dump", "", "directory for state dumps")
	loss := md.AddFloat64("loss", netplay.DefaultPacketLoss, "proportion of outgoing datagrams to drop")
	metrics := md.AddString("metrics", "", "address of prometheus metrics endpoint")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (available: %v)", statsview.Available()))
	prefsStr := md.AddString("prefs", "", "additional preferences as key::value pairs")
	log := md.AddBool("log", false, "echo log to stderr")

	md.AdditionalHelp("press q or escape to end the session")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stderr)
	} else {
		logger.SetEcho(nil)
	}

	pref, err := prefs.Load(*config)
	if err != nil {
		return err
	}

	// flags override the preferences file and environment but only if they
	// have been specified
	if md.IsSet("player") {
		pref.Player = *player
	}
	if md.IsSet("remote") {
		pref.Remote = *remote
	}
	if md.IsSet("loopback") {
		pref.Loopback = *loopback
	}
	if md.IsSet("port") {
		pref.Port = *port
	}
	if md.IsSet("window") {
		pref.PredictionWindow = *window
	}
	if md.IsSet("diagnostics") {
		pref.Diagnostics = *diagnostics
	}
	if md.IsSet("dump") {
		pref.DumpDir = *dumpDir
	}
	if md.IsSet("loss") {
		pref.PacketLoss = *loss
	}
	if md.IsSet("metrics") {
		pref.MetricsAddr = *metrics
	}
	if md.IsSet("statsview") {
		pref.Statsview = *stats
	}

	// the remote can also be given as an argument
	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		pref.Remote = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md.Path())
	}

	if *prefsStr != "" {
		prefs.PushCommandLineStack(*prefsStr)
		err = pref.ApplyCommandLine()
		unused := prefs.PopCommandLineStack()
		if err != nil {
			return err
		}
		if unused != "" {
			logger.Logf(logger.Allow, "prefs", "unused preferences: %s", unused)
		}
	}

	err = pref.Validate()
	if err != nil {
		return err
	}

	if pref.Statsview {
		if statsview.Available() {
			statsview.Launch(os.Stdout, "")
		} else {
			fmt.Println("* statsview not available in this build")
		}
	}

	var m *netplay.Metrics
	if pref.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		m, err = netplay.NewMetrics(reg)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              pref.MetricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			err := srv.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Log(logger.Allow, "metrics", err)
			}
		}()
		defer srv.Close()
	}

	// keyboard is optional. without it the local player sends no input but
	// the session is otherwise unaffected
	var ctrl *userinput.Controllers
	kb, err := userinput.NewKeyboard()
	if err != nil {
		logger.Log(logger.Allow, "userinput", err)
		ctrl = userinput.NewControllers(nil)
	} else {
		defer kb.Close()
		ctrl = userinput.NewControllers(kb.Events())
	}

	world, err := sim.NewWorld(sim.DefaultViewport)
	if err != nil {
		return err
	}

	np, err := netplay.NewNetplay(world, netplay.Options{
		Loopback:         pref.Loopback,
		Port:             pref.Port,
		PredictionWindow: pref.PredictionWindow,
		Diagnostics:      pref.Diagnostics,
		DumpDir:          pref.DumpDir,
		PacketLoss:       pref.PacketLoss,
		Inputs:           []netplay.InputSource{ctrl},
		Metrics:          m,
	})
	if err != nil {
		return err
	}

	err = np.SetParams(pref.Player, pref.Remote)
	if err != nil {
		return err
	}

	err = np.Begin()
	if err != nil {
		return err
	}

	// interrupts end the session rather than the program
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	lim, err := limiter.NewLimiter(pref.TickRate)
	if err != nil {
		return err
	}
	defer lim.Stop()

	var exiting bool
	var ticks int

	for np.IsRunning() {
		lim.Wait()

		select {
		case <-intChan:
			exiting = true
		default:
		}

		// Input() is only called by the session once it is connecting so
		// the quit key is looked for here as well
		ctrl.Poll()
		if !exiting && ctrl.Quit {
			exiting = true
		}

		// the session keeps running until it is idle so that the remote
		// peer is told about the disconnection
		if exiting {
			np.HandleMenuExit()
		}

		np.Run()

		ticks++
		if ticks%statusInterval == 0 {
			status(np, world)
		}
	}

	fmt.Print("\r\n")

	if ev, ok := np.LastDesync(); ok {
		fmt.Printf("desync detected: %s\n", ev)
	}

	return nil
}

func status(np *netplay.Netplay, world *sim.World) {
	s := fmt.Sprintf("%-13s %s", np.State(), world.Screen())
	if np.State() == netplay.Running {
		s = fmt.Sprintf("%s | %s", s, np.NetworkStats())
	}
	fmt.Printf("\r%s\x1b[K", s)
}

func compare(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("compares two state dumps and reports the first difference")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("two state files required for %s mode", md.Path())
	}

	r, err := comparison.CompareFiles(md.GetArg(0), md.GetArg(1))
	if err != nil {
		return err
	}
	r.Write(os.Stdout)

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddDuration("duration", 5*time.Second, "run duration")
	profile := md.AddString("profile", "none", "profiling: cpu, mem, trace, all (comma separated)")
	loss := md.AddFloat64("loss", 0.0, "proportion of outgoing datagrams to drop")
	diagnostics := md.AddBool("diagnostics", true, "desync detection")
	log := md.AddBool("log", false, "echo log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stderr)
	} else {
		logger.SetEcho(nil)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	return performance.Check(os.Stdout, prf, *duration, *loss, *diagnostics)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Printf("%s %s\n", version.ApplicationName, ver)
	if *revision {
		fmt.Println(rev)
	}
	fmt.Printf("protocol %d\n", version.ProtocolVersion)

	if len(md.RemainingArgs()) > 0 {
		fmt.Printf("ignoring arguments: %s\n", strings.Join(md.RemainingArgs(), " "))
	}

	return nil
}
