package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-patchbridge/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "monitor":
		filter := ""
		if len(os.Args) > 2 {
			filter = os.Args[2]
		}
		monitor(filter)
	case "poll":
		pollDevices()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI port tools")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list            - List MIDI input ports")
	fmt.Println("  monitor [name]  - Print notes and CCs from matching inputs")
	fmt.Println("  poll            - Watch inputs connect and disconnect")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ins, ok := midi.ListInPorts(3 * time.Second)
	if !ok {
		fmt.Println("\nTIMEOUT! The MIDI driver is hung.")
		return
	}
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
}

func monitor(filter string) {
	ins, ok := midi.ListInPorts(3 * time.Second)
	if !ok {
		fmt.Println("TIMEOUT! The MIDI driver is hung.")
		return
	}

	var stops []func()
	for _, in := range ins {
		if filter != "" && !strings.Contains(strings.ToLower(in.String()), strings.ToLower(filter)) {
			continue
		}
		stop, err := listen(in)
		if err != nil {
			fmt.Printf("%s: %v\n", in.String(), err)
			continue
		}
		fmt.Printf("listening on %s\n", in.String())
		stops = append(stops, stop)
	}
	if len(stops) == 0 {
		fmt.Println("no matching inputs")
		return
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	for _, stop := range stops {
		stop()
	}
}

func listen(in drivers.In) (func(), error) {
	port := in.String()
	return gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		ev, ok := midi.Decode(msg, port)
		if !ok {
			return
		}
		switch ev.Type {
		case midi.NoteOn:
			fmt.Printf("%8d  ch%-2d note on   %3d vel %3d\n", timestampms, ev.Channel+1, ev.Note, ev.Velocity)
		case midi.NoteOff:
			fmt.Printf("%8d  ch%-2d note off  %3d\n", timestampms, ev.Channel+1, ev.Note)
		case midi.CC:
			fmt.Printf("%8d  ch%-2d cc %3d = %3d\n", timestampms, ev.Channel+1, ev.Controller, ev.Value)
		}
	})
}

func pollDevices() {
	fmt.Println("Polling for device changes (Ctrl+C to stop)...")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	dm := midi.NewDeviceManager(nil)
	go dm.Run(ctx)

	for ev := range dm.Events() {
		switch ev.Type {
		case midi.DeviceConnected:
			fmt.Printf("+ %s\n", ev.ID)
		case midi.DeviceDisconnected:
			fmt.Printf("- %s\n", ev.ID)
		}
	}
}
