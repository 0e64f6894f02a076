package sigwait

import (
	"os"
	"os/signal"
)

// WaitForSignal blocks until one of the given signals arrives and returns
// the signal that did.
func WaitForSignal(signals ...os.Signal) os.Signal {
	stopSignal := make(chan os.Signal, 1)
	signal.Notify(stopSignal, signals...)
	defer signal.Stop(stopSignal)
	return <-stopSignal
}
