package daemon

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"syscall"

	"qview/common"
	"qview/httpsrv"
	"qview/sigwait"
)

const authRealm = "qview remote access"

// Options forwardable per verb.  Anything else in the query string is a
// client error; in particular -v and -i stay local to the server.
var (
	renderParams = map[string]bool{
		"width":     false,
		"separator": false,
		"sort":      false,
		"r":         true,
		"long":      true,
		"color":     true,
	}
	verbParams = map[string]map[string]bool{
		"jobs": {
			"owner":    false,
			"name":     false,
			"state":    false,
			"id":       false,
			"walltime": false,
			"memused":  false,
			"pmem":     false,
			"host":     false,
		},
		"nodes": {
			"state": false,
			"ctype": false,
			"load":  false,
		},
		"owners": {
			"owner": false,
		},
	}
)

func (dc *DaemonCommand) Perform(_ io.Reader, stdout, stderr io.Writer) error {
	for verb := range verbParams {
		http.HandleFunc("/"+verb, dc.ReportHandler(verb))
	}

	var programFailed atomic.Bool
	s := httpsrv.New(dc.Verbose, int(dc.Port), func(err error) {
		programFailed.Store(true)
	})
	go s.Start()
	defer s.Stop()

	// SIGTERM shuts the daemon down; SIGHUP rereads the password file so
	// that credentials can be rotated without a restart.
	for sigwait.WaitForSignal(syscall.SIGHUP, syscall.SIGTERM) == syscall.SIGHUP {
		if dc.authenticator == nil {
			continue
		}
		if err := dc.authenticator.Reread(); err != nil {
			common.Log.Warningf("Failed to reread %s: %v", dc.AuthFile, err)
		} else {
			common.Log.Infof("Reread %s", dc.AuthFile)
		}
	}

	if programFailed.Load() {
		return errors.New("HTTP server failed to start, or errored out")
	}
	return nil
}

// ReportHandler returns the HTTP handler that serves one report verb.
func (dc *DaemonCommand) ReportHandler(verb string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !dc.assertMethod(w, r, "POST") || !dc.authenticate(w, r) {
			return
		}
		args, ok := dc.collectArgs(verb, w, r.URL.Query())
		if !ok {
			return
		}

		var report, errs bytes.Buffer
		err := dc.runVerb(verb, args, r.Body, &report, &errs)
		if err != nil {
			common.Log.Warningf("%s: %v", verb, err)
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "%v\n", err)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write(report.Bytes())
		if errs.Len() > 0 {
			common.Log.Warningf("%s: stderr output: %s", verb, errs.String())
		}
	}
}

// collectArgs maps the query string onto a command line for the verb.  The
// daemon defaults to plain output; a client that wants escape codes asks
// with color=true.
func (dc *DaemonCommand) collectArgs(verb string, w http.ResponseWriter, query url.Values) ([]string, bool) {
	params := verbParams[verb]
	args := []string{}
	colored := false
	for key, values := range query {
		isBool, knownRender := renderParams[key]
		if !knownRender {
			var knownVerb bool
			isBool, knownVerb = params[key]
			if !knownVerb {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprintf(w, "Bad parameter %s\n", key)
				return nil, false
			}
		}
		for _, v := range values {
			if isBool {
				if v != "true" {
					w.WriteHeader(http.StatusBadRequest)
					fmt.Fprintf(w, "Bad value for boolean parameter %s\n", key)
					return nil, false
				}
				if key == "color" {
					colored = true
					continue
				}
				args = append(args, "-"+key)
			} else {
				args = append(args, "-"+key, v)
			}
		}
	}
	if colored {
		args = append(args, "-color")
	} else {
		args = append(args, "-nocolor")
	}
	return args, true
}

func (dc *DaemonCommand) assertMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		common.Log.Infof("Bad method %s on %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, "Bad method %s\n", r.Method)
		return false
	}
	return true
}

func (dc *DaemonCommand) authenticate(w http.ResponseWriter, r *http.Request) bool {
	if dc.authenticator == nil {
		return true
	}
	user, pass, ok := r.BasicAuth()
	if !ok || !dc.authenticator.Authenticate(user, pass) {
		common.Log.Infof("Authentication failed on %s", r.URL.Path)
		w.Header().Set("WWW-Authenticate", `Basic realm="`+authRealm+`"`)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "Unauthorized\n")
		return false
	}
	return true
}
