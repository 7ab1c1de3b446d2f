package util

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// CreateAsyncErrorChannel produces a channel for errors, able to hold capacity errors without a reader
func CreateAsyncErrorChannel(capacity int) chan error {
	return make(chan error, capacity)
}

// WaitAndCollectErrors drains errors until every goroutine tracked by wg has
// finished, returning all of the non-nil errors as a multierror
func WaitAndCollectErrors(wg *sync.WaitGroup, errors chan error) error {
	// the channel is closed once the WaitGroup is done, which ends the range
	go func() {
		defer close(errors)
		wg.Wait()
	}()
	var merr *multierror.Error
	for err := range errors {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}

// GetTrace produces the string representation of a stack trace
func GetTrace() string {
	var name, file string
	var line int
	var pc [16]uintptr
	var res strings.Builder
	n := runtime.Callers(3, pc[:])
	for _, pc := range pc[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line = fn.FileLine(pc)
		name = fn.Name()
		if !strings.HasPrefix(name, "runtime.") {
			fmt.Fprintf(&res, "%s\n\t%s:%d\n", name, file, line)
		}
	}
	return res.String()
}

// FormatMultiError formats multierrors for logging
func FormatMultiError(merrs []error) string {
	var msg = ""
	for i := 0; i < len(merrs); i++ {
		msg += fmt.Sprintf("%+v\n", merrs[i])
	}
	return msg
}
