package util

import (
	"bufio"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pantrylink/pantrylink/pkg/errors"
)

// HandleFatalError prints the given error and exits. FriendlyErrors are
// printed without decoration since their messages are written for end users.
func HandleFatalError(err error) {
	if friendly, ok := errors.RootCause(err).(errors.FriendlyError); ok {
		fmt.Fprintln(os.Stderr, friendly.Message)
	} else {
		log.WithError(err).Error("Fatal error")
	}
	os.Exit(1)
}

// HandlePanic recovers from panics so that they're logged before the process
// crashes. It should be deferred at the top of every goroutine.
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	log.WithField("stacktrace", string(debug.Stack())).
		Errorf("Panicked with error: %v", r)
	os.Exit(1)
}

// PromptYesOrNo asks the user the given question, and only accepts a yes or
// no answer.
func PromptYesOrNo(question string) (bool, error) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s (y/n): ", question)
		response, err := reader.ReadString('\n')
		if err != nil {
			return false, errors.WithContext(err, "read response")
		}

		switch strings.ToLower(strings.TrimSpace(response)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}
