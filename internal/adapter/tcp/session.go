package tcp

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// runSession drives the line-oriented dialogue for one connection: the
// login prompt loop, then the command loop with confirmation previews.
// The rw abstraction keeps the dialogue testable without a real socket.
func (s *Server) runSession(rw io.ReadWriter, log *logrus.Entry) {
	scanner := bufio.NewScanner(rw)
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		// telnet-style clients terminate lines with \r\n
		return strings.TrimRight(scanner.Text(), "\r"), true
	}

	for {
		fmt.Fprintln(rw, "Enter Username")
		username, ok := readLine()
		if !ok {
			return
		}
		fmt.Fprintln(rw, "Enter Password")
		password, ok := readLine()
		if !ok {
			return
		}

		id, ok := s.creds.Verify(username, password)
		if !ok {
			log.WithField("username", username).Warn("login failed")
			fmt.Fprintln(rw, "Log In Failed")
			continue
		}
		log.WithField("username", username).Info("login successful")
		fmt.Fprintf(rw, "Log In Successful.\n\nWelcome %s!\n\nType INFO to see a list of all commands with their corresponding parameters.\n", username)

		for {
			request, ok := readLine()
			if !ok {
				return
			}
			if request == "EXIT" {
				fmt.Fprintf(rw, "\nThank you for banking with us, %s. You logged out.\n", id.Username)
				log.WithField("username", id.Username).Info("logged out")
				break
			}

			if preview, confirmable := s.processor.ConfirmationMessage(id, request); confirmable {
				fmt.Fprintln(rw, preview)
				confirmed, alive := confirmPrompt(rw, readLine)
				if !alive {
					return
				}
				if !confirmed {
					fmt.Fprintln(rw, "Transaction cancelled")
					continue
				}
			}

			fmt.Fprintln(rw, s.processor.Process(id, request))
		}
	}
}

// confirmPrompt asks for an explicit Y or N, re-prompting on anything else.
// The second return value is false when the customer disconnected.
func confirmPrompt(w io.Writer, readLine func() (string, bool)) (bool, bool) {
	for {
		fmt.Fprintln(w, "Please confirm the transaction by entering 'Y' or 'N'")
		input, ok := readLine()
		if !ok {
			return false, false
		}
		switch input {
		case "Y":
			return true, true
		case "N":
			return false, true
		}
	}
}
