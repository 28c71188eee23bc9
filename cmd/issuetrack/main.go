// Command issuetrack queries and edits the issue tracker database and
// manages schemas through the constraint harness.
//
//	issuetrack user jdoe
//	issuetrack issues 1
//	issuetrack search zero
//	issuetrack add --title "Division by zero" --creator 1
//	issuetrack update 3 --title "Division by zero" --creator 1 --resolver 2
//	issuetrack schema tables --builtin restaurant
//	issuetrack schema reset --builtin issuetracker
package main

import (
	"os"
)

func main() {
	c := &cli{}
	err := newRootCmd(c).Execute()
	c.finish(err)
	os.Exit(exitCode(err))
}
