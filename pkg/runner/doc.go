/*
Package runner implements the console transport of the portrait engine.

It reads one line per turn, turns it into an engine event and prints the
resulting view. Input is sanitized before parsing and turns go through any
session.Handler, usually a session.Manager wrapping portrait.Engine.

# Key Components

  - Runner: The play loop (start, read, dispatch, render).
  - IOHandler: Decouples how views are shown and lines are read.
  - TextHandler: Interactive terminal usage with an optional markdown renderer.
  - JSONHandler: JSON-Lines output for scripted hosts.

# Commands

A number answers the current question (or picks a branch on the welcome
screen). "b" goes back, "s" skips the interstitial, "r" restarts and "q" quits.

# Usage

	r := runner.NewRunner(
		runner.WithUserID("console"),
		runner.WithTexts(engine.Texts()),
	)

	if err := r.Run(ctx, session.NewManager(engine)); err != nil {
		log.Fatal(err)
	}
*/
package runner
