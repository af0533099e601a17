/*
Package portrait is a questionnaire engine that walks users through branching
question graphs and turns their answers into a professional portrait with
numbered advice.

The engine is a deterministic state machine. A graph of questions is loaded
once and never changes; every user owns a Session that records where they are,
which answers they gave and what the answers implied. Each turn the host sends
an Event (start, pick a branch, answer, back, restart, skip the interstitial)
and receives a View describing what to show next.

# Architecture

The layout is hexagonal. pkg/domain holds the pure types, pkg/ports the
interfaces the engine depends on, and pkg/adapters the implementations:
CSV and YAML graph loaders, an in-memory session store, an RSS feed
summarizer with a Redis cache, a Redis session store with optional
encryption, and the Telegram, HTTP, MCP and console transports that host
the engine.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/portrait"
		"github.com/aretw0/portrait/pkg/adapters/file"
		"github.com/aretw0/portrait/pkg/domain"
	)

	func main() {
		ctx := context.Background()

		eng, err := portrait.Load(ctx, file.NewCSVLoader("questions_succ.csv"))
		if err != nil {
			log.Fatal(err)
		}

		view, err := eng.Handle(ctx, "user-1", domain.StartBranch(1))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(view.Question.Text)

		view, err = eng.Handle(ctx, "user-1", domain.Answer(1))
		// ...
	}
*/
package portrait
