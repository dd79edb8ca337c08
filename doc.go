/*
Package birthday is the RSVP backend of a single-occasion invitation site.

It manages questionnaire sessions: each guest gets a session holding their
answers, edits fields one at a time, and submits. A submission validates
the whole answer set, composes a human-readable message from the display
texts, delivers it to a Telegram chat, and records the outcome on a
notice the frontend shows and dismisses.

The questionnaire itself (fields, options, labels, message templates) is
a YAML definition embedded per language; the code never hardcodes field
semantics beyond the four field kinds.

# Architecture

The core follows a hexagonal layout. pkg/domain holds the field and
answer model, pkg/form the stateless validate/apply/compose rules, and
pkg/session the manager orchestrating the pipeline. Adapters plug in at
the edges: memory and Redis session stores, the Telegram courier, the
HTTP API and an MCP server.

# Usage

	package main

	import (
		"log"
		"net/http"

		"github.com/kdvornichenko/birthday"
		"github.com/kdvornichenko/birthday/internal/config"
	)

	func main() {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal(err)
		}

		app, err := birthday.New(cfg)
		if err != nil {
			log.Fatal(err)
		}
		defer app.Close()

		log.Fatal(http.ListenAndServe(cfg.Addr, app.Handler()))
	}
*/
package birthday
