package api

import (
	"math/rand/v2"
	"net/http"
)

// A small built-in pool keeps the endpoint dependency free. Served without
// authentication so landing pages can use it.
var quotes = []string{
	"We are what we repeatedly do. Excellence, then, is not an act, but a habit.",
	"Motivation is what gets you started. Habit is what keeps you going.",
	"Small daily improvements are the key to staggering long-term results.",
	"You do not rise to the level of your goals. You fall to the level of your systems.",
	"Success is the product of daily habits, not once-in-a-lifetime transformations.",
	"The chains of habit are too weak to be felt until they are too strong to be broken.",
	"First we make our habits, then our habits make us.",
	"Every action you take is a vote for the type of person you wish to become.",
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, quoteResponse{Quote: quotes[rand.IntN(len(quotes))]})
}
