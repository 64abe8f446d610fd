package web

// Shared request parsing used across handlers.

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/pm3import/internal/savefile"
)

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// formInt reads an optional integer form or query value. Missing values
// yield zero.
func formInt(r *http.Request, name string) (int, error) {
	val := strings.TrimSpace(r.FormValue(name))
	if val == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number for %s: %q", errBadRequest, name, val)
	}
	return i, nil
}

// formBool reads an optional boolean form or query value.
func formBool(r *http.Request, name string, defaultVal bool) (bool, error) {
	val := strings.TrimSpace(r.FormValue(name))
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%w: invalid boolean for %s: %q", errBadRequest, name, val)
	}
	return b, nil
}

// parseTarget reads the game and base values of a request.
func parseTarget(r *http.Request) (savefile.Target, error) {
	game, err := formInt(r, "game")
	if err != nil {
		return savefile.Target{}, err
	}
	base, err := formBool(r, "base", false)
	if err != nil {
		return savefile.Target{}, err
	}
	return savefile.ParseTarget(game, base)
}
