package request

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yumyai/mbdash/pkg/model"
)

func parsePositiveIntFallback(v string, fallback int) int {
	num, err := strconv.Atoi(v)
	if err != nil || num <= 0 {
		return fallback
	}
	return num
}

// pickInt returns v if it parses to one of options, else fallback.
func pickInt(v string, options []int, fallback int) int {
	num, err := strconv.Atoi(v)
	if err != nil || !slices.Contains(options, num) {
		return fallback
	}
	return num
}

// checkbox reads an HTML checkbox value.
func checkbox(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func ascending(orderDir string) bool {
	return strings.ToLower(orderDir) != "desc"
}

// OrderDir is the inverse of ascending, for templates.
func OrderDir(asc bool) string {
	if asc {
		return "asc"
	}
	return "desc"
}

// parseRank reads a rank slug restricted to the levels offered on a page. An
// empty value selects the first offered level.
func parseRank(v string, offered []model.Rank) (model.Rank, error) {
	if v == "" {
		return offered[0], nil
	}
	r, err := model.ParseRank(v)
	if err != nil {
		return 0, err
	}
	if !slices.Contains(offered, r) {
		return 0, fmt.Errorf("%w: %q is not offered here", model.ErrUnknownRank, v)
	}
	return r, nil
}
