package checkin

import (
	"strconv"
	"strings"
)

func splitDateKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, "-")
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
