package config

import (
    "fmt"
    "os"
    "strconv"
    "strings"
    "time"
)

// lookup parses the variable key, falling back to def when it is unset or
// malformed.  Optional settings never stop the server.
func lookup[T any](key string, def T, parse func(string) (T, error)) T {
    raw := strings.TrimSpace(os.Getenv(key))
    if raw == "" {
        return def
    }
    v, err := parse(raw)
    if err != nil {
        return def
    }
    return v
}

func envInt(key string, def int) int { return lookup(key, def, strconv.Atoi) }

func envDur(key string, def time.Duration) time.Duration {
    return lookup(key, def, time.ParseDuration)
}

func envBool(key string, def bool) bool { return lookup(key, def, parseSwitch) }

func parseSwitch(s string) (bool, error) {
    switch strings.ToLower(s) {
    case "1", "true", "yes", "on":
        return true, nil
    case "0", "false", "no", "off":
        return false, nil
    }
    return false, fmt.Errorf("not an on/off value: %q", s)
}
