package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ExpandPaths resolves dynamic parameter values and substitutes ${name}
// placeholders into the output, log and report paths, so configured runs can
// write dated artifacts like "out/output-${run_date}.ods".
func (c *RunConfig) ExpandPaths() error {
	return c.expandPathsAt(time.Now())
}

func (c *RunConfig) expandPathsAt(now time.Time) error {
	params := make(map[string]string, len(c.Parameters))
	for k, v := range c.Parameters {
		if strings.HasPrefix(v, "$date:") {
			resolved, err := parseDynamicDate(v, now)
			if err != nil {
				return fmt.Errorf("parameter %s: %w", k, err)
			}
			v = resolved
		}
		params[k] = v
	}

	c.Output = replacePlaceholders(c.Output, params)
	c.Log = replacePlaceholders(c.Log, params)
	c.Report = replacePlaceholders(c.Report, params)
	return nil
}

func replacePlaceholders(input string, params map[string]string) string {
	output := input
	for k, v := range params {
		placeholder := fmt.Sprintf("${%s}", k)
		output = strings.ReplaceAll(output, placeholder, v)
	}
	return output
}

// parseDynamicDate parses a dynamic date string in the format
// "$date:format:unit:offset". Example: "$date:day:day:-1" -> yesterday's
// date in "2006-01-02" format.
func parseDynamicDate(expression string, baseTime time.Time) (string, error) {
	parts := strings.Split(expression, ":")
	if len(parts) < 4 {
		return "", fmt.Errorf("invalid dynamic date format: %s", expression)
	}

	format := parts[1]
	unit := parts[2]
	offset, err := strconv.Atoi(parts[3])
	if err != nil {
		return "", fmt.Errorf("invalid offset in dynamic date: %s", expression)
	}

	targetTime := baseTime
	switch unit {
	case "day":
		targetTime = targetTime.AddDate(0, 0, offset)
	case "month":
		targetTime = targetTime.AddDate(0, offset, 0)
	case "year":
		targetTime = targetTime.AddDate(offset, 0, 0)
	default:
		return "", fmt.Errorf("unsupported unit in dynamic date: %s", unit)
	}

	return formatTime(targetTime, format), nil
}

func formatTime(t time.Time, format string) string {
	switch format {
	case "month":
		return t.Format("2006-01")
	case "year":
		return t.Format("2006")
	case "datetime":
		return t.Format("2006-01-02 15:04:05")
	default:
		return t.Format("2006-01-02")
	}
}
