package main

import (
	"encoding/json"
	"io"
	"strconv"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// chapterNumber prints a chapter number without trailing zeros.
func chapterNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
