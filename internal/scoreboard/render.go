package scoreboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/edvart/padel-scoreboard/internal/scoring"
)

const nameWidth = 24

// RenderText writes a fixed-width scoreboard:
//
//	Club final
//	Set 2 - golden point
//	  TEAM                       S1   S2  PTS
//	  Ale / Juan                  6    2   40
//	* Arturo / Agustin            4    1   40
//
// "*" marks the server and "W" the winner. Trailing spaces are trimmed.
func RenderText(w io.Writer, v View) error {
	title := v.Title
	if title == "" {
		title = "Padel match"
	}

	lines := []string{title, v.Status}

	header := fmt.Sprintf("  %-*s", nameWidth, "TEAM")
	for _, c := range v.Sets {
		header += fmt.Sprintf("%5s", fmt.Sprintf("S%d", c.Number))
	}
	header += fmt.Sprintf("%5s", "PTS")
	lines = append(lines, header)

	for i, side := range []scoring.TeamSide{scoring.TeamA, scoring.TeamB} {
		t := v.Teams[i]
		marker := "  "
		switch {
		case t.Won:
			marker = "W "
		case t.Serving:
			marker = "* "
		}
		row := marker + fmt.Sprintf("%-*s", nameWidth, truncate(t.Name, nameWidth))
		for _, c := range v.Sets {
			row += fmt.Sprintf("%5s", c.Cell(side))
		}
		row += fmt.Sprintf("%5s", t.Points)
		lines = append(lines, row)
	}

	for _, l := range lines {
		if _, err := io.WriteString(w, strings.TrimRight(l, " ")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
